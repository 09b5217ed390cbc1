package classify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
)

const testMaxImageSize = 1024

func writeTempImage(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("write temp image: %v", err)
	}
	return path
}

func TestValidateLocal(t *testing.T) {
	validator := classify.NewValidator(time.Second, testMaxImageSize)

	tests := []struct {
		name       string
		locator    string
		wantValid  bool
		wantReason string
	}{
		{
			name:      "valid jpg",
			locator:   writeTempImage(t, "shore.jpg", 100),
			wantValid: true,
		},
		{
			name:      "valid png",
			locator:   writeTempImage(t, "shore.png", 100),
			wantValid: true,
		},
		{
			name:       "empty locator",
			locator:    "",
			wantValid:  false,
			wantReason: "empty image locator",
		},
		{
			name:       "missing file",
			locator:    "/nonexistent/shore.jpg",
			wantValid:  false,
			wantReason: "file does not exist",
		},
		{
			name:       "unsupported extension",
			locator:    writeTempImage(t, "notes.txt", 100),
			wantValid:  false,
			wantReason: "unsupported image format",
		},
		{
			name:       "file too large",
			locator:    writeTempImage(t, "huge.jpg", testMaxImageSize+1),
			wantValid:  false,
			wantReason: "image too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.Validate(context.Background(), tt.locator)
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (reason: %s)", got.Valid, tt.wantValid, got.Reason)
			}
			if tt.wantReason != "" && !strings.Contains(got.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want substring %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("probe method = %s, want HEAD", r.Method)
		}

		switch r.URL.Path {
		case "/shore.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Length", "512")
		case "/huge.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Length", strconv.Itoa(testMaxImageSize+1))
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	validator := classify.NewValidator(time.Second, testMaxImageSize)

	tests := []struct {
		name       string
		path       string
		wantValid  bool
		wantReason string
	}{
		{
			name:      "reachable image",
			path:      "/shore.jpg",
			wantValid: true,
		},
		{
			name:       "not found",
			path:       "/missing.jpg",
			wantValid:  false,
			wantReason: "image unreachable",
		},
		{
			name:       "not an image",
			path:       "/page.html",
			wantValid:  false,
			wantReason: "does not point to an image",
		},
		{
			name:       "too large",
			path:       "/huge.jpg",
			wantValid:  false,
			wantReason: "image too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.Validate(context.Background(), server.URL+tt.path)
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (reason: %s)", got.Valid, tt.wantValid, got.Reason)
			}
			if tt.wantReason != "" && !strings.Contains(got.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want substring %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateRemoteUnreachable(t *testing.T) {
	validator := classify.NewValidator(100*time.Millisecond, testMaxImageSize)

	got := validator.Validate(context.Background(), "http://127.0.0.1:1/shore.jpg")
	if got.Valid {
		t.Error("unreachable host should be invalid")
	}
	if !strings.Contains(got.Reason, "image unreachable") {
		t.Errorf("Reason = %q, want unreachable", got.Reason)
	}
}
