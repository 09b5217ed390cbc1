package classify

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var acceptedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp"}

// Validation reports whether an image reference may be classified.
// Reason is populated iff Valid is false.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Validator checks image references before classification. Remote locators
// are probed with a metadata-only HEAD request; local paths are checked
// against the filesystem. Ordinary network and file errors never surface as
// Go errors, only as invalid Validations.
type Validator struct {
	client  *http.Client
	timeout time.Duration
	maxSize int64
}

// NewValidator creates a Validator enforcing the given probe timeout and
// size ceiling.
func NewValidator(timeout time.Duration, maxSize int64) *Validator {
	return &Validator{
		client:  &http.Client{},
		timeout: timeout,
		maxSize: maxSize,
	}
}

// Validate checks that the locator is reachable, of an accepted image type,
// and within the size ceiling.
func (v *Validator) Validate(ctx context.Context, locator string) Validation {
	if locator == "" {
		return invalid("empty image locator")
	}

	if hasHTTPScheme(locator) {
		return v.validateRemote(ctx, locator)
	}

	return v.validateLocal(locator)
}

func (v *Validator) validateRemote(ctx context.Context, locator string) Validation {
	probeCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, locator, nil)
	if err != nil {
		return invalid(fmt.Sprintf("malformed locator: %v", err))
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return invalid(fmt.Sprintf("image unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return invalid(fmt.Sprintf("image unreachable: status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return invalid("locator does not point to an image")
	}

	if resp.ContentLength > v.maxSize {
		return invalid(fmt.Sprintf("image too large (>%d bytes)", v.maxSize))
	}

	return Validation{Valid: true}
}

func (v *Validator) validateLocal(locator string) Validation {
	info, err := os.Stat(locator)
	if err != nil {
		return invalid("file does not exist")
	}

	if info.Size() > v.maxSize {
		return invalid(fmt.Sprintf("image too large (>%d bytes)", v.maxSize))
	}

	ext := strings.ToLower(filepath.Ext(locator))
	if !slices.Contains(acceptedExtensions, ext) {
		return invalid(fmt.Sprintf("unsupported image format: %s", ext))
	}

	return Validation{Valid: true}
}

func invalid(reason string) Validation {
	return Validation{Valid: false, Reason: reason}
}

func hasHTTPScheme(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}
