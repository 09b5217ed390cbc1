package classify_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
)

// fakeBackend classifies by suffix convention: locators ending in
// "-fail.jpg" error, locators containing "mangrove" are positive.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
}

func (b *fakeBackend) Name() string {
	return "fake"
}

func (b *fakeBackend) Classify(_ context.Context, ref classify.ImageRef) (classify.Result, error) {
	b.mu.Lock()
	b.calls = append(b.calls, ref.Locator)
	b.mu.Unlock()

	if strings.HasSuffix(ref.Locator, "-fail.jpg") {
		return classify.Result{}, errors.New("backend exploded")
	}

	isMangrove := strings.Contains(ref.Locator, "mangrove")
	return classify.Result{
		Locator:      ref.Locator,
		Success:      true,
		IsMangrove:   isMangrove,
		Confidence:   0.9,
		Backend:      "fake",
		ClassifiedAt: time.Now(),
	}, nil
}

func newTestClassifier(backend classify.Backend) *classify.Classifier {
	validator := classify.NewValidator(time.Second, testMaxImageSize)
	return classify.NewClassifier(backend, validator, slog.Default())
}

func TestClassifyOne(t *testing.T) {
	backend := &fakeBackend{}
	classifier := newTestClassifier(backend)

	locator := writeTempImage(t, "mangrove-shore.jpg", 100)
	result := classifier.ClassifyOne(context.Background(), classify.ImageRef{Locator: locator})

	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if !result.IsMangrove {
		t.Error("expected mangrove verdict")
	}
	if result.Backend != "fake" {
		t.Errorf("backend = %s, want fake", result.Backend)
	}
}

func TestClassifyOneInvalidImage(t *testing.T) {
	backend := &fakeBackend{}
	classifier := newTestClassifier(backend)

	result := classifier.ClassifyOne(context.Background(), classify.ImageRef{Locator: "/missing/shore.jpg"})

	if result.Success {
		t.Fatal("expected failure for missing image")
	}
	if !strings.Contains(result.Error, "invalid image reference") {
		t.Errorf("error = %q, want invalid image reference", result.Error)
	}
	if len(backend.calls) != 0 {
		t.Errorf("backend called %d times for invalid image, want 0", len(backend.calls))
	}
}

func TestClassifyOneBackendError(t *testing.T) {
	backend := &fakeBackend{}
	classifier := newTestClassifier(backend)

	locator := writeTempImage(t, "shore-fail.jpg", 100)
	result := classifier.ClassifyOne(context.Background(), classify.ImageRef{Locator: locator})

	if result.Success {
		t.Fatal("expected failure when backend errors")
	}
	if result.Backend != classify.BackendError {
		t.Errorf("backend = %s, want %s", result.Backend, classify.BackendError)
	}
	if !strings.Contains(result.Error, "backend exploded") {
		t.Errorf("error = %q, want backend message", result.Error)
	}
}

func TestClassifyBatchPreservesOrder(t *testing.T) {
	backend := &fakeBackend{}
	classifier := newTestClassifier(backend)

	refs := make([]classify.ImageRef, 7)
	for i := range refs {
		refs[i] = classify.ImageRef{
			Locator: writeTempImage(t, fmt.Sprintf("mangrove-%d.jpg", i), 100),
		}
	}

	batch := classifier.ClassifyBatch(context.Background(), refs)

	if batch.Total != 7 {
		t.Errorf("Total = %d, want 7", batch.Total)
	}
	if len(batch.Results) != 7 {
		t.Fatalf("len(Results) = %d, want 7", len(batch.Results))
	}
	for i, result := range batch.Results {
		if result.Locator != refs[i].Locator {
			t.Errorf("Results[%d].Locator = %s, want %s", i, result.Locator, refs[i].Locator)
		}
	}
	if batch.Summary.Successful != 7 {
		t.Errorf("Successful = %d, want 7", batch.Summary.Successful)
	}
}

func TestClassifyBatchIsolatesFailures(t *testing.T) {
	backend := &fakeBackend{}
	classifier := newTestClassifier(backend)

	refs := []classify.ImageRef{
		{Locator: writeTempImage(t, "mangrove-a.jpg", 100)},
		{Locator: writeTempImage(t, "shore-fail.jpg", 100)},
		{Locator: writeTempImage(t, "mangrove-b.jpg", 100)},
	}

	batch := classifier.ClassifyBatch(context.Background(), refs)

	if batch.Summary.Successful != 2 {
		t.Errorf("Successful = %d, want 2", batch.Summary.Successful)
	}
	if batch.Summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", batch.Summary.Failed)
	}
	if batch.Results[1].Success {
		t.Error("failing ref should produce a failed result")
	}
	if !batch.Results[0].Success || !batch.Results[2].Success {
		t.Error("sibling refs should succeed despite one failure")
	}
}
