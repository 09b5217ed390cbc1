// Package classify implements binary mangrove/non-mangrove image
// classification. It provides image reference validation, a prioritized
// chain of classification backends (local model server, hosted vision
// model, keyword heuristic), and single/batch classification with bounded
// concurrency and per-image error isolation.
package classify

import (
	"context"
	"time"
)

// Backend identifiers recorded on every Result.
const (
	BackendLocalModel   = "local-model"
	BackendHostedVision = "hosted-vision"
	BackendHeuristic    = "heuristic"
	BackendError        = "error"
)

// ImageRef references one submitted image: a dereferenceable locator
// (http(s) URL or filesystem path) plus optional free-text context used as
// a classification hint. Immutable once a report is submitted.
type ImageRef struct {
	Locator string `json:"locator"`
	Context string `json:"context,omitempty"`
}

// Remote reports whether the locator is an http(s) URL rather than a
// filesystem path.
func (r ImageRef) Remote() bool {
	return hasHTTPScheme(r.Locator)
}

// Probabilities holds the binary class distribution. The two fields sum to 1.
type Probabilities struct {
	Mangrove    float64 `json:"mangrove"`
	NonMangrove float64 `json:"non_mangrove"`
}

// Result is the outcome of classifying one ImageRef. Exactly one of two
// states holds: Success true with verdict fields populated, or Success
// false with Error populated (in which case IsMangrove must not be trusted).
type Result struct {
	Locator        string        `json:"locator"`
	Success        bool          `json:"success"`
	IsMangrove     bool          `json:"is_mangrove"`
	Confidence     float64       `json:"confidence"`
	Probabilities  Probabilities `json:"probabilities"`
	Reasoning      string        `json:"reasoning,omitempty"`
	Backend        string        `json:"backend"`
	ProcessingTime int64         `json:"processing_time_ms"`
	Error          string        `json:"error,omitempty"`
	ClassifiedAt   time.Time     `json:"classified_at"`
}

// Backend classifies a single image. Implementations other than the
// heuristic may return an error for timeouts, transport failures, or
// malformed responses; callers are expected to isolate such failures
// per image.
type Backend interface {
	Name() string
	Classify(ctx context.Context, ref ImageRef) (Result, error)
}

// split derives the binary distribution from a verdict and its confidence.
func split(isMangrove bool, confidence float64) Probabilities {
	if isMangrove {
		return Probabilities{Mangrove: confidence, NonMangrove: 1 - confidence}
	}
	return Probabilities{Mangrove: 1 - confidence, NonMangrove: confidence}
}

func errorResult(ref ImageRef, err error) Result {
	return Result{
		Locator:      ref.Locator,
		Success:      false,
		Backend:      BackendError,
		Error:        err.Error(),
		ClassifiedAt: time.Now(),
	}
}
