package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// LocalBackend classifies through the specialized model server over HTTP.
// A mid-call failure (timeout or non-2xx) is an error, not a fallback:
// backend selection is fixed at startup.
type LocalBackend struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewLocalBackend creates a local model server backend for the given base URL.
func NewLocalBackend(baseURL string, timeout time.Duration) *LocalBackend {
	return &LocalBackend{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (b *LocalBackend) Name() string {
	return BackendLocalModel
}

type localRequest struct {
	ImageURL string `json:"image_url"`
	Context  string `json:"context"`
}

type localResponse struct {
	IsMangrove    bool    `json:"is_mangrove"`
	Confidence    float64 `json:"confidence"`
	Probabilities *struct {
		Mangrove    float64 `json:"mangrove"`
		NonMangrove float64 `json:"non_mangrove"`
	} `json:"probabilities"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	ModelType             string  `json:"model_type"`
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Probe checks the model server health endpoint. Used once at startup to
// decide whether this backend is available.
func (b *LocalBackend) Probe(ctx context.Context, timeout time.Duration) error {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("%w: decode health response: %w", ErrMalformedResponse, err)
	}

	if health.Status != "healthy" {
		return fmt.Errorf("%w: health status %q", ErrBackendUnavailable, health.Status)
	}

	return nil
}

func (b *LocalBackend) Classify(ctx context.Context, ref ImageRef) (Result, error) {
	start := time.Now()

	payload, err := json.Marshal(localRequest{
		ImageURL: ref.Locator,
		Context:  ref.Context,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal classify request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		callCtx,
		http.MethodPost,
		b.baseURL+"/classify",
		bytes.NewReader(payload),
	)
	if err != nil {
		return Result{}, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: classify status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var parsed localResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("%w: decode classify response: %w", ErrMalformedResponse, err)
	}

	probs := split(parsed.IsMangrove, parsed.Confidence)
	if parsed.Probabilities != nil {
		probs = Probabilities{
			Mangrove:    parsed.Probabilities.Mangrove,
			NonMangrove: parsed.Probabilities.NonMangrove,
		}
	}

	return Result{
		Locator:        ref.Locator,
		Success:        true,
		IsMangrove:     parsed.IsMangrove,
		Confidence:     parsed.Confidence,
		Probabilities:  probs,
		Backend:        BackendLocalModel,
		ProcessingTime: time.Since(start).Milliseconds(),
		ClassifiedAt:   time.Now(),
	}, nil
}
