package classify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// Batch processing policy: groups of three concurrent classifications with
// a short pause between groups to avoid overwhelming a backend.
const (
	batchGroupSize  = 3
	batchGroupPause = 500 * time.Millisecond
)

// Classifier validates and classifies single images or bounded batches.
// It is the error isolation boundary: backend failures degrade to
// success-false Results and never propagate as errors.
type Classifier struct {
	backend   Backend
	validator *Validator
	logger    *slog.Logger
}

// NewClassifier creates a Classifier over the resolved backend.
func NewClassifier(backend Backend, validator *Validator, logger *slog.Logger) *Classifier {
	return &Classifier{
		backend:   backend,
		validator: validator,
		logger:    logger.With("system", "classifier"),
	}
}

// BackendName returns the name of the resolved backend.
func (c *Classifier) BackendName() string {
	return c.backend.Name()
}

// ClassifyOne validates then classifies a single image. Validation failures
// and backend errors are returned as success-false Results carrying the
// error message.
func (c *Classifier) ClassifyOne(ctx context.Context, ref ImageRef) Result {
	validation := c.validator.Validate(ctx, ref.Locator)
	if !validation.Valid {
		return errorResult(ref, fmt.Errorf("%w: %s", ErrInvalidImage, validation.Reason))
	}

	result, err := c.backend.Classify(ctx, ref)
	if err != nil {
		c.logger.Warn("classification failed",
			"locator", ref.Locator,
			"backend", c.backend.Name(),
			"error", err,
		)
		return errorResult(ref, err)
	}

	return result
}

// Summary holds aggregate statistics over a batch's successful results.
type Summary struct {
	TotalImages        int     `json:"total_images"`
	Successful         int     `json:"successful"`
	Failed             int     `json:"failed"`
	MangroveImages     int     `json:"mangrove_images"`
	NonMangroveImages  int     `json:"non_mangrove_images"`
	AverageConfidence  float64 `json:"average_confidence"`
	MangrovePercentage float64 `json:"mangrove_percentage"`
}

// Batch is the outcome of classifying a set of images. Results preserves
// the input order of the refs regardless of concurrent completion order.
type Batch struct {
	Total   int      `json:"total"`
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}

// ClassifyBatch classifies refs in fixed-size groups of three, concurrent
// within a group, pausing briefly between groups. A failure in one item
// never aborts its siblings.
func (c *Classifier) ClassifyBatch(ctx context.Context, refs []ImageRef) Batch {
	results := make([]Result, len(refs))

	for start := 0; start < len(refs); start += batchGroupSize {
		end := min(start+batchGroupSize, len(refs))

		g := new(errgroup.Group)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = c.ClassifyOne(ctx, refs[i])
				return nil
			})
		}
		g.Wait()

		if end < len(refs) {
			select {
			case <-ctx.Done():
			case <-time.After(batchGroupPause):
			}
		}
	}

	return Batch{
		Total:   len(refs),
		Results: results,
		Summary: Summarize(results),
	}
}

// Summarize computes batch statistics. Averages cover successful results
// only and are exactly zero when none succeeded.
func Summarize(results []Result) Summary {
	s := Summary{TotalImages: len(results)}

	var totalConfidence float64
	for _, r := range results {
		if !r.Success {
			s.Failed++
			continue
		}
		s.Successful++
		totalConfidence += r.Confidence
		if r.IsMangrove {
			s.MangroveImages++
		} else {
			s.NonMangroveImages++
		}
	}

	if s.Successful > 0 {
		s.AverageConfidence = math.Round(totalConfidence/float64(s.Successful)*100) / 100
		s.MangrovePercentage = float64(s.MangroveImages) / float64(s.Successful)
	}

	return s
}
