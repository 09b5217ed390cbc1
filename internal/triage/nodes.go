package triage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
)

// LoadNode returns a state node that fetches the report, builds image
// references from its media locators (capped at MaxAnalyzedImages), and
// stores them in the state bag. The report's description (or title, when
// no description exists) becomes the classification context for every ref.
func LoadNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		reportID, err := extractReportID(s)
		if err != nil {
			return s, fmt.Errorf("load: %w", err)
		}

		report, err := rt.Reports.Find(ctx, reportID)
		if err != nil {
			return s, fmt.Errorf("load: %w: %w", ErrReportNotFound, err)
		}

		hint := report.Description
		if hint == "" {
			hint = report.Title
		}

		media := report.Media
		if len(media) > MaxAnalyzedImages {
			media = media[:MaxAnalyzedImages]
		}

		refs := make([]classify.ImageRef, 0, len(media))
		for _, locator := range media {
			if locator == "" {
				continue
			}
			refs = append(refs, classify.ImageRef{Locator: locator, Context: hint})
		}

		if len(refs) == 0 {
			return s, fmt.Errorf("load: %w", ErrNoImages)
		}

		rt.Logger.InfoContext(ctx, "load node complete",
			"report_id", reportID,
			"image_count", len(refs),
		)

		s = s.Set(KeyRefs, refs)
		return s, nil
	})
}

// ClassifyNode returns a state node that runs the batch classifier over the
// loaded image references and stores the batch outcome in the state bag.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		refs, err := extractRefs(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		batch := rt.Classifier.ClassifyBatch(ctx, refs)

		rt.Logger.InfoContext(ctx, "classify node complete",
			"total", batch.Total,
			"successful", batch.Summary.Successful,
			"failed", batch.Summary.Failed,
		)

		s = s.Set(KeyBatch, batch)
		return s, nil
	})
}

// AssessNode returns a state node that aggregates batch results into the
// report-level Analysis and stores it in the state bag.
func AssessNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		reportID, err := extractReportID(s)
		if err != nil {
			return s, fmt.Errorf("assess: %w", err)
		}

		batch, err := extractBatch(s)
		if err != nil {
			return s, fmt.Errorf("assess: %w", err)
		}

		analysis := Assess(reportID, batch)

		rt.Logger.InfoContext(ctx, "assess node complete",
			"report_id", reportID,
			"evidence_strength", analysis.Verdict.EvidenceStrength,
			"flags", analysis.Flags,
		)

		s = s.Set(KeyAnalysis, analysis)
		return s, nil
	})
}

func extractReportID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyReportID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrAnalysisFailed, KeyReportID)
	}

	reportID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrAnalysisFailed, KeyReportID)
	}

	return reportID, nil
}

func extractRefs(s state.State) ([]classify.ImageRef, error) {
	val, ok := s.Get(KeyRefs)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAnalysisFailed, KeyRefs)
	}

	refs, ok := val.([]classify.ImageRef)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []classify.ImageRef", ErrAnalysisFailed, KeyRefs)
	}

	return refs, nil
}

func extractBatch(s state.State) (classify.Batch, error) {
	val, ok := s.Get(KeyBatch)
	if !ok {
		return classify.Batch{}, fmt.Errorf("%w: missing %s in state", ErrAnalysisFailed, KeyBatch)
	}

	batch, ok := val.(classify.Batch)
	if !ok {
		return classify.Batch{}, fmt.Errorf("%w: %s is not classify.Batch", ErrAnalysisFailed, KeyBatch)
	}

	return batch, nil
}
