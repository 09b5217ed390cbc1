// Package triage runs the report analysis pipeline: load a report's image
// set, classify it in batch, and aggregate per-image results into a
// report-level verdict with flags and recommendations.
package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// State bag keys shared between pipeline nodes.
const (
	KeyReportID = "report_id"
	KeyContext  = "context"
	KeyRefs     = "refs"
	KeyBatch    = "batch"
	KeyAnalysis = "analysis"
)

// Execute runs the triage pipeline for a single report. It builds the state
// graph (load → classify → assess), executes it, and extracts the Analysis
// from the final state. An empty image set fails the call before any
// classification is attempted.
func Execute(ctx context.Context, rt *Runtime, reportID uuid.UUID) (*Analysis, error) {
	start := time.Now()

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyReportID, reportID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	analysis, err := extractAnalysis(finalState)
	if err != nil {
		return nil, err
	}

	analysis.ProcessingTime = time.Since(start).Milliseconds()

	rt.Logger.InfoContext(ctx, "triage complete",
		"report_id", reportID,
		"mangrove_detected", analysis.Verdict.MangroveDetected,
		"confidence", analysis.Verdict.Confidence,
		"action", analysis.Verdict.RecommendedAction,
		"duration_ms", analysis.ProcessingTime,
	)

	return analysis, nil
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("report-triage")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("load", LoadNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("assess", AssessNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("load", "classify", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("classify", "assess", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("load"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("assess"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractAnalysis(s state.State) (*Analysis, error) {
	val, ok := s.Get(KeyAnalysis)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrAnalysisFailed, KeyAnalysis)
	}

	analysis, ok := val.(Analysis)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Analysis", ErrAnalysisFailed, KeyAnalysis)
	}

	return &analysis, nil
}
