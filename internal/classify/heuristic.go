package classify

import (
	"context"
	"strings"
	"time"
)

// Heuristic confidence levels. A vocabulary match is weak evidence, the
// absence of one weaker still.
const (
	heuristicMatchConfidence = 0.6
	heuristicMissConfidence  = 0.3
)

// ecosystemTerms is the fixed vocabulary inspected in locators and context.
var ecosystemTerms = []string{
	"mangrove",
	"swamp",
	"coastal",
	"wetland",
	"estuary",
	"tidal",
	"prop root",
}

// HeuristicBackend classifies by keyword inspection of the locator and
// context strings. It is the guaranteed terminal fallback: it always
// succeeds and never returns an error.
type HeuristicBackend struct{}

// NewHeuristicBackend creates the keyword heuristic backend.
func NewHeuristicBackend() *HeuristicBackend {
	return &HeuristicBackend{}
}

func (b *HeuristicBackend) Name() string {
	return BackendHeuristic
}

func (b *HeuristicBackend) Classify(_ context.Context, ref ImageRef) (Result, error) {
	start := time.Now()

	haystack := strings.ToLower(ref.Locator + " " + ref.Context)

	matched := false
	for _, term := range ecosystemTerms {
		if strings.Contains(haystack, term) {
			matched = true
			break
		}
	}

	confidence := heuristicMissConfidence
	if matched {
		confidence = heuristicMatchConfidence
	}

	return Result{
		Locator:        ref.Locator,
		Success:        true,
		IsMangrove:     matched,
		Confidence:     confidence,
		Probabilities:  split(matched, confidence),
		Reasoning:      "keyword-based classification, limited accuracy",
		Backend:        BackendHeuristic,
		ProcessingTime: time.Since(start).Milliseconds(),
		ClassifiedAt:   time.Now(),
	}, nil
}
