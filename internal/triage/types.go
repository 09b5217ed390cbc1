package triage

import (
	"time"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
)

// Confidence thresholds driving evidence strength and recommended actions.
const (
	HighConfidence   = 0.8
	MediumConfidence = 0.6
	LowConfidence    = 0.4
)

// Evidence strength tiers.
const (
	EvidenceStrong   = "strong"
	EvidenceModerate = "moderate"
	EvidenceWeak     = "weak"
)

// Recommended actions for a verification workflow.
const (
	ActionApprove             = "approve"
	ActionHumanReview         = "human_review"
	ActionRequestMoreEvidence = "request_more_evidence"
	ActionResubmitImages      = "resubmit_with_better_images"
)

// Advisory flags raised for human attention.
const (
	FlagVeryLowConfidence          = "very_low_confidence"
	FlagInconsistentClassification = "inconsistent_classification"
	FlagTechnicalIssues            = "technical_processing_issues"
	FlagHeuristicFallback          = "heuristic_fallback_used"
)

// MaxAnalyzedImages caps how many of a report's images are classified.
const MaxAnalyzedImages = 10

// Verdict is the report-level decision aggregated over all image results.
type Verdict struct {
	MangroveDetected  bool    `json:"mangrove_detected"`
	Confidence        float64 `json:"confidence"`
	EvidenceStrength  string  `json:"evidence_strength"`
	ConsensusLevel    string  `json:"consensus_level"`
	RecommendedAction string  `json:"recommended_action"`
}

// Recommendation is an advisory message for verifiers. Informational only;
// no downstream logic consumes it.
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Analysis is the aggregate outcome of triaging one report's image set.
type Analysis struct {
	ReportID              uuid.UUID         `json:"report_id"`
	TotalImages           int               `json:"total_images"`
	SuccessfulAnalyses    int               `json:"successful_analyses"`
	FailedAnalyses        int               `json:"failed_analyses"`
	MangroveDetectedCount int               `json:"mangrove_detected_count"`
	AverageConfidence     float64           `json:"average_confidence"`
	Verdict               Verdict           `json:"verdict"`
	Flags                 []string          `json:"flags"`
	Recommendations       []Recommendation  `json:"recommendations"`
	Results               []classify.Result `json:"results"`
	ProcessingTime        int64             `json:"processing_time_ms"`
	CompletedAt           time.Time         `json:"completed_at"`
}
