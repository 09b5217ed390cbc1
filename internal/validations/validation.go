// Package validations implements the AI validation audit domain. It runs
// the triage pipeline over report imagery, persists the outcome as an
// auditable validation record, and reconciles those records against human
// verifier feedback.
package validations

import (
	"time"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
	"github.com/KHUSHI-P15/Hackout/internal/triage"
)

// AI result values stored on validation records.
const (
	ResultMangroveDetected   = "mangrove_detected"
	ResultNoMangroveDetected = "no_mangrove_detected"
)

// Accuracy values assigned during reconciliation.
const (
	AccuracyCorrect   = "correct"
	AccuracyIncorrect = "incorrect"
)

// Validation represents a stored AI validation audit record for a report.
// Only one record per report is active; re-analysis deactivates the prior
// active record and inserts a fresh one.
type Validation struct {
	ID            uuid.UUID      `json:"id"`
	ReportID      uuid.UUID      `json:"report_id"`
	AIResult      string         `json:"ai_result"`
	Confidence    int            `json:"confidence"`
	Verified      bool           `json:"verified"`
	IsActive      bool           `json:"is_active"`
	Metadata      Metadata       `json:"metadata"`
	HumanFeedback *HumanFeedback `json:"human_feedback"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Metadata captures the triage outcome details that back the headline
// result, stored as JSONB alongside the record.
type Metadata struct {
	Backend               string   `json:"backend"`
	TotalImages           int      `json:"total_images"`
	SuccessfulAnalyses    int      `json:"successful_analyses"`
	FailedAnalyses        int      `json:"failed_analyses"`
	MangroveDetectedCount int      `json:"mangrove_detected_count"`
	EvidenceStrength      string   `json:"evidence_strength"`
	ConsensusLevel        string   `json:"consensus_level"`
	RecommendedAction     string   `json:"recommended_action"`
	Flags                 []string `json:"flags"`
	ProcessingTimeMS      int64    `json:"processing_time_ms"`
}

// Assessment is the human verifier's own judgement of the report imagery.
type Assessment struct {
	IsMangrove bool   `json:"is_mangrove"`
	Comments   string `json:"comments,omitempty"`
}

// HumanFeedback records the reconciliation of a validation record against
// a human verifier's assessment.
type HumanFeedback struct {
	VerifiedBy       string     `json:"verified_by"`
	VerificationDate time.Time  `json:"verification_date"`
	Assessment       Assessment `json:"assessment"`
	AIAccuracy       string     `json:"ai_accuracy"`
	ConfidenceRating int        `json:"confidence_rating"`
}

// ReconcileCommand carries the data needed to reconcile the active
// validation record for a report against human feedback.
type ReconcileCommand struct {
	VerifiedBy       string `json:"verified_by"`
	IsMangrove       bool   `json:"is_mangrove"`
	Comments         string `json:"comments"`
	ConfidenceRating int    `json:"confidence_rating"`
}

// AnalysisOutcome pairs the persisted validation record with the full
// triage analysis it was derived from.
type AnalysisOutcome struct {
	Validation Validation       `json:"validation"`
	Analysis   *triage.Analysis `json:"analysis"`
}

// Stats reports aggregate AI performance over stored validation records,
// plus the backend selection snapshot taken at startup.
type Stats struct {
	TotalValidations  int             `json:"total_validations"`
	VerifiedCount     int             `json:"verified_count"`
	VerificationRate  float64         `json:"verification_rate"`
	AverageConfidence float64         `json:"average_confidence"`
	AccuracyRate      float64         `json:"accuracy_rate"`
	FeedbackCount     int             `json:"feedback_count"`
	Backends          classify.Status `json:"backends"`
}
