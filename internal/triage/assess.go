package triage

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
)

// Assess aggregates batch results into a report-level Analysis: majority
// vote for detection, average confidence over successful results, evidence
// strength and recommended action from the confidence bands, plus advisory
// flags and recommendations.
func Assess(reportID uuid.UUID, batch classify.Batch) Analysis {
	summary := batch.Summary

	analysis := Analysis{
		ReportID:              reportID,
		TotalImages:           batch.Total,
		SuccessfulAnalyses:    summary.Successful,
		FailedAnalyses:        summary.Failed,
		MangroveDetectedCount: summary.MangroveImages,
		AverageConfidence:     summary.AverageConfidence,
		Results:               batch.Results,
		CompletedAt:           time.Now(),
	}

	analysis.Verdict = assessVerdict(summary)
	analysis.Flags = assessFlags(summary, batch.Results)
	analysis.Recommendations = recommend(analysis.Verdict, summary)

	return analysis
}

// assessVerdict applies the decision table top-down; the first matching row
// wins. Zero successful analyses short-circuits to resubmission.
func assessVerdict(s classify.Summary) Verdict {
	if s.Successful == 0 {
		return Verdict{
			EvidenceStrength:  EvidenceWeak,
			ConsensusLevel:    "low",
			RecommendedAction: ActionResubmitImages,
		}
	}

	v := Verdict{
		MangroveDetected: s.MangrovePercentage > 0.5,
		Confidence:       s.AverageConfidence,
	}

	switch {
	case v.Confidence >= HighConfidence && s.MangrovePercentage >= 0.8:
		v.EvidenceStrength = EvidenceStrong
		v.ConsensusLevel = "high"
		v.RecommendedAction = ActionApprove
	case v.Confidence >= MediumConfidence && s.MangrovePercentage >= 0.6:
		v.EvidenceStrength = EvidenceModerate
		v.ConsensusLevel = "medium"
		v.RecommendedAction = ActionHumanReview
	default:
		v.EvidenceStrength = EvidenceWeak
		v.ConsensusLevel = "low"
		v.RecommendedAction = ActionRequestMoreEvidence
	}

	return v
}

// assessFlags raises advisory flags independently; any subset may apply.
func assessFlags(s classify.Summary, results []classify.Result) []string {
	flags := make([]string, 0, 4)

	if s.AverageConfidence < LowConfidence {
		flags = append(flags, FlagVeryLowConfidence)
	}

	// Near 50/50 split across multiple images indicates disagreement.
	if s.Successful > 1 {
		if math.Abs(s.MangrovePercentage-0.5) < 0.3 {
			flags = append(flags, FlagInconsistentClassification)
		}
	}

	if s.Failed > s.Successful {
		flags = append(flags, FlagTechnicalIssues)
	}

	for _, r := range results {
		if r.Backend == classify.BackendHeuristic {
			flags = append(flags, FlagHeuristicFallback)
			break
		}
	}

	return flags
}

func recommend(v Verdict, s classify.Summary) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	switch {
	case s.Successful == 0:
		recs = append(recs, Recommendation{
			Type:     "request_better_images",
			Priority: "high",
			Message:  "No images could be analyzed - request clearer or closer images",
		})
	case v.Confidence >= HighConfidence && v.MangroveDetected:
		recs = append(recs, Recommendation{
			Type:     "approve_mangrove_report",
			Priority: "high",
			Message:  "High confidence mangrove detection - approve report",
		})
	case v.Confidence >= HighConfidence:
		recs = append(recs, Recommendation{
			Type:     "reject_non_mangrove",
			Priority: "medium",
			Message:  "High confidence non-mangrove classification",
		})
	case v.Confidence >= MediumConfidence:
		recs = append(recs, Recommendation{
			Type:     "human_expert_review",
			Priority: "medium",
			Message:  "Moderate confidence - requires expert verification",
		})
	default:
		recs = append(recs, Recommendation{
			Type:     "request_better_images",
			Priority: "high",
			Message:  "Low confidence - request clearer or closer images",
		})
	}

	if s.Failed > 0 {
		recs = append(recs, Recommendation{
			Type:     "image_quality_issue",
			Priority: "medium",
			Message:  fmt.Sprintf("%d images failed analysis - check image quality", s.Failed),
		})
	}

	if s.TotalImages == 1 {
		recs = append(recs, Recommendation{
			Type:     "request_multiple_angles",
			Priority: "low",
			Message:  "Consider requesting multiple images from different angles",
		})
	}

	return recs
}
