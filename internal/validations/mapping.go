package validations

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/pkg/query"
	"github.com/KHUSHI-P15/Hackout/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "ai_validations", "v").
	Project("id", "ID").
	Project("report_id", "ReportID").
	Project("ai_result", "AIResult").
	Project("confidence", "Confidence").
	Project("verified", "Verified").
	Project("is_active", "IsActive").
	Project("metadata", "Metadata").
	Project("human_feedback", "HumanFeedback").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for validation queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	ReportID *uuid.UUID `json:"report_id,omitempty"`
	AIResult *string    `json:"ai_result,omitempty"`
	Verified *bool      `json:"verified,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ReportID", f.ReportID).
		WhereEquals("AIResult", f.AIResult).
		WhereEquals("Verified", f.Verified).
		WhereEquals("IsActive", f.IsActive)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if r := values.Get("report_id"); r != "" {
		if id, err := uuid.Parse(r); err == nil {
			f.ReportID = &id
		}
	}

	if a := values.Get("ai_result"); a != "" {
		f.AIResult = &a
	}

	if v := values.Get("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Verified = &b
		}
	}

	if a := values.Get("is_active"); a != "" {
		if b, err := strconv.ParseBool(a); err == nil {
			f.IsActive = &b
		}
	}

	return f
}

func scanValidation(s repository.Scanner) (Validation, error) {
	var (
		v           Validation
		metadataRaw []byte
		feedbackRaw []byte
	)

	err := s.Scan(
		&v.ID,
		&v.ReportID,
		&v.AIResult,
		&v.Confidence,
		&v.Verified,
		&v.IsActive,
		&metadataRaw,
		&feedbackRaw,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return v, err
	}

	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &v.Metadata); err != nil {
			return v, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	if len(feedbackRaw) > 0 {
		var fb HumanFeedback
		if err := json.Unmarshal(feedbackRaw, &fb); err != nil {
			return v, fmt.Errorf("unmarshal human_feedback: %w", err)
		}
		v.HumanFeedback = &fb
	}

	if v.Metadata.Flags == nil {
		v.Metadata.Flags = []string{}
	}

	return v, nil
}
