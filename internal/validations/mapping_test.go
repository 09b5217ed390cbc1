package validations_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/internal/triage"
	"github.com/KHUSHI-P15/Hackout/internal/validations"
)

func TestFiltersFromQuery(t *testing.T) {
	reportID := uuid.New()

	tests := []struct {
		name   string
		values url.Values
		check  func(t *testing.T, f validations.Filters)
	}{
		{
			name:   "empty query",
			values: url.Values{},
			check: func(t *testing.T, f validations.Filters) {
				if f.ReportID != nil || f.AIResult != nil || f.Verified != nil || f.IsActive != nil {
					t.Errorf("expected zero filters, got %+v", f)
				}
			},
		},
		{
			name: "report id",
			values: url.Values{
				"report_id": {reportID.String()},
			},
			check: func(t *testing.T, f validations.Filters) {
				if f.ReportID == nil || *f.ReportID != reportID {
					t.Errorf("ReportID = %v, want %s", f.ReportID, reportID)
				}
			},
		},
		{
			name: "malformed report id ignored",
			values: url.Values{
				"report_id": {"not-a-uuid"},
			},
			check: func(t *testing.T, f validations.Filters) {
				if f.ReportID != nil {
					t.Errorf("ReportID = %v, want nil", f.ReportID)
				}
			},
		},
		{
			name: "ai result and booleans",
			values: url.Values{
				"ai_result": {validations.ResultMangroveDetected},
				"verified":  {"true"},
				"is_active": {"false"},
			},
			check: func(t *testing.T, f validations.Filters) {
				if f.AIResult == nil || *f.AIResult != validations.ResultMangroveDetected {
					t.Errorf("AIResult = %v", f.AIResult)
				}
				if f.Verified == nil || !*f.Verified {
					t.Errorf("Verified = %v, want true", f.Verified)
				}
				if f.IsActive == nil || *f.IsActive {
					t.Errorf("IsActive = %v, want false", f.IsActive)
				}
			},
		},
		{
			name: "malformed boolean ignored",
			values: url.Values{
				"verified": {"maybe"},
			},
			check: func(t *testing.T, f validations.Filters) {
				if f.Verified != nil {
					t.Errorf("Verified = %v, want nil", f.Verified)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, validations.FiltersFromQuery(tt.values))
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "not found",
			err:  validations.ErrNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "report not found",
			err:  triage.ErrReportNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "duplicate",
			err:  validations.ErrDuplicate,
			want: http.StatusConflict,
		},
		{
			name: "invalid feedback",
			err:  validations.ErrInvalidFeedback,
			want: http.StatusBadRequest,
		},
		{
			name: "no images",
			err:  triage.ErrNoImages,
			want: http.StatusBadRequest,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("find validation: %w", validations.ErrNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "unknown error",
			err:  fmt.Errorf("connection reset"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validations.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
