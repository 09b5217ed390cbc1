package validations

import (
	"errors"
	"net/http"

	"github.com/KHUSHI-P15/Hackout/internal/triage"
)

// Domain errors for validation operations.
var (
	ErrNotFound        = errors.New("validation not found")
	ErrDuplicate       = errors.New("validation already exists")
	ErrInvalidFeedback = errors.New("invalid feedback")
)

// MapHTTPStatus maps validation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, triage.ErrReportNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidFeedback) || errors.Is(err, triage.ErrNoImages) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
