package triage

import (
	"log/slog"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
	"github.com/KHUSHI-P15/Hackout/internal/reports"
)

// Runtime bundles the dependencies that pipeline nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and domain systems.
type Runtime struct {
	Classifier *classify.Classifier
	Reports    reports.System
	Logger     *slog.Logger
}
