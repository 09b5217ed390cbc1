package api

import (
	"context"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
	"github.com/KHUSHI-P15/Hackout/internal/reports"
	"github.com/KHUSHI-P15/Hackout/internal/validations"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Reports     reports.System
	Validations validations.System
	Classifier  *classify.Handler
	Backends    classify.Status
}

// NewDomain creates all domain systems from the API runtime. Backend
// selection happens here: the local model server is probed once and the
// resulting choice is fixed for the process lifetime.
func NewDomain(ctx context.Context, runtime *Runtime) *Domain {
	backend, status := classify.Resolve(ctx, runtime.Classify, runtime.Agent, runtime.Logger)

	validator := classify.NewValidator(
		runtime.Classify.ValidateTimeoutDuration(),
		runtime.Classify.MaxImageSizeBytes(),
	)

	classifier := classify.NewClassifier(backend, validator, runtime.Logger)

	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	validationsSystem := validations.New(
		runtime.Database.Connection(),
		classifier,
		status,
		runtime.Logger,
		runtime.Pagination,
		reportsSystem,
	)

	return &Domain{
		Reports:     reportsSystem,
		Validations: validationsSystem,
		Classifier:  classify.NewHandler(classifier, runtime.Logger),
		Backends:    status,
	}
}
