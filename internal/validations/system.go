package validations

import (
	"context"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/pkg/pagination"
)

// System defines the public contract for validation domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Validation], error)

	Find(ctx context.Context, id uuid.UUID) (*Validation, error)
	FindByReport(ctx context.Context, reportID uuid.UUID) (*Validation, error)
	Analyze(ctx context.Context, reportID uuid.UUID) (*AnalysisOutcome, error)
	Reconcile(ctx context.Context, reportID uuid.UUID, cmd ReconcileCommand) (*Validation, error)
	Stats(ctx context.Context) (*Stats, error)
}
