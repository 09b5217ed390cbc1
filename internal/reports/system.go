package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/pkg/pagination"
)

// System defines the public contract for report domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Create(ctx context.Context, cmd CreateCommand) (*Report, error)
	AttachMedia(ctx context.Context, id uuid.UUID, cmd MediaCommand) (*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
