package guides

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/brandforge/giftguide/pkg/pagination"
)

// System defines the public contract for guide domain operations.
type System interface {
	Handler(environment string) *Handler

	Generate(ctx context.Context, req GenerateRequest) (*Outcome, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Guide], error)

	Find(ctx context.Context, id uuid.UUID) (*Guide, error)
	Document(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Guide, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
