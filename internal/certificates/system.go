package certificates

import (
	"context"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/pkg/pagination"
)

// System defines the public contract for certificate domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Certificate], error)

	Find(ctx context.Context, id uuid.UUID) (*Certificate, error)
	Issue(ctx context.Context, applicationID uuid.UUID) (*Certificate, error)
	VerifyNumber(ctx context.Context, number string) (*VerifyResult, error)
	Revoke(ctx context.Context, id uuid.UUID, cmd RevokeCommand) (*Certificate, error)
}
