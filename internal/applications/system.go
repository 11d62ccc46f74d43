package applications

import (
	"context"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/pkg/events"
	"github.com/halalcheck/halalcheck/pkg/pagination"
)

// System defines the public contract for application domain operations.
type System interface {
	Handler() *Handler

	// Start subscribes the system to analysis completion events so finished
	// analyses are linked to their pending applications.
	Start(bus *events.Bus)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Application], error)

	Find(ctx context.Context, id uuid.UUID) (*Application, error)
	Create(ctx context.Context, cmd CreateCommand) (*Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
