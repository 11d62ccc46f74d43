package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/internal/workflow"
	"github.com/halalcheck/halalcheck/pkg/events"
	"github.com/halalcheck/halalcheck/pkg/pagination"
	"github.com/halalcheck/halalcheck/pkg/query"
	"github.com/halalcheck/halalcheck/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an application repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "applications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Start(bus *events.Bus) {
	bus.Subscribe(workflow.EventAnalysisCompleted, "applications", r.linkAnalysis)
}

// linkAnalysis attaches a completed analysis to the newest unlinked
// application for the same product and moves it into review. Events for
// products with no pending application are ignored.
func (r *repo) linkAnalysis(event events.Event) error {
	payload, ok := event.Data.(workflow.CompletedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", event.Data)
	}

	analysisID, err := uuid.Parse(payload.RequestID)
	if err != nil {
		return nil
	}

	q := `
		UPDATE applications
		SET analysis_id = $1,
			status = CASE WHEN status = 'new' THEN 'under_review' ELSE status END,
			updated_at = NOW()
		WHERE id = (
			SELECT id FROM applications
			WHERE product_name = $2 AND analysis_id IS NULL
			ORDER BY submitted_at DESC
			LIMIT 1
		)`

	result, err := r.db.Exec(q, analysisID, payload.ProductName)
	if err != nil {
		return fmt.Errorf("link analysis %s: %w", analysisID, err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		r.logger.Info("analysis linked to application",
			"analysis_id", analysisID,
			"product", payload.ProductName,
		)
	}
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Application], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ProductName", "CompanyName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanApplication)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Application, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanApplication)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Application, error) {
	if cmd.ProductName == "" || cmd.CompanyName == "" {
		return nil, ErrMissingFields
	}

	org := cmd.OrgID
	if org == "" {
		org = "public"
	}

	var notes *string
	if cmd.Notes != "" {
		notes = &cmd.Notes
	}

	q := `
		INSERT INTO applications(id, org_id, product_name, company_name, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, org_id, product_name, company_name, status, analysis_id, notes, submitted_at, updated_at`

	insertArgs := []any{uuid.New(), org, cmd.ProductName, cmd.CompanyName, string(StatusNew), notes}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Application, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanApplication)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("application submitted",
		"id", a.ID,
		"product", a.ProductName,
		"company", a.CompanyName,
	)
	return &a, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Application, error) {
	if !cmd.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	updateQ := `
		UPDATE applications
		SET status = $1,
			notes = COALESCE($2, notes),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, org_id, product_name, company_name, status, analysis_id, notes, submitted_at, updated_at`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Application, error) {
		current, err := repository.QueryOne(
			ctx, tx,
			"SELECT status FROM applications WHERE id = $1 FOR UPDATE",
			[]any{id},
			func(s repository.Scanner) (Status, error) {
				var st Status
				err := s.Scan(&st)
				return st, err
			},
		)
		if err != nil {
			return Application{}, err
		}

		if !CanTransition(current, cmd.Status) {
			return Application{}, fmt.Errorf(
				"%w: %s to %s", ErrInvalidTransition, current, cmd.Status,
			)
		}

		return repository.QueryOne(
			ctx, tx, updateQ,
			[]any{string(cmd.Status), cmd.Notes, id},
			scanApplication,
		)
	})

	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("application status changed",
		"id", a.ID,
		"status", a.Status,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM applications WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("application deleted", "id", id)
	return nil
}
