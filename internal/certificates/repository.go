package certificates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/internal/applications"
	"github.com/halalcheck/halalcheck/pkg/pagination"
	"github.com/halalcheck/halalcheck/pkg/query"
	"github.com/halalcheck/halalcheck/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a certificate repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "certificates"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Certificate], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Number", "ProductName", "CompanyName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count certificates: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCertificate)
	if err != nil {
		return nil, fmt.Errorf("query certificates: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCertificate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Issue(ctx context.Context, applicationID uuid.UUID) (*Certificate, error) {
	now := time.Now().UTC()

	insertQ := `
		INSERT INTO certificates(
			id, number, application_id, product_name, company_name,
			status, issued_at, expires_at
		)
		SELECT $1, $2, ap.id, ap.product_name, ap.company_name, $3, $4, $5
		FROM applications ap
		WHERE ap.id = $6 AND ap.status = 'approved'
		RETURNING id, number, application_id, product_name, company_name,
				  status, issued_at, expires_at, revoked_at, revocation_reason`

	insertArgs := []any{
		uuid.New(),
		NewNumber(now),
		StatusActive,
		now,
		now.Add(Validity),
		applicationID,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Certificate, error) {
		cert, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanCertificate)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Certificate{}, r.issueFailure(ctx, applicationID)
			}
			return Certificate{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE applications SET status = 'certified', updated_at = NOW() WHERE id = $1 AND status = 'approved'",
			applicationID,
		); err != nil {
			return Certificate{}, ErrNotApproved
		}

		return cert, nil
	})

	if err != nil {
		if errors.Is(err, ErrNotApproved) || errors.Is(err, applications.ErrNotFound) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("certificate issued",
		"id", c.ID,
		"number", c.Number,
		"application_id", applicationID,
	)
	return &c, nil
}

// issueFailure distinguishes a missing application from one in the wrong
// status when the guarded insert matched no rows.
func (r *repo) issueFailure(ctx context.Context, applicationID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)",
		applicationID,
	).Scan(&exists)

	if err == nil && !exists {
		return applications.ErrNotFound
	}
	return ErrNotApproved
}

func (r *repo) VerifyNumber(ctx context.Context, number string) (*VerifyResult, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Number", number)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCertificate)
	if err != nil {
		if errors.Is(repository.MapError(err, ErrNotFound, ErrDuplicate), ErrNotFound) {
			return &VerifyResult{Valid: false, Reason: "certificate not found"}, nil
		}
		return nil, fmt.Errorf("verify certificate %s: %w", number, err)
	}

	result := &VerifyResult{Certificate: &c}
	now := time.Now().UTC()

	switch {
	case c.Status == StatusRevoked:
		result.Reason = "certificate revoked"
	case !now.Before(c.ExpiresAt):
		result.Reason = "certificate expired"
	default:
		result.Valid = true
	}

	return result, nil
}

func (r *repo) Revoke(ctx context.Context, id uuid.UUID, cmd RevokeCommand) (*Certificate, error) {
	if cmd.Reason == "" {
		return nil, ErrMissingReason
	}

	revokeQ := `
		UPDATE certificates
		SET status = $1, revoked_at = NOW(), revocation_reason = $2
		WHERE id = $3 AND status = $4
		RETURNING id, number, application_id, product_name, company_name,
				  status, issued_at, expires_at, revoked_at, revocation_reason`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Certificate, error) {
		cert, err := repository.QueryOne(
			ctx, tx, revokeQ,
			[]any{StatusRevoked, cmd.Reason, id, StatusActive},
			scanCertificate,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if _, findErr := r.Find(ctx, id); findErr != nil {
					return Certificate{}, findErr
				}
				return Certificate{}, ErrAlreadyRevoked
			}
			return Certificate{}, err
		}
		return cert, nil
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyRevoked) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("certificate revoked",
		"id", c.ID,
		"number", c.Number,
		"reason", cmd.Reason,
	)
	return &c, nil
}
