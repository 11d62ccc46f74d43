package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/halalcheck/halalcheck/internal/extraction"
	"github.com/halalcheck/halalcheck/internal/islamic/analyzer"
	"github.com/halalcheck/halalcheck/internal/islamic/madhab"
	"github.com/halalcheck/halalcheck/internal/islamic/verification"
	"github.com/halalcheck/halalcheck/internal/workflow"
	"github.com/halalcheck/halalcheck/pkg/events"
	"github.com/halalcheck/halalcheck/pkg/pagination"
	"github.com/halalcheck/halalcheck/pkg/query"
	"github.com/halalcheck/halalcheck/pkg/repository"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	fallbackEnabled bool,
	analyzer *analyzer.Analyzer,
	madhab *madhab.Resolver,
	verification *verification.Service,
	bus *events.Bus,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	rt := &workflow.Runtime{
		Agent:           agent,
		FallbackEnabled: fallbackEnabled,
		Analyzer:        analyzer,
		Madhab:          madhab,
		Verification:    verification,
		Bus:             bus,
		Logger:          logger.With("workflow", "analysis"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		logger:     logger.With("system", "analyses"),
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
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ProductName", "OverallStatus")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error) {
	if cmd.ProductName == "" {
		return nil, ErrNoProduct
	}

	ingredients := cmd.Ingredients
	var extractionMethod *string

	if len(ingredients) == 0 {
		if cmd.LabelText == "" {
			return nil, ErrNoIngredients
		}

		extracted, err := extraction.Extract(cmd.LabelText)
		if err != nil {
			if errors.Is(err, extraction.ErrNoIngredients) {
				return nil, ErrNoIngredients
			}
			return nil, fmt.Errorf("extract ingredients: %w", err)
		}

		ingredients = extracted.Ingredients
		method := string(extracted.Method)
		extractionMethod = &method
	}

	id := uuid.New()
	req := workflow.Request{
		ProductName: cmd.ProductName,
		Ingredients: ingredients,
		Context:     cmd.Context,
		RequestID:   id.String(),
	}

	result, err := workflow.Execute(ctx, r.rt, req)
	if err != nil {
		return nil, fmt.Errorf("analyze product %q: %w", cmd.ProductName, err)
	}

	ingredientsJSON, err := json.Marshal(result.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	warningsJSON, err := json.Marshal(result.Warnings)
	if err != nil {
		return nil, fmt.Errorf("marshal warnings: %w", err)
	}
	recommendationsJSON, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendations: %w", err)
	}
	complianceJSON, err := json.Marshal(result.Compliance)
	if err != nil {
		return nil, fmt.Errorf("marshal compliance: %w", err)
	}
	notesJSON, err := json.Marshal(result.ScholarlyNotes)
	if err != nil {
		return nil, fmt.Errorf("marshal scholarly notes: %w", err)
	}

	insertQ := `
		INSERT INTO analyses(
			id, product_name, overall_status, confidence_score, madhab,
			ingredients, warnings, recommendations, compliance,
			scholarly_notes, extraction_method, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, product_name, overall_status, confidence_score, madhab,
				  ingredients, warnings, recommendations, compliance,
				  scholarly_notes, extraction_method, model_name, provider_name,
				  analyzed_at`

	insertArgs := []any{
		id,
		result.ProductName,
		string(result.OverallStatus),
		result.ConfidenceScore,
		string(req.Madhab()),
		ingredientsJSON,
		warningsJSON,
		recommendationsJSON,
		complianceJSON,
		notesJSON,
		extractionMethod,
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, insertQ, insertArgs, scanAnalysis)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	// Emit only after the row exists so subscribers can reference it.
	workflow.EmitCompleted(r.rt.Bus, req, *result)

	r.logger.Info("product analyzed",
		"id", a.ID,
		"product", a.ProductName,
		"status", a.OverallStatus,
		"confidence", a.ConfidenceScore,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM analyses WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analysis deleted", "id", id)
	return nil
}
