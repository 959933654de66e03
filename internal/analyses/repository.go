package analyses

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/claimcheck-io/claimcheck/internal/archive"
	"github.com/claimcheck-io/claimcheck/internal/engine"
	"github.com/claimcheck-io/claimcheck/internal/extract"
	"github.com/claimcheck-io/claimcheck/internal/prompts"
	"github.com/claimcheck-io/claimcheck/internal/workflow"
	"github.com/claimcheck-io/claimcheck/pkg/pagination"
	"github.com/claimcheck-io/claimcheck/pkg/query"
	"github.com/claimcheck-io/claimcheck/pkg/repository"
	"github.com/claimcheck-io/claimcheck/pkg/storage"
)

const (
	policyContentType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	archiveContentType = "application/zip"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	rt         *workflow.Runtime
	agent      gaconfig.AgentConfig
	logger     *slog.Logger
	pagination pagination.Config
	slots      *semaphore.Weighted
}

// New creates an analysis repository implementing the System interface.
// It internally constructs the decision engine and workflow runtime
// from the provided dependencies. maxConcurrent caps the number of
// analysis runs in flight at once; each run is sequential internally.
func New(
	db *sql.DB,
	store storage.System,
	ps prompts.System,
	agent gaconfig.AgentConfig,
	opts engine.Options,
	maxConcurrent int64,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	eng := engine.New(engine.NewGenerator(agent), ps, logger, opts)
	rt := &workflow.Runtime{
		Engine: eng,
		Logger: logger.With("workflow", "analysis"),
	}

	return &repo{
		db:         db,
		storage:    store,
		rt:         rt,
		agent:      agent,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
		slots:      semaphore.NewWeighted(maxConcurrent),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "PolicyName", "ArchiveName")

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

	decisions, err := r.loadDecisions(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Decisions = decisions

	return &a, nil
}

// Analyze runs the full pipeline for an uploaded policy and archive:
// policy text extraction, archive unpacking, the analysis workflow,
// artifact upload, and run persistence. Concurrent runs are capped by
// the configured slot count.
func (r *repo) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error) {
	if err := r.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire analysis slot: %w", err)
	}
	defer r.slots.Release(1)

	policyText := extract.DOCX(cmd.PolicyData)
	if policyText == "" {
		return nil, ErrEmptyPolicy
	}

	entries, err := archive.Unpack(cmd.ArchiveData)
	if err != nil {
		return nil, err
	}

	result, err := workflow.Execute(ctx, r.rt, workflow.Job{
		PolicyText: policyText,
		Invoices:   entries,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", cmd.ArchiveName, err)
	}

	id := uuid.New()
	policyKey := buildStorageKey(id, "policy", cmd.PolicyName)
	archiveKey := buildStorageKey(id, "archive", cmd.ArchiveName)

	if err := r.uploadArtifacts(ctx, cmd, policyKey, archiveKey); err != nil {
		return nil, err
	}

	a, err := r.insertRun(ctx, id, cmd, result, policyKey, archiveKey)
	if err != nil {
		r.cleanupArtifacts(ctx, policyKey, archiveKey)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analysis complete",
		"id", a.ID,
		"archive", a.ArchiveName,
		"invoices", a.InvoiceCount,
		"fully_reimbursed", a.Summary.FullyReimbursed,
		"partially_reimbursed", a.Summary.PartiallyReimbursed,
		"declined", a.Summary.Declined,
	)
	return a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
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

	r.cleanupArtifacts(ctx, a.PolicyKey, a.ArchiveKey)

	r.logger.Info("analysis deleted", "id", id)
	return nil
}

func (r *repo) Policy(ctx context.Context, id uuid.UUID) (*Artifact, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := r.storage.Download(ctx, a.PolicyKey)
	if err != nil {
		return nil, fmt.Errorf("download policy %s: %w", a.PolicyKey, err)
	}

	return &Artifact{
		Filename:    a.PolicyName,
		ContentType: policyContentType,
		Body:        body,
	}, nil
}

func (r *repo) Archive(ctx context.Context, id uuid.UUID) (*Artifact, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := r.storage.Download(ctx, a.ArchiveKey)
	if err != nil {
		return nil, fmt.Errorf("download archive %s: %w", a.ArchiveKey, err)
	}

	return &Artifact{
		Filename:    a.ArchiveName,
		ContentType: archiveContentType,
		Body:        body,
	}, nil
}

func (r *repo) uploadArtifacts(ctx context.Context, cmd AnalyzeCommand, policyKey, archiveKey string) error {
	if err := r.storage.Upload(ctx, policyKey, bytes.NewReader(cmd.PolicyData), policyContentType); err != nil {
		return fmt.Errorf("upload policy blob: %w", err)
	}

	if err := r.storage.Upload(ctx, archiveKey, bytes.NewReader(cmd.ArchiveData), archiveContentType); err != nil {
		r.cleanupArtifacts(ctx, policyKey, "")
		return fmt.Errorf("upload archive blob: %w", err)
	}

	return nil
}

func (r *repo) cleanupArtifacts(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Warn("artifact delete failed", "key", key, "error", err)
		}
	}
}

func (r *repo) insertRun(
	ctx context.Context,
	id uuid.UUID,
	cmd AnalyzeCommand,
	result *workflow.Result,
	policyKey, archiveKey string,
) (*Analysis, error) {
	insertQ := `
		INSERT INTO analyses(
			id, policy_name, archive_name, invoice_count,
			fully_reimbursed, partially_reimbursed, declined, total_reimbursable,
			model_name, provider_name, policy_key, archive_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, policy_name, archive_name, invoice_count,
				  fully_reimbursed, partially_reimbursed, declined, total_reimbursable,
				  model_name, provider_name, policy_key, archive_key, analyzed_at`

	insertArgs := []any{
		id,
		cmd.PolicyName,
		cmd.ArchiveName,
		len(result.Decisions),
		result.Summary.FullyReimbursed,
		result.Summary.PartiallyReimbursed,
		result.Summary.Declined,
		result.Summary.TotalReimbursable,
		r.agent.Model.Name,
		r.agent.Provider.Name,
		policyKey,
		archiveKey,
	}

	decisionQ := `
		INSERT INTO decisions(analysis_id, position, invoice_id, status, amount, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		stored, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanAnalysis)
		if err != nil {
			return Analysis{}, fmt.Errorf("insert analysis: %w", err)
		}

		for i, d := range result.Decisions {
			if _, err := tx.ExecContext(
				ctx, decisionQ,
				id, i, d.InvoiceID, d.Status, d.Amount, d.Reason,
			); err != nil {
				return Analysis{}, fmt.Errorf("insert decision %d: %w", i, err)
			}
		}

		return stored, nil
	})

	if err != nil {
		return nil, err
	}

	a.Decisions = result.Decisions
	return &a, nil
}

func (r *repo) loadDecisions(ctx context.Context, id uuid.UUID) ([]engine.Decision, error) {
	q := `
		SELECT invoice_id, status, amount, reason
		FROM decisions
		WHERE analysis_id = $1
		ORDER BY position`

	decisions, err := repository.QueryMany(ctx, r.db, q, []any{id}, scanDecision)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	return decisions, nil
}

func buildStorageKey(id uuid.UUID, kind, filename string) string {
	return fmt.Sprintf("analyses/%s/%s/%s", id, kind, sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "upload"
	}
	return url.PathEscape(name)
}
