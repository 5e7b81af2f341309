package guides

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brandforge/giftguide/internal/identity"
	"github.com/brandforge/giftguide/internal/pipeline"
	"github.com/brandforge/giftguide/pkg/delivery"
	"github.com/brandforge/giftguide/pkg/pagination"
	"github.com/brandforge/giftguide/pkg/query"
	"github.com/brandforge/giftguide/pkg/repository"
	"github.com/brandforge/giftguide/pkg/storage"
)

// Runner executes the generation pipeline for a raw request.
type Runner interface {
	Run(ctx context.Context, raw identity.RawRequest) (*pipeline.Result, error)
}

type repo struct {
	db         *sql.DB
	storage    storage.System
	runner     Runner
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a guide repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	runner Runner,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		runner:     runner,
		logger:     logger.With("system", "guides"),
		pagination: pagination,
	}
}

func (r *repo) Handler(environment string) *Handler {
	return NewHandler(r, r.logger, r.pagination, environment)
}

// Generate runs the pipeline and records the outcome. Persistence is an
// audit concern: a storage or database failure after a successful run is
// logged and degraded, never surfaced as a generation failure.
func (r *repo) Generate(ctx context.Context, req GenerateRequest) (*Outcome, error) {
	raw := identity.RawRequest{
		CompanyName:    req.CompanyName,
		Domain:         req.Domain,
		RecipientEmail: req.RecipientEmail,
		AEName:         req.AEName,
		AEEmail:        req.AEEmail,
		AEPhone:        req.AEPhone,
	}

	result, err := r.runner.Run(ctx, raw)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Result: result,
		Record: r.persist(ctx, result),
	}, nil
}

func (r *repo) persist(ctx context.Context, result *pipeline.Result) *Guide {
	id := uuid.New()
	key := buildStorageKey(id, result.Request.CompanyName)

	reader := bytes.NewReader(result.Document)
	if err := r.storage.Upload(ctx, key, reader, "application/pdf"); err != nil {
		r.logger.Warn("guide artifact upload failed", "key", key, "error", err)
		return nil
	}

	q := `
		INSERT INTO guides(
			id, company_name, domain, recipient_email,
			ae_name, ae_email, ae_phone,
			logo_found, logo_url,
			primary_color, secondary_color, background_color, accent_color,
			page_count, size_bytes, storage_key,
			delivery_status, delivery_id, delivery_detail
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, company_name, domain, recipient_email, ae_name, ae_email, ae_phone,
			logo_found, logo_url, primary_color, secondary_color, background_color, accent_color,
			page_count, size_bytes, storage_key, delivery_status, delivery_id, delivery_detail, created_at`

	req := result.Request
	insertArgs := []any{
		id,
		req.CompanyName,
		req.Domain,
		req.RecipientEmail,
		req.Contact.Name,
		req.Contact.Email,
		req.Contact.Phone,
		result.LogoFound,
		result.LogoURL,
		result.Palette.Primary,
		result.Palette.Secondary,
		result.Palette.Background,
		nullable(result.Palette.Accent),
		result.PageCount,
		int64(len(result.Document)),
		key,
		string(result.Delivery),
		nullable(result.DeliveryID),
		nullable(result.DeliveryDetail),
	}

	g, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Guide, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanGuide)
	})
	if err != nil {
		r.logger.Warn("guide record insert failed", "id", id, "error", err)
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating artifact delete failed", "key", key, "error", delErr)
		}
		return nil
	}

	r.logger.Info("guide recorded", "id", g.ID, "company", g.CompanyName)
	return &g
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Guide], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CompanyName", "Domain", "RecipientEmail")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count guides: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanGuide)
	if err != nil {
		return nil, fmt.Errorf("query guides: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Guide, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	g, err := repository.QueryOne(ctx, r.db, q, args, scanGuide)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &g, nil
}

// Document streams the stored artifact for a guide. The caller must close
// the returned reader.
func (r *repo) Document(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Guide, error) {
	g, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := r.storage.Download(ctx, g.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("download guide artifact: %w", err)
	}

	return reader, g, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	g, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM guides WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, g.StorageKey); delErr != nil {
		r.logger.Warn(
			"artifact delete failed after DB delete",
			"key", g.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("guide deleted", "id", id)
	return nil
}

func buildStorageKey(id uuid.UUID, companyName string) string {
	return fmt.Sprintf("guides/%s/%s.pdf", id, delivery.AttachmentFilename(companyName))
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
