package reports

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KHUSHI-P15/Hackout/pkg/pagination"
	"github.com/KHUSHI-P15/Hackout/pkg/query"
	"github.com/KHUSHI-P15/Hackout/pkg/repository"
	"github.com/KHUSHI-P15/Hackout/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a report repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description", "Address")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	reports, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(reports, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rep, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rep, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Report, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidReport)
	}
	if strings.TrimSpace(cmd.Category) == "" {
		return nil, fmt.Errorf("%w: category required", ErrInvalidReport)
	}

	media, err := marshalLocators(cmd.Media)
	if err != nil {
		return nil, fmt.Errorf("encode media locators: %w", err)
	}

	q := `
		INSERT INTO reports(id, title, description, category, status, media, media_keys, latitude, longitude, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, description, category, status, media, media_keys, latitude, longitude, address, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Title,
		cmd.Description,
		cmd.Category,
		StatusPending,
		media,
		[]byte(`[]`),
		cmd.Latitude,
		cmd.Longitude,
		cmd.Address,
	}

	rep, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanReport)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report created", "id", rep.ID, "category", rep.Category)
	return &rep, nil
}

func (r *repo) AttachMedia(ctx context.Context, id uuid.UUID, cmd MediaCommand) (*Report, error) {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload media blob: %w", err)
	}

	media, err := marshalLocators(append(rep.Media, r.storage.URL(key)))
	if err != nil {
		return nil, fmt.Errorf("encode media locators: %w", err)
	}

	keys, err := marshalLocators(append(rep.MediaKeys, key))
	if err != nil {
		return nil, fmt.Errorf("encode media keys: %w", err)
	}

	q := `
		UPDATE reports
		SET media = $2, media_keys = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, title, description, category, status, media, media_keys, latitude, longitude, address, created_at, updated_at`

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, media, keys}, scanReport)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("media attached", "id", id, "key", key)
	return &updated, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, key := range rep.MediaKeys {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", key,
				"error", delErr,
			)
		}
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}

func marshalLocators(locators []string) ([]byte, error) {
	if locators == nil {
		locators = []string{}
	}
	return json.Marshal(locators)
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("reports/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "media"
	}
	return url.PathEscape(name)
}
