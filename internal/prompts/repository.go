package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

type repo struct {
	db         *sql.DB
	dialect    query.Dialect
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// Option configures the prompt repository.
type Option func(*repo)

// WithClock replaces time.Now, which stamps writes and defines "today".
func WithClock(now func() time.Time) Option {
	return func(r *repo) { r.now = now }
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	dialect query.Dialect,
	logger *slog.Logger,
	pagination pagination.Config,
	opts ...Option,
) System {
	r := &repo{
		db:         db,
		dialect:    dialect,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *repo) Handler(maxBodyBytes int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodyBytes)
}

func (r *repo) builder() *query.Builder {
	return query.NewBuilder(r.dialect, projection, defaultSort...)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Prompt, error) {
	filters.Normalize()

	q, args := filters.Apply(r.builder()).Build()

	prompts, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	return prompts, nil
}

func (r *repo) Page(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)
	if filters.Search == nil {
		filters.Search = page.Search
	}
	filters.Normalize()

	qb := filters.Apply(r.builder())
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryScalar[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	prompts, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(prompts, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) UpdatedToday(ctx context.Context) (int, error) {
	now := r.now()
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	q, args := r.builder().
		WhereRange("updatedAt", start.UTC(), end.UTC()).
		BuildCount()

	n, err := repository.QueryScalar[int](ctx, r.db, q, args...)
	if err != nil {
		return 0, fmt.Errorf("count prompts updated today: %w", err)
	}
	return n, nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	q, args := r.builder().BuildCount()

	total, err := repository.QueryScalar[int](ctx, r.db, q, args...)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	today, err := r.UpdatedToday(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{Total: total, UpdatedToday: today}, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Prompt, error) {
	p, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalid)
	}
	return &p, nil
}

func (r *repo) find(ctx context.Context, q repository.Querier, id int64) (Prompt, error) {
	stmt, args := r.builder().BuildSingle("id", id)
	return repository.QueryOne(ctx, q, stmt, args, scanPrompt)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	cmd.normalize()
	if err := validation.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	now := r.timestamp()
	insert := r.dialect.Rebind(`
		INSERT INTO prompts (title, content, category, description, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		id, err := repository.QueryScalar[int64](ctx, tx, insert,
			cmd.Title, cmd.Content, cmd.Category, cmd.Description, cmd.Tags, now, now,
		)
		if err != nil {
			return Prompt{}, err
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title, "category", p.Category)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id int64, cmd UpdateCommand) (*Prompt, error) {
	c := CreateCommand(cmd)
	c.normalize()
	if err := validation.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	update := r.dialect.Rebind(`
		UPDATE prompts
		SET title = ?, content = ?, category = ?, description = ?, tags = ?, updated_at = ?
		WHERE id = ?`)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		if err := repository.ExecExpectOne(ctx, tx, update,
			c.Title, c.Content, c.Category, c.Description, c.Tags, r.timestamp(), id,
		); err != nil {
			return Prompt{}, err
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalid)
	}

	r.logger.Info("prompt updated", "id", p.ID, "title", p.Title)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	err := repository.ExecExpectOne(ctx, r.db,
		r.dialect.Rebind("DELETE FROM prompts WHERE id = ?"),
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrInvalid)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

// timestamp returns the current time in UTC at the precision both supported
// databases store.
func (r *repo) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}
