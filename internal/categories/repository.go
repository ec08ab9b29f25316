package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/promptvault/pkg/query"
	"github.com/JaimeStill/promptvault/pkg/repository"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

type repo struct {
	db      *sql.DB
	dialect query.Dialect
	logger  *slog.Logger
}

// New creates a category repository implementing the System interface.
func New(db *sql.DB, dialect query.Dialect, logger *slog.Logger) System {
	return &repo{
		db:      db,
		dialect: dialect,
		logger:  logger.With("system", "categories"),
	}
}

func (r *repo) Handler(maxBodyBytes int64) *Handler {
	return NewHandler(r, r.logger, maxBodyBytes)
}

func (r *repo) builder() *query.Builder {
	return query.NewBuilder(r.dialect, projection, defaultSort)
}

func (r *repo) List(ctx context.Context) ([]Category, error) {
	q, args := r.builder().Build()

	categories, err := repository.QueryMany(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return categories, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Category, error) {
	c, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) find(ctx context.Context, q repository.Querier, id int64) (Category, error) {
	stmt, args := r.builder().BuildSingle("id", id)
	return repository.QueryOne(ctx, q, stmt, args, scanCategory)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Category, error) {
	cmd.normalize()
	if err := validation.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if cmd.Color == "" {
		cmd.Color = DefaultColor
	}

	exists := r.dialect.Rebind("SELECT COUNT(*) FROM categories WHERE name = ?")
	insert := r.dialect.Rebind(`
		INSERT INTO categories (name, color, created_at)
		VALUES (?, ?, ?)
		RETURNING id`)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		n, err := repository.QueryScalar[int](ctx, tx, exists, cmd.Name)
		if err != nil {
			return Category{}, err
		}
		if n > 0 {
			return Category{}, ErrDuplicate
		}

		id, err := repository.QueryScalar[int64](ctx, tx, insert, cmd.Name, cmd.Color, timestamp())
		if err != nil {
			return Category{}, err
		}
		return r.find(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("category created", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	lookup := r.dialect.Rebind("SELECT name FROM categories WHERE id = ?")
	inUse := r.dialect.Rebind("SELECT COUNT(*) FROM prompts WHERE category = ?")
	remove := r.dialect.Rebind("DELETE FROM categories WHERE id = ?")

	name, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (string, error) {
		name, err := repository.QueryScalar[string](ctx, tx, lookup, id)
		if err != nil {
			return "", err
		}

		n, err := repository.QueryScalar[int](ctx, tx, inUse, name)
		if err != nil {
			return "", err
		}
		if n > 0 {
			return "", ErrInUse
		}

		return name, repository.ExecExpectOne(ctx, tx, remove, id)
	})
	if err != nil {
		if errors.Is(err, ErrInUse) {
			return err
		}
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("category deleted", "id", id, "name", name)
	return nil
}

func (r *repo) Seed(ctx context.Context) error {
	insert := r.dialect.Rebind(`
		INSERT INTO categories (name, color, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO NOTHING`)

	added, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		var added int64
		now := timestamp()
		for _, c := range Defaults {
			n, err := repository.Exec(ctx, tx, insert, c.Name, c.Color, now)
			if err != nil {
				return 0, fmt.Errorf("seed %s: %w", c.Name, err)
			}
			added += n
		}
		return added, nil
	})
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	r.logger.Info("categories seeded", "added", added)
	return nil
}

func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
