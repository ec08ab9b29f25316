package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/promptvault/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

type item struct {
	ID   int64
	Name string
}

func scanItem(s repository.Scanner) (item, error) {
	var it item
	err := s.Scan(&it.ID, &it.Name)
	return it, err
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestMapErrorNil(t *testing.T) {
	got := repository.MapError(nil, errNotFound, errDuplicate)
	if got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapErrorNotFound(t *testing.T) {
	got := repository.MapError(sql.ErrNoRows, errNotFound, errDuplicate)
	if !errors.Is(got, errNotFound) {
		t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errNotFound)
	}
}

func TestMapErrorPgDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	got := repository.MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(PgError 23505) = %v, want %v", got, errDuplicate)
	}
}

func TestMapErrorPgNonDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	got := repository.MapError(pgErr, errNotFound, errDuplicate)
	if got != pgErr {
		t.Errorf("MapError(PgError 23503) should pass through, got %v", got)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	original := errors.New("some other error")
	got := repository.MapError(original, errNotFound, errDuplicate)
	if got != original {
		t.Errorf("MapError(other) = %v, want %v", got, original)
	}
}

func TestMapErrorSQLiteDuplicate(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, "a"); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := db.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, "a")
	if err == nil {
		t.Fatal("expected unique violation, got nil")
	}

	if !repository.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
	if got := repository.MapError(err, errNotFound, errDuplicate); !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(sqlite unique) = %v, want %v", got, errDuplicate)
	}
}

func TestWithTxCommit(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	got, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (item, error) {
		return repository.QueryOne(ctx, tx,
			`INSERT INTO items (name) VALUES (?) RETURNING id, name`,
			[]any{"committed"}, scanItem)
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
	if got.Name != "committed" || got.ID == 0 {
		t.Errorf("WithTx() = %+v, want committed row", got)
	}

	items, err := repository.QueryMany(ctx, db, `SELECT id, name FROM items`, nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestWithTxRollback(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, "rolled back"); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	items, err := repository.QueryMany(ctx, db, `SELECT id, name FROM items`, nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0 after rollback", len(items))
	}
}

func TestQueryManyEmpty(t *testing.T) {
	db := openDB(t)

	items, err := repository.QueryMany(context.Background(), db, `SELECT id, name FROM items`, nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("QueryMany() = %v, want empty non-nil slice", items)
	}
}

func TestQueryOneNoRows(t *testing.T) {
	db := openDB(t)

	_, err := repository.QueryOne(context.Background(), db,
		`SELECT id, name FROM items WHERE id = ?`, []any{42}, scanItem)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("QueryOne() error = %v, want sql.ErrNoRows", err)
	}
}

func TestExecExpectOne(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, "x"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repository.ExecExpectOne(ctx, db, `DELETE FROM items WHERE name = ?`, "x"); err != nil {
		t.Errorf("ExecExpectOne() first delete error = %v", err)
	}

	err := repository.ExecExpectOne(ctx, db, `DELETE FROM items WHERE name = ?`, "x")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ExecExpectOne() second delete error = %v, want sql.ErrNoRows", err)
	}
}

func TestQueryScalarAndExec(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	id, err := repository.QueryScalar[int64](ctx, db,
		`INSERT INTO items (name) VALUES (?) RETURNING id`, "first")
	if err != nil {
		t.Fatalf("QueryScalar() insert error = %v", err)
	}
	if id < 1 {
		t.Errorf("QueryScalar() id = %d, want >= 1", id)
	}

	n, err := repository.Exec(ctx, db,
		`INSERT INTO items (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, "first")
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Exec() affected = %d, want 0 on conflict", n)
	}

	count, err := repository.QueryScalar[int](ctx, db, `SELECT COUNT(*) FROM items`)
	if err != nil {
		t.Fatalf("QueryScalar() count error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
