// Package sqlstore implements storage.Provider's data methods over
// database/sql. Queries are written with "?" placeholders and rebound for
// the dialect the store was opened with.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/migration"
	"github.com/julianstephens/dayweave/internal/storage"
)

// Store holds an open database and its placeholder style. The sqlite and
// postgres packages embed it and add connection management.
type Store struct {
	db          *sql.DB
	placeholder migration.Placeholder
}

func New(db *sql.DB, placeholder migration.Placeholder) *Store {
	if placeholder == nil {
		placeholder = migration.Question
	}
	return &Store{db: db, placeholder: placeholder}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// rebind rewrites "?" placeholders into the store's dialect.
func (s *Store) rebind(query string) string {
	if s.placeholder(1) == "?" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(s.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// inTx runs fn in a transaction, committing only if it returns nil.
func (s *Store) inTx(ctx context.Context, fn func(exec func(query string, args ...interface{}) error) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exec := func(query string, args ...interface{}) error {
		_, err := tx.ExecContext(ctx, s.rebind(query), args...)
		return err
	}
	if err := fn(exec); err != nil {
		return err
	}
	return tx.Commit()
}

// notFound maps sql.ErrNoRows to storage.ErrNotFound.
func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return err
}

// requireRow turns a zero-row update into storage.ErrNotFound.
func requireRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

// timeLayout is fixed width so stored instants compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func parseNullTime(ns sql.NullString, field string) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return &t, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}
