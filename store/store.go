// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/danielhkuo/folio/db"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

// runner is satisfied by *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists content records.
type Store struct {
	db  *sql.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{
		db:  conn,
		sb:  dialect.Builder(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

func query(ctx context.Context, r runner, b sq.Sqlizer) (*sql.Rows, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.QueryContext(ctx, q, args...)
}

func queryRow(ctx context.Context, r runner, b sq.Sqlizer, dest ...any) error {
	q, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	err = r.QueryRowContext(ctx, q, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func exec(ctx context.Context, r runner, b sq.Sqlizer) (sql.Result, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	res, err := r.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, mapConstraint(err)
	}
	return res, nil
}

// insert runs b with RETURNING id and returns the new id.
func insert(ctx context.Context, r runner, b sq.InsertBuilder) (int64, error) {
	var id int64
	q, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	if err := r.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

// affected returns ErrNotFound when the statement touched no rows.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Detail)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func applyLimit(b sq.SelectBuilder, limit int) sq.SelectBuilder {
	if limit > 0 {
		return b.Limit(uint64(limit))
	}
	return b
}

// nullTime converts a nullable scan target to a pointer.
func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
