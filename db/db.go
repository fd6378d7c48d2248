// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported database engine.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect validates a database type name.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case SQLite, Postgres:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("unsupported database type %q (want sqlite or postgres)", s)
}

// Placeholder returns the bind parameter format for the dialect.
func (d Dialect) Placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// Builder returns a squirrel statement builder for the dialect.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder())
}

// Open connects to the database and verifies the connection.
func Open(dialect Dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(string(dialect), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// sqlite allows a single writer; foreign keys are off by default
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}
