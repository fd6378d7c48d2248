// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const migrationTable = "schema_migrations"

//go:embed migrations
var migrationFS embed.FS

// CreateSchema applies the embedded migrations for the dialect.
// Safe to call multiple times - each file is applied at most once.
func CreateSchema(conn *sql.DB, dialect Dialect) error {
	root := path.Join("migrations", string(dialect))
	if err := ApplyMigrations(conn, dialect, migrationFS, root); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ApplyMigrations executes the .sql files in root, in name order, that
// are not yet recorded in schema_migrations.
func ApplyMigrations(conn *sql.DB, dialect Dialect, migrations fs.FS, root string) error {
	if conn == nil {
		return errors.New("sql db is required")
	}

	entries, err := fs.ReadDir(migrations, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
);
`, migrationTable)
	if _, err := conn.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	sb := dialect.Builder()
	for _, file := range files {
		content, err := fs.ReadFile(migrations, path.Join(root, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		applied, err := isApplied(conn, sb, file)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied {
			continue
		}

		upSQL := ExtractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := conn.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}

		if _, err := tx.Exec(upSQL); err != nil && !IsAlreadyExistsError(err) {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}

		insertSQL, args, err := sb.Insert(migrationTable).
			Columns("name", "applied_at").
			Values(file, time.Now().UTC().UnixMilli()).
			ToSql()
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(insertSQL, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}

	return nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, "-- +migrate Up")
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, "-- +migrate Down")
	if downIdx == -1 {
		return content[upIdx+len("-- +migrate Up"):]
	}
	return content[upIdx+len("-- +migrate Up") : downIdx]
}

// IsAlreadyExistsError reports whether this error indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(conn *sql.DB, sb sq.StatementBuilderType, name string) (bool, error) {
	query, args, err := sb.Select("1").From(migrationTable).Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return false, err
	}
	var found int
	err = conn.QueryRow(query, args...).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
