// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(SQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := openMemory(t)

	require.NoError(t, CreateSchema(conn, SQLite))
	require.NoError(t, CreateSchema(conn, SQLite))

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	for _, table := range []string{"projects", "page_sections", "website_settings", "project_technologies"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestApplyMigrationsOrderAndUpSection(t *testing.T) {
	conn := openMemory(t)
	fsys := fstest.MapFS{
		"m/0002_more.sql": {Data: []byte("-- +migrate Up\nALTER TABLE things ADD COLUMN note TEXT;\n-- +migrate Down\nDROP TABLE things;\n")},
		"m/0001_init.sql": {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY);")},
		"m/README.md":     {Data: []byte("not sql")},
	}

	require.NoError(t, ApplyMigrations(conn, SQLite, fsys, "m"))

	_, err := conn.Exec("INSERT INTO things (id, note) VALUES (1, 'x')")
	assert.NoError(t, err, "down section must not run")
}

func TestExtractUpMigration(t *testing.T) {
	assert.Equal(t, "\nA\n", ExtractUpMigration("-- +migrate Up\nA\n-- +migrate Down\nB"))
	assert.Equal(t, "plain", ExtractUpMigration("plain"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)

	query, args, err := Postgres.Builder().Select("id").From("pages").Where("slug = ?", "home").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM pages WHERE slug = $1", query)
	assert.Equal(t, []any{"home"}, args)
}
