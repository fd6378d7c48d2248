// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and manages the schema.

# Dialects

Two engines are supported:

  - sqlite (modernc.org/sqlite, pure Go; default for development and tests)
  - postgres (github.com/lib/pq)

Dialect.Builder returns a squirrel statement builder using the right
placeholder format ("?" or "$1").

# Schema Creation

CreateSchema applies the embedded migrations for a dialect:

	conn, err := db.Open(db.SQLite, "file:folio.db")
	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		log.Fatal(err)
	}

Migrations live in migrations/<dialect>/NNNN_name.sql, are applied in name
order inside a transaction, and are recorded in schema_migrations so each
runs at most once. Only the "-- +migrate Up" section is executed.

# Tables

  - technologies, images
  - projects, project_technologies
  - skills, courses, experiences, initiatives, contact_channels
  - website_settings (single row, id = 1)
  - pages, page_sections

# Relationships

	projects *──* technologies (via project_technologies)
	projects *──1 images (cover_image_id, SET NULL on delete)
	pages 1──* page_sections

Section data is a JSON document validated against its template before it is
written; the database does not constrain it.
*/
package db
