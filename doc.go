// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the folio portfolio CMS server.

Folio stores portfolio content (projects, skills, courses, experience,
initiatives, contact channels) and composes public pages from sections.
Each section is an instance of a versioned template; templates may bind a
data capability whose result is merged into the section before it is sent
to the front-end.

# Starting the Server

The server reads defaults, an optional TOML file, a .env file, the
environment and finally command line flags:

	DATABASE_URL=folio.db ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or postgres connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for the admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TEMPLATES_DIR (-templates): YAML templates layered over the built-ins
  - WATCH_TEMPLATES (-watch): Reload templates when the directory changes
  - STRICT_CAPABILITY_TYPES (-strict): Reject mistyped capability params
  - UNKNOWN_CAPABILITY_PARAMS (-unknown-params): reject or drop
  - RENDER_CONCURRENCY (-concurrency): Sections rendered in parallel
  - DEFAULT_LOCALE (-locale): Locale for visitors without a preference

# Startup Sequence

 1. Parse configuration (cliparse)
 2. Open the database and apply migrations (db)
 3. Register content capabilities and load templates (app)
 4. Verify every template binding against the capability catalog
 5. Optionally watch the template directory
 6. Serve HTTP until SIGINT or SIGTERM, then shut down gracefully

The admin key for the configured salt is printed by:

	go run ./cmd/folioctl admin-key
*/
package main
