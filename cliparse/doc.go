// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources are layered, later ones winning:

 1. Defaults()
 2. A TOML file named by -c or FOLIO_CONFIG
 3. A .env file (-env-file, default ".env"; missing files are skipped)
    and the process environment
 4. Flags given on the command line

Load performs steps 1 to 3 without flag parsing or validation; folioctl
uses it and applies its own flags on top.

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, ADMIN_KEY_SALT, TEMPLATES_DIR,
	WATCH_TEMPLATES, STRICT_CAPABILITY_TYPES, UNKNOWN_CAPABILITY_PARAMS,
	RENDER_CONCURRENCY, DEFAULT_LOCALE, CORS_ORIGINS (comma separated)

The TOML keys are the lowercase forms of the same names.
*/
package cliparse
