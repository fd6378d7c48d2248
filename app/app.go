// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package app wires the store, capability catalog, template registry and
// renderer into a runnable CMS. It is shared by the server and folioctl.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/cliparse"
	"github.com/danielhkuo/folio/cms"
	"github.com/danielhkuo/folio/db"
	"github.com/danielhkuo/folio/providers"
	"github.com/danielhkuo/folio/router"
	"github.com/danielhkuo/folio/store"
	"github.com/danielhkuo/folio/templates"
)

type App struct {
	Config   cliparse.Config
	DB       *sql.DB
	Store    *store.Store
	Catalog  *capability.Catalog
	Resolver *capability.Resolver
	Registry *templates.Registry
	Renderer *cms.Renderer

	watcher *templates.Watcher
	ownsDB  bool
}

// Open connects to the configured database, applies migrations and builds
// the app around the connection.
func Open(cfg cliparse.Config) (*App, error) {
	dialect := cfg.Dialect()
	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	a, err := New(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	a.ownsDB = true
	return a, nil
}

// New builds the app on an existing, migrated connection. Template
// bindings are checked against the capability catalog, and every template
// saved sections use must still be defined.
func New(conn *sql.DB, cfg cliparse.Config) (*App, error) {
	s := store.New(conn, cfg.Dialect())

	catalog := capability.NewCatalog()
	if err := providers.Register(catalog, s); err != nil {
		return nil, err
	}
	resolver := capability.NewResolver(catalog,
		capability.WithStrictTypes(cfg.StrictCapabilityTypes),
		capability.WithUnknownParams(cfg.UnknownParamPolicy()),
	)

	defs, err := templates.Load(cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	registry, err := templates.NewRegistryFrom(defs)
	if err != nil {
		return nil, err
	}
	if err := registry.CheckBindings(catalog); err != nil {
		return nil, fmt.Errorf("template bindings: %w", err)
	}
	keys, err := s.TemplateKeysInUse(context.Background())
	if err != nil {
		return nil, err
	}
	if err := registry.CheckInUse(keys); err != nil {
		return nil, err
	}

	renderer := cms.NewRenderer(registry, resolver, cms.WithConcurrency(cfg.RenderConcurrency))

	return &App{
		Config:   cfg,
		DB:       conn,
		Store:    s,
		Catalog:  catalog,
		Resolver: resolver,
		Registry: registry,
		Renderer: renderer,
	}, nil
}

func (a *App) Handler() http.Handler {
	return router.NewRouter(a.Store, a.Renderer, a.Config)
}

// WatchTemplates reloads the registry whenever the override directory
// changes. It is a no-op unless watching is enabled.
func (a *App) WatchTemplates(ctx context.Context) error {
	if !a.Config.WatchTemplates || a.Config.TemplatesDir == "" {
		return nil
	}
	w, err := templates.NewWatcher(a.Config.TemplatesDir, a.Registry, a.Catalog, slog.Default())
	if err != nil {
		return err
	}
	w.InUse(a.Store.TemplateKeysInUse)
	w.OnReload(func(err error) {
		if err == nil {
			slog.Debug("template registry version", "version", a.Registry.Version())
		}
	})
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	a.watcher = w
	return nil
}

// Close stops the watcher and, for apps created by Open, closes the
// database.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.ownsDB {
		return a.DB.Close()
	}
	return nil
}
