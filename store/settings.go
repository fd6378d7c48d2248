// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

// DefaultSettings is returned by GetSettings until settings are first saved.
func DefaultSettings() models.WebsiteSettings {
	return models.WebsiteSettings{
		SiteName:        "Portfolio",
		Tagline:         models.LocalizedText{},
		MetaDescription: models.LocalizedText{},
		HomePageSlug:    "home",
		DefaultLocale:   "en",
		Locales:         models.StringList{"en"},
	}
}

func (s *Store) GetSettings(ctx context.Context) (models.WebsiteSettings, error) {
	var ws models.WebsiteSettings
	err := queryRow(ctx, s.db,
		s.sb.Select("site_name", "tagline", "meta_description", "home_page_slug",
			"default_locale", "locales", "updated_at").
			From("website_settings").Where(sq.Eq{"id": 1}),
		&ws.SiteName, &ws.Tagline, &ws.MetaDescription, &ws.HomePageSlug,
		&ws.DefaultLocale, &ws.Locales, &ws.UpdatedAt)
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return ws, fmt.Errorf("get settings: %w", err)
	}
	return ws, nil
}

// SaveSettings inserts or replaces the settings row.
func (s *Store) SaveSettings(ctx context.Context, ws *models.WebsiteSettings) error {
	ws.UpdatedAt = s.now()
	_, err := exec(ctx, s.db, s.sb.Insert("website_settings").
		Columns("id", "site_name", "tagline", "meta_description", "home_page_slug",
			"default_locale", "locales", "updated_at").
		Values(1, ws.SiteName, ws.Tagline, ws.MetaDescription, ws.HomePageSlug,
			ws.DefaultLocale, ws.Locales, ws.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			site_name = excluded.site_name,
			tagline = excluded.tagline,
			meta_description = excluded.meta_description,
			home_page_slug = excluded.home_page_slug,
			default_locale = excluded.default_locale,
			locales = excluded.locales,
			updated_at = excluded.updated_at`))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
