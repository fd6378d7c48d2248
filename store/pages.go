// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

var pageColumns = []string{"id", "slug", "title", "published", "created_at", "updated_at"}

func (s *Store) ListPages(ctx context.Context) ([]models.Page, error) {
	rows, err := query(ctx, s.db, s.sb.Select(pageColumns...).From("pages").OrderBy("slug"))
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := []models.Page{}
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *Store) GetPage(ctx context.Context, id int64) (models.Page, error) {
	return s.getPage(ctx, sq.Eq{"id": id})
}

func (s *Store) GetPageBySlug(ctx context.Context, slug string) (models.Page, error) {
	return s.getPage(ctx, sq.Eq{"slug": slug})
}

func (s *Store) getPage(ctx context.Context, where sq.Eq) (models.Page, error) {
	var p models.Page
	err := queryRow(ctx, s.db, s.sb.Select(pageColumns...).From("pages").Where(where),
		&p.ID, &p.Slug, &p.Title, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) CreatePage(ctx context.Context, p *models.Page) error {
	now := s.now()
	id, err := insert(ctx, s.db, s.sb.Insert("pages").
		Columns("slug", "title", "published", "created_at", "updated_at").
		Values(p.Slug, p.Title, p.Published, now, now))
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	return nil
}

func (s *Store) UpdatePage(ctx context.Context, p *models.Page) error {
	p.UpdatedAt = s.now()
	res, err := exec(ctx, s.db, s.sb.Update("pages").
		SetMap(map[string]any{
			"slug":       p.Slug,
			"title":      p.Title,
			"published":  p.Published,
			"updated_at": p.UpdatedAt,
		}).
		Where(sq.Eq{"id": p.ID}))
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return affected(res)
}

// DeletePage removes the page and, by cascade, its sections.
func (s *Store) DeletePage(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("pages").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return affected(res)
}
