// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

// ListTechnologies returns technologies ordered by name. Non-empty ids
// restricts the result to those records.
func (s *Store) ListTechnologies(ctx context.Context, ids []int64) ([]models.Technology, error) {
	b := s.sb.Select("id", "name", "slug", "icon", "created_at").From("technologies").OrderBy("name", "id")
	if len(ids) > 0 {
		b = b.Where(sq.Eq{"id": ids})
	}
	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	defer rows.Close()

	techs := []models.Technology{}
	for rows.Next() {
		var t models.Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Icon, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan technology: %w", err)
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

func (s *Store) GetTechnology(ctx context.Context, id int64) (models.Technology, error) {
	var t models.Technology
	err := queryRow(ctx, s.db,
		s.sb.Select("id", "name", "slug", "icon", "created_at").From("technologies").Where(sq.Eq{"id": id}),
		&t.ID, &t.Name, &t.Slug, &t.Icon, &t.CreatedAt)
	return t, err
}

func (s *Store) CreateTechnology(ctx context.Context, t *models.Technology) error {
	t.CreatedAt = s.now()
	id, err := insert(ctx, s.db, s.sb.Insert("technologies").
		Columns("name", "slug", "icon", "created_at").
		Values(t.Name, t.Slug, t.Icon, t.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert technology: %w", err)
	}
	t.ID = id
	return nil
}

func (s *Store) UpdateTechnology(ctx context.Context, t *models.Technology) error {
	res, err := exec(ctx, s.db, s.sb.Update("technologies").
		Set("name", t.Name).
		Set("slug", t.Slug).
		Set("icon", t.Icon).
		Where(sq.Eq{"id": t.ID}))
	if err != nil {
		return fmt.Errorf("update technology: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteTechnology(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("technologies").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete technology: %w", err)
	}
	return affected(res)
}
