// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

type ExperienceFilter struct {
	VisibleOnly bool
	Kind        string
	Limit       int
}

var experienceColumns = []string{
	"id", "kind", "organization", "role", "description", "location",
	"started_at", "ended_at", "position", "visible",
}

func scanExperience(row interface{ Scan(...any) error }) (models.Experience, error) {
	var e models.Experience
	var ended sql.NullTime
	err := row.Scan(&e.ID, &e.Kind, &e.Organization, &e.Role, &e.Description, &e.Location,
		&e.StartedAt, &ended, &e.Position, &e.Visible)
	e.EndedAt = nullTime(ended)
	return e, err
}

// ListExperiences returns experiences newest first.
func (s *Store) ListExperiences(ctx context.Context, f ExperienceFilter) ([]models.Experience, error) {
	b := s.sb.Select(experienceColumns...).From("experiences").OrderBy("started_at DESC", "position", "id")
	if f.VisibleOnly {
		b = b.Where(sq.Eq{"visible": true})
	}
	if f.Kind != "" {
		b = b.Where(sq.Eq{"kind": f.Kind})
	}
	b = applyLimit(b, f.Limit)

	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	out := []models.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetExperience(ctx context.Context, id int64) (models.Experience, error) {
	q, args, err := s.sb.Select(experienceColumns...).From("experiences").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Experience{}, err
	}
	e, err := scanExperience(s.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return models.Experience{}, ErrNotFound
	}
	return e, err
}

func (s *Store) CreateExperience(ctx context.Context, e *models.Experience) error {
	id, err := insert(ctx, s.db, s.sb.Insert("experiences").
		Columns(experienceColumns[1:]...).
		Values(e.Kind, e.Organization, e.Role, e.Description, e.Location,
			e.StartedAt, e.EndedAt, e.Position, e.Visible))
	if err != nil {
		return fmt.Errorf("insert experience: %w", err)
	}
	e.ID = id
	return nil
}

func (s *Store) UpdateExperience(ctx context.Context, e *models.Experience) error {
	res, err := exec(ctx, s.db, s.sb.Update("experiences").
		SetMap(map[string]any{
			"kind":         e.Kind,
			"organization": e.Organization,
			"role":         e.Role,
			"description":  e.Description,
			"location":     e.Location,
			"started_at":   e.StartedAt,
			"ended_at":     e.EndedAt,
			"position":     e.Position,
			"visible":      e.Visible,
		}).
		Where(sq.Eq{"id": e.ID}))
	if err != nil {
		return fmt.Errorf("update experience: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteExperience(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("experiences").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return affected(res)
}
