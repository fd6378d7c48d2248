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

type InitiativeFilter struct {
	VisibleOnly     bool
	IncludeArchived bool
	Limit           int
}

var initiativeColumns = []string{"id", "name", "description", "url", "status", "started_at", "position", "visible"}

func scanInitiative(row interface{ Scan(...any) error }) (models.Initiative, error) {
	var in models.Initiative
	var started sql.NullTime
	err := row.Scan(&in.ID, &in.Name, &in.Description, &in.URL, &in.Status, &started, &in.Position, &in.Visible)
	in.StartedAt = nullTime(started)
	return in, err
}

func (s *Store) ListInitiatives(ctx context.Context, f InitiativeFilter) ([]models.Initiative, error) {
	b := s.sb.Select(initiativeColumns...).From("initiatives").OrderBy("position", "id")
	if f.VisibleOnly {
		b = b.Where(sq.Eq{"visible": true})
	}
	if !f.IncludeArchived {
		b = b.Where(sq.Eq{"status": models.InitiativeActive})
	}
	b = applyLimit(b, f.Limit)

	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list initiatives: %w", err)
	}
	defer rows.Close()

	out := []models.Initiative{}
	for rows.Next() {
		in, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("scan initiative: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *Store) GetInitiative(ctx context.Context, id int64) (models.Initiative, error) {
	q, args, err := s.sb.Select(initiativeColumns...).From("initiatives").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Initiative{}, err
	}
	in, err := scanInitiative(s.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return models.Initiative{}, ErrNotFound
	}
	return in, err
}

func (s *Store) CreateInitiative(ctx context.Context, in *models.Initiative) error {
	id, err := insert(ctx, s.db, s.sb.Insert("initiatives").
		Columns(initiativeColumns[1:]...).
		Values(in.Name, in.Description, in.URL, in.Status, in.StartedAt, in.Position, in.Visible))
	if err != nil {
		return fmt.Errorf("insert initiative: %w", err)
	}
	in.ID = id
	return nil
}

func (s *Store) UpdateInitiative(ctx context.Context, in *models.Initiative) error {
	res, err := exec(ctx, s.db, s.sb.Update("initiatives").
		SetMap(map[string]any{
			"name":        in.Name,
			"description": in.Description,
			"url":         in.URL,
			"status":      in.Status,
			"started_at":  in.StartedAt,
			"position":    in.Position,
			"visible":     in.Visible,
		}).
		Where(sq.Eq{"id": in.ID}))
	if err != nil {
		return fmt.Errorf("update initiative: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteInitiative(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("initiatives").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete initiative: %w", err)
	}
	return affected(res)
}
