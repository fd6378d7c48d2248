// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

type SkillFilter struct {
	VisibleOnly bool
	Category    string
}

var skillColumns = []string{"id", "name", "category", "level", "position", "visible"}

func scanSkill(row interface{ Scan(...any) error }) (models.Skill, error) {
	var sk models.Skill
	err := row.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.Position, &sk.Visible)
	return sk, err
}

// ListSkills returns skills ordered by category, then position.
func (s *Store) ListSkills(ctx context.Context, f SkillFilter) ([]models.Skill, error) {
	b := s.sb.Select(skillColumns...).From("skills").OrderBy("category", "position", "id")
	if f.VisibleOnly {
		b = b.Where(sq.Eq{"visible": true})
	}
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": f.Category})
	}
	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

func (s *Store) GetSkill(ctx context.Context, id int64) (models.Skill, error) {
	var sk models.Skill
	err := queryRow(ctx, s.db, s.sb.Select(skillColumns...).From("skills").Where(sq.Eq{"id": id}),
		&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.Position, &sk.Visible)
	return sk, err
}

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) error {
	id, err := insert(ctx, s.db, s.sb.Insert("skills").
		Columns(skillColumns[1:]...).
		Values(sk.Name, sk.Category, sk.Level, sk.Position, sk.Visible))
	if err != nil {
		return fmt.Errorf("insert skill: %w", err)
	}
	sk.ID = id
	return nil
}

func (s *Store) UpdateSkill(ctx context.Context, sk *models.Skill) error {
	res, err := exec(ctx, s.db, s.sb.Update("skills").
		SetMap(map[string]any{
			"name":     sk.Name,
			"category": sk.Category,
			"level":    sk.Level,
			"position": sk.Position,
			"visible":  sk.Visible,
		}).
		Where(sq.Eq{"id": sk.ID}))
	if err != nil {
		return fmt.Errorf("update skill: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteSkill(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("skills").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return affected(res)
}
