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

// ProjectFilter narrows ListProjects. Zero value lists everything.
type ProjectFilter struct {
	VisibleOnly  bool
	FeaturedOnly bool
	// TechnologyIDs keeps projects tagged with any of these technologies.
	TechnologyIDs []int64
	Slug          string
	Limit         int
}

var projectColumns = []string{
	"id", "slug", "title", "summary", "body", "url", "repository_url",
	"cover_image_id", "featured", "visible", "position", "created_at", "updated_at",
}

func scanProject(row interface{ Scan(...any) error }) (models.Project, error) {
	var p models.Project
	var cover sql.NullInt64
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Body, &p.URL, &p.RepositoryURL,
		&cover, &p.Featured, &p.Visible, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	if cover.Valid {
		p.CoverImageID = &cover.Int64
	}
	return p, err
}

func (s *Store) ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	b := s.sb.Select(projectColumns...).From("projects").OrderBy("position", "id")
	if f.VisibleOnly {
		b = b.Where(sq.Eq{"visible": true})
	}
	if f.FeaturedOnly {
		b = b.Where(sq.Eq{"featured": true})
	}
	if f.Slug != "" {
		b = b.Where(sq.Eq{"slug": f.Slug})
	}
	if len(f.TechnologyIDs) > 0 {
		sub := s.sb.Select("project_id").From("project_technologies").
			Where(sq.Eq{"technology_id": f.TechnologyIDs})
		subSQL, subArgs, err := sub.PlaceholderFormat(sq.Question).ToSql()
		if err != nil {
			return nil, err
		}
		b = b.Where("id IN ("+subSQL+")", subArgs...)
	}
	b = applyLimit(b, f.Limit)

	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadProjectTechnologies(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	b := s.sb.Select(projectColumns...).From("projects").Where(sq.Eq{"id": id})
	q, args, err := b.ToSql()
	if err != nil {
		return models.Project{}, err
	}
	p, err := scanProject(s.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}

	list := []models.Project{p}
	if err := s.loadProjectTechnologies(ctx, list); err != nil {
		return models.Project{}, err
	}
	return list[0], nil
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := insert(ctx, tx, s.sb.Insert("projects").
			Columns(projectColumns[1:]...).
			Values(p.Slug, p.Title, p.Summary, p.Body, p.URL, p.RepositoryURL,
				p.CoverImageID, p.Featured, p.Visible, p.Position, p.CreatedAt, p.UpdatedAt))
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		p.ID = id
		return s.setProjectTechnologies(ctx, tx, p.ID, p.TechnologyIDs)
	})
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = s.now()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := exec(ctx, tx, s.sb.Update("projects").
			SetMap(map[string]any{
				"slug":           p.Slug,
				"title":          p.Title,
				"summary":        p.Summary,
				"body":           p.Body,
				"url":            p.URL,
				"repository_url": p.RepositoryURL,
				"cover_image_id": p.CoverImageID,
				"featured":       p.Featured,
				"visible":        p.Visible,
				"position":       p.Position,
				"updated_at":     p.UpdatedAt,
			}).
			Where(sq.Eq{"id": p.ID}))
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		if err := affected(res); err != nil {
			return err
		}
		return s.setProjectTechnologies(ctx, tx, p.ID, p.TechnologyIDs)
	})
}

func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("projects").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return affected(res)
}

func (s *Store) setProjectTechnologies(ctx context.Context, tx *sql.Tx, projectID int64, ids []int64) error {
	if _, err := exec(ctx, tx, s.sb.Delete("project_technologies").Where(sq.Eq{"project_id": projectID})); err != nil {
		return fmt.Errorf("clear project technologies: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	b := s.sb.Insert("project_technologies").Columns("project_id", "technology_id")
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		b = b.Values(projectID, id)
	}
	if _, err := exec(ctx, tx, b); err != nil {
		return fmt.Errorf("link project technologies: %w", err)
	}
	return nil
}

func (s *Store) loadProjectTechnologies(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	index := make(map[int64]int, len(projects))
	ids := make([]int64, len(projects))
	for i := range projects {
		index[projects[i].ID] = i
		ids[i] = projects[i].ID
		projects[i].TechnologyIDs = []int64{}
	}

	rows, err := query(ctx, s.db, s.sb.Select("project_id", "technology_id").
		From("project_technologies").
		Where(sq.Eq{"project_id": ids}).
		OrderBy("project_id", "technology_id"))
	if err != nil {
		return fmt.Errorf("load project technologies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, techID int64
		if err := rows.Scan(&projectID, &techID); err != nil {
			return err
		}
		i := index[projectID]
		projects[i].TechnologyIDs = append(projects[i].TechnologyIDs, techID)
	}
	return rows.Err()
}
