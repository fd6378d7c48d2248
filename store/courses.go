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

type CourseFilter struct {
	VisibleOnly   bool
	CompletedOnly bool
	Limit         int
}

var courseColumns = []string{"id", "title", "institution", "certificate_url", "completed_at", "position", "visible"}

func scanCourse(row interface{ Scan(...any) error }) (models.Course, error) {
	var c models.Course
	var completed sql.NullTime
	err := row.Scan(&c.ID, &c.Title, &c.Institution, &c.CertificateURL, &completed, &c.Position, &c.Visible)
	c.CompletedAt = nullTime(completed)
	return c, err
}

// ListCourses returns courses ordered by position, most recently completed
// first within the same position.
func (s *Store) ListCourses(ctx context.Context, f CourseFilter) ([]models.Course, error) {
	b := s.sb.Select(courseColumns...).From("courses").OrderBy("position", "completed_at DESC", "id")
	if f.VisibleOnly {
		b = b.Where(sq.Eq{"visible": true})
	}
	if f.CompletedOnly {
		b = b.Where(sq.NotEq{"completed_at": nil})
	}
	b = applyLimit(b, f.Limit)

	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) GetCourse(ctx context.Context, id int64) (models.Course, error) {
	q, args, err := s.sb.Select(courseColumns...).From("courses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Course{}, err
	}
	c, err := scanCourse(s.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return models.Course{}, ErrNotFound
	}
	return c, err
}

func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	id, err := insert(ctx, s.db, s.sb.Insert("courses").
		Columns(courseColumns[1:]...).
		Values(c.Title, c.Institution, c.CertificateURL, c.CompletedAt, c.Position, c.Visible))
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	c.ID = id
	return nil
}

func (s *Store) UpdateCourse(ctx context.Context, c *models.Course) error {
	res, err := exec(ctx, s.db, s.sb.Update("courses").
		SetMap(map[string]any{
			"title":           c.Title,
			"institution":     c.Institution,
			"certificate_url": c.CertificateURL,
			"completed_at":    c.CompletedAt,
			"position":        c.Position,
			"visible":         c.Visible,
		}).
		Where(sq.Eq{"id": c.ID}))
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteCourse(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("courses").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return affected(res)
}
