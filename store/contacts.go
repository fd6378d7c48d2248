// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

type ContactFilter struct {
	VisibleOnly bool
}

var contactColumns = []string{"id", "kind", "label", "value", "url", "position", "visible"}

func (s *Store) ListContacts(ctx context.Context, f ContactFilter) ([]models.ContactChannel, error) {
	b := s.sb.Select(contactColumns...).From("contact_channels").OrderBy("position", "id")
	if f.VisibleOnly {
		b = b.Where(sq.Eq{"visible": true})
	}
	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	out := []models.ContactChannel{}
	for rows.Next() {
		var c models.ContactChannel
		if err := rows.Scan(&c.ID, &c.Kind, &c.Label, &c.Value, &c.URL, &c.Position, &c.Visible); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetContact(ctx context.Context, id int64) (models.ContactChannel, error) {
	var c models.ContactChannel
	err := queryRow(ctx, s.db, s.sb.Select(contactColumns...).From("contact_channels").Where(sq.Eq{"id": id}),
		&c.ID, &c.Kind, &c.Label, &c.Value, &c.URL, &c.Position, &c.Visible)
	return c, err
}

func (s *Store) CreateContact(ctx context.Context, c *models.ContactChannel) error {
	id, err := insert(ctx, s.db, s.sb.Insert("contact_channels").
		Columns(contactColumns[1:]...).
		Values(c.Kind, c.Label, c.Value, c.URL, c.Position, c.Visible))
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID = id
	return nil
}

func (s *Store) UpdateContact(ctx context.Context, c *models.ContactChannel) error {
	res, err := exec(ctx, s.db, s.sb.Update("contact_channels").
		SetMap(map[string]any{
			"kind":     c.Kind,
			"label":    c.Label,
			"value":    c.Value,
			"url":      c.URL,
			"position": c.Position,
			"visible":  c.Visible,
		}).
		Where(sq.Eq{"id": c.ID}))
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("contact_channels").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return affected(res)
}
