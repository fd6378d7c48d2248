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

var sectionColumns = []string{
	"id", "page_id", "template_key", "slot", "position", "active", "data", "created_at", "updated_at",
}

// ListSections returns a page's sections ordered by slot, position and id.
func (s *Store) ListSections(ctx context.Context, pageID int64) ([]models.PageSection, error) {
	rows, err := query(ctx, s.db, s.sb.Select(sectionColumns...).From("page_sections").
		Where(sq.Eq{"page_id": pageID}).
		OrderBy("slot", "position", "id"))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	sections := []models.PageSection{}
	for rows.Next() {
		var sec models.PageSection
		if err := rows.Scan(&sec.ID, &sec.PageID, &sec.TemplateKey, &sec.Slot, &sec.Position,
			&sec.Active, &sec.Data, &sec.CreatedAt, &sec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

func (s *Store) GetSection(ctx context.Context, id int64) (models.PageSection, error) {
	var sec models.PageSection
	err := queryRow(ctx, s.db, s.sb.Select(sectionColumns...).From("page_sections").Where(sq.Eq{"id": id}),
		&sec.ID, &sec.PageID, &sec.TemplateKey, &sec.Slot, &sec.Position,
		&sec.Active, &sec.Data, &sec.CreatedAt, &sec.UpdatedAt)
	return sec, err
}

// CreateSection appends the section to the end of its slot when Position
// is zero.
func (s *Store) CreateSection(ctx context.Context, sec *models.PageSection) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if sec.Position == 0 {
			var next int
			err := queryRow(ctx, tx, s.sb.Select("COALESCE(MAX(position), 0) + 1").From("page_sections").
				Where(sq.Eq{"page_id": sec.PageID, "slot": sec.Slot}), &next)
			if err != nil {
				return fmt.Errorf("next position: %w", err)
			}
			sec.Position = next
		}
		now := s.now()
		id, err := insert(ctx, tx, s.sb.Insert("page_sections").
			Columns(sectionColumns[1:]...).
			Values(sec.PageID, sec.TemplateKey, sec.Slot, sec.Position, sec.Active, sec.Data, now, now))
		if err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
		sec.ID, sec.CreatedAt, sec.UpdatedAt = id, now, now
		return nil
	})
}

func (s *Store) UpdateSection(ctx context.Context, sec *models.PageSection) error {
	sec.UpdatedAt = s.now()
	res, err := exec(ctx, s.db, s.sb.Update("page_sections").
		SetMap(map[string]any{
			"template_key": sec.TemplateKey,
			"slot":         sec.Slot,
			"position":     sec.Position,
			"active":       sec.Active,
			"data":         sec.Data,
			"updated_at":   sec.UpdatedAt,
		}).
		Where(sq.Eq{"id": sec.ID}))
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteSection(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("page_sections").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return affected(res)
}

// ReorderSections renumbers each slot of pageID from 1: listed sections
// first in the given order, then the unlisted ones in their current order.
// Every id must belong to pageID; otherwise nothing changes and ErrNotFound
// is returned.
func (s *Store) ReorderSections(ctx context.Context, pageID int64, ids []int64) error {
	current, err := s.ListSections(ctx, pageID)
	if err != nil {
		return err
	}
	slotOf := make(map[int64]string, len(current))
	for _, sec := range current {
		slotOf[sec.ID] = sec.Slot
	}

	listed := make(map[int64]bool, len(ids))
	order := make(map[string][]int64)
	var slots []string
	for _, id := range ids {
		slot, ok := slotOf[id]
		if !ok {
			return fmt.Errorf("section %d: %w", id, ErrNotFound)
		}
		if _, seen := order[slot]; !seen {
			slots = append(slots, slot)
		}
		listed[id] = true
		order[slot] = append(order[slot], id)
	}
	for _, sec := range current {
		if listed[sec.ID] {
			continue
		}
		if _, seen := order[sec.Slot]; !seen {
			slots = append(slots, sec.Slot)
		}
		order[sec.Slot] = append(order[sec.Slot], sec.ID)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		now := s.now()
		for _, slot := range slots {
			for i, id := range order[slot] {
				res, err := exec(ctx, tx, s.sb.Update("page_sections").
					Set("position", i+1).
					Set("updated_at", now).
					Where(sq.Eq{"id": id, "page_id": pageID}))
				if err != nil {
					return fmt.Errorf("reorder section %d: %w", id, err)
				}
				if err := affected(res); err != nil {
					return fmt.Errorf("section %d: %w", id, err)
				}
			}
		}
		return nil
	})
}

// TemplateKeysInUse returns the distinct template keys referenced by
// saved sections.
func (s *Store) TemplateKeysInUse(ctx context.Context) ([]string, error) {
	rows, err := query(ctx, s.db, s.sb.Select("DISTINCT template_key").From("page_sections").OrderBy("template_key"))
	if err != nil {
		return nil, fmt.Errorf("template keys in use: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan template key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
