// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/folio/models"
)

var imageColumns = []string{"id", "path", "alt", "mime_type", "size_bytes", "width", "height", "created_at"}

// ListImages returns images newest first, or the given ids in any order.
func (s *Store) ListImages(ctx context.Context, ids []int64) ([]models.Image, error) {
	b := s.sb.Select(imageColumns...).From("images").OrderBy("id DESC")
	if len(ids) > 0 {
		b = b.Where(sq.Eq{"id": ids})
	}
	rows, err := query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.Path, &img.Alt, &img.MimeType, &img.SizeBytes,
			&img.Width, &img.Height, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *Store) GetImage(ctx context.Context, id int64) (models.Image, error) {
	var img models.Image
	err := queryRow(ctx, s.db, s.sb.Select(imageColumns...).From("images").Where(sq.Eq{"id": id}),
		&img.ID, &img.Path, &img.Alt, &img.MimeType, &img.SizeBytes, &img.Width, &img.Height, &img.CreatedAt)
	return img, err
}

func (s *Store) CreateImage(ctx context.Context, img *models.Image) error {
	img.CreatedAt = s.now()
	id, err := insert(ctx, s.db, s.sb.Insert("images").
		Columns(imageColumns[1:]...).
		Values(img.Path, img.Alt, img.MimeType, img.SizeBytes, img.Width, img.Height, img.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	img.ID = id
	return nil
}

func (s *Store) UpdateImage(ctx context.Context, img *models.Image) error {
	res, err := exec(ctx, s.db, s.sb.Update("images").
		SetMap(map[string]any{
			"path":       img.Path,
			"alt":        img.Alt,
			"mime_type":  img.MimeType,
			"size_bytes": img.SizeBytes,
			"width":      img.Width,
			"height":     img.Height,
		}).
		Where(sq.Eq{"id": img.ID}))
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	return affected(res)
}

func (s *Store) DeleteImage(ctx context.Context, id int64) error {
	res, err := exec(ctx, s.db, s.sb.Delete("images").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return affected(res)
}
