// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/kahatra/tribe-widget/models"
)

// CreateRequest inserts a hang request. A duplicate slug surfaces as the
// driver's unique violation (see db.IsUniqueViolation).
func (s *Store) CreateRequest(ctx context.Context, r models.HangRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hang_requests (id, slug, title, type, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.ID, r.Slug, r.Title, r.Category, r.Note, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert hang request: %w", err)
	}
	return nil
}

// GetRequestBySlug returns ErrNotFound when the slug does not resolve.
func (s *Store) GetRequestBySlug(ctx context.Context, slug string) (models.HangRequest, error) {
	var r models.HangRequest
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slug, title, type, note, created_at
		FROM hang_requests
		WHERE slug = $1
	`, slug).Scan(&r.ID, &r.Slug, &r.Title, &r.Category, &r.Note, &r.CreatedAt)
	if err != nil {
		return models.HangRequest{}, notFound(err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}
