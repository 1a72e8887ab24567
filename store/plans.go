// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kahatra/tribe-widget/models"
)

// CreatePlan inserts a plan in a single statement.
func (s *Store) CreatePlan(ctx context.Context, p models.Plan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plans (id, slug, request_id, title, type, note, start_ts, end_ts, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.Slug, nullString(p.SourceRequestID), p.Title, p.Category, p.Note,
		p.Start, p.End, nullString(p.Location), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetPlanBySlug returns ErrNotFound when the slug does not resolve.
func (s *Store) GetPlanBySlug(ctx context.Context, slug string) (models.Plan, error) {
	var p models.Plan
	var requestID, location sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slug, request_id, title, type, note, start_ts, end_ts, location, created_at
		FROM plans
		WHERE slug = $1
	`, slug).Scan(
		&p.ID, &p.Slug, &requestID, &p.Title, &p.Category, &p.Note,
		&p.Start, &p.End, &location, &p.CreatedAt,
	)
	if err != nil {
		return models.Plan{}, notFound(err)
	}
	p.SourceRequestID = stringPtr(requestID)
	p.Location = stringPtr(location)
	p.Start = p.Start.UTC()
	p.End = p.End.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

// ListPlansForParticipant returns the plans a token has responded to,
// soonest plan first.
func (s *Store) ListPlansForParticipant(ctx context.Context, token string) ([]models.ParticipantPlan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.slug, p.title, p.type, p.start_ts, p.end_ts, r.status
		FROM responses r
		JOIN plans p ON p.id = r.plan_id
		WHERE r.user_key = $1
		ORDER BY p.start_ts, p.slug
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query participant plans: %w", err)
	}
	defer rows.Close()

	plans := []models.ParticipantPlan{}
	for rows.Next() {
		var pp models.ParticipantPlan
		if err := rows.Scan(&pp.Slug, &pp.Title, &pp.Category, &pp.Start, &pp.End, &pp.Status); err != nil {
			return nil, fmt.Errorf("scan participant plan: %w", err)
		}
		pp.Start = pp.Start.UTC()
		pp.End = pp.End.UTC()
		plans = append(plans, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant plans: %w", err)
	}
	return plans, nil
}
