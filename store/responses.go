// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kahatra/tribe-widget/models"
)

// UpsertResponse writes the whole response keyed by (plan_id, user_key).
// An existing row keeps its id; everything else is replaced.
func (s *Store) UpsertResponse(ctx context.Context, r models.Response) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO responses (id, plan_id, user_key, user_name, status, arrival, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (plan_id, user_key) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			status = EXCLUDED.status,
			arrival = EXCLUDED.arrival,
			updated_at = EXCLUDED.updated_at
	`, r.ID, r.PlanID, r.ParticipantToken, r.DisplayName, r.Status, nullString(r.Arrival), r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert response: %w", err)
	}
	return nil
}

// GetResponse returns ErrNotFound if the participant has not responded.
func (s *Store) GetResponse(ctx context.Context, planID, token string) (models.Response, error) {
	var r models.Response
	var arrival sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, plan_id, user_key, user_name, status, arrival, updated_at
		FROM responses
		WHERE plan_id = $1 AND user_key = $2
	`, planID, token).Scan(&r.ID, &r.PlanID, &r.ParticipantToken, &r.DisplayName, &r.Status, &arrival, &r.UpdatedAt)
	if err != nil {
		return models.Response{}, notFound(err)
	}
	r.Arrival = stringPtr(arrival)
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}

// ListResponses returns all responses for a plan in name order.
func (s *Store) ListResponses(ctx context.Context, planID string) ([]models.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plan_id, user_key, user_name, status, arrival, updated_at
		FROM responses
		WHERE plan_id = $1
		ORDER BY user_name, user_key
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		var r models.Response
		var arrival sql.NullString
		if err := rows.Scan(&r.ID, &r.PlanID, &r.ParticipantToken, &r.DisplayName, &r.Status, &arrival, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r.Arrival = stringPtr(arrival)
		r.UpdatedAt = r.UpdatedAt.UTC()
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return responses, nil
}
