// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/kahatra/tribe-widget/models"
)

// AddWindow inserts one availability window. Windows are never updated.
func (s *Store) AddWindow(ctx context.Context, w models.AvailabilityWindow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO availability_windows (id, request_id, user_key, user_name, start_ts, end_ts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, w.ID, w.RequestID, w.ParticipantToken, w.DisplayName, w.Start, w.End, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert window: %w", err)
	}
	return nil
}

// ListWindows returns every window for a request ordered by start time.
func (s *Store) ListWindows(ctx context.Context, requestID string) ([]models.AvailabilityWindow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, user_key, user_name, start_ts, end_ts, created_at
		FROM availability_windows
		WHERE request_id = $1
		ORDER BY start_ts, end_ts, id
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("query windows: %w", err)
	}
	defer rows.Close()

	windows := []models.AvailabilityWindow{}
	for rows.Next() {
		var w models.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.RequestID, &w.ParticipantToken, &w.DisplayName, &w.Start, &w.End, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		w.Start = w.Start.UTC()
		w.End = w.End.UTC()
		w.CreatedAt = w.CreatedAt.UTC()
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate windows: %w", err)
	}
	return windows, nil
}
