// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kahatra/tribe-widget/models"
)

// InsertClaimIfAbsent adds an unclaimed item and reports whether a row was
// written. An item that already exists for the plan is left untouched,
// claimant included.
func (s *Store) InsertClaimIfAbsent(ctx context.Context, c models.Claim, position int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO claims (id, plan_id, item, claimed_by, position)
		VALUES ($1, $2, $3, NULL, $4)
		ON CONFLICT (plan_id, item) DO NOTHING
	`, c.ID, c.PlanID, c.Item, position)
	if err != nil {
		return false, fmt.Errorf("insert claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert claim: %w", err)
	}
	return n > 0, nil
}

// ListClaims returns the plan's items in display order.
func (s *Store) ListClaims(ctx context.Context, planID string) ([]models.Claim, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plan_id, item, claimed_by
		FROM claims
		WHERE plan_id = $1
		ORDER BY position, item
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	defer rows.Close()

	claims := []models.Claim{}
	for rows.Next() {
		var c models.Claim
		var claimedBy sql.NullString
		if err := rows.Scan(&c.ID, &c.PlanID, &c.Item, &claimedBy); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		c.ClaimedBy = stringPtr(claimedBy)
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

// GetClaim returns ErrNotFound if the plan has no such item.
func (s *Store) GetClaim(ctx context.Context, planID, item string) (models.Claim, error) {
	var c models.Claim
	var claimedBy sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, plan_id, item, claimed_by
		FROM claims
		WHERE plan_id = $1 AND item = $2
	`, planID, item).Scan(&c.ID, &c.PlanID, &c.Item, &claimedBy)
	if err != nil {
		return models.Claim{}, notFound(err)
	}
	c.ClaimedBy = stringPtr(claimedBy)
	return c, nil
}

// SetClaimant overwrites claimed_by without looking at the previous value.
// Returns ErrNotFound if the item does not exist.
func (s *Store) SetClaimant(ctx context.Context, planID, item, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE claims SET claimed_by = $1
		WHERE plan_id = $2 AND item = $3
	`, name, planID, item)
	if err != nil {
		return fmt.Errorf("set claimant: %w", err)
	}
	return requireRow(res)
}

// ReleaseClaim clears claimed_by only if it still equals name. The check
// and the write are one statement, so a concurrent re-claim by someone else
// is never cleared. Reports whether a row was released.
func (s *Store) ReleaseClaim(ctx context.Context, planID, item, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE claims SET claimed_by = NULL
		WHERE plan_id = $1 AND item = $2 AND claimed_by = $3
	`, planID, item, name)
	if err != nil {
		return false, fmt.Errorf("release claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("release claim: %w", err)
	}
	return n > 0, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
