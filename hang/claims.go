// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/models"
)

// customItemPosition sorts user-added items after the defaults.
const customItemPosition = 1000

const maxItemLength = 80

// SeedDefaultClaims makes sure a potluck plan has every default item. It is
// safe to call on every view: items that already exist, claimed or not, are
// left alone. Other categories are unchanged. Returns the plan's claims.
func (s *Service) SeedDefaultClaims(ctx context.Context, planSlug string) ([]models.Claim, error) {
	plan, err := s.GetPlan(ctx, planSlug)
	if err != nil {
		return nil, err
	}
	if err := s.seedDefaults(ctx, plan); err != nil {
		return nil, err
	}
	return s.listClaims(ctx, plan)
}

func (s *Service) seedDefaults(ctx context.Context, plan models.Plan) error {
	if plan.Category != models.CategoryPotluck {
		return nil
	}
	for i, item := range models.DefaultPotluckItems {
		c := models.Claim{ID: auth.NewID(), PlanID: plan.ID, Item: item}
		inserted, err := s.store.InsertClaimIfAbsent(ctx, c, i)
		if err != nil {
			return storeError("seed claims", "plan", plan.Slug, err)
		}
		if inserted {
			s.metrics.ClaimAction("seed")
		}
	}
	return nil
}

// AddItem adds a custom item to the plan's sign-up list. Adding a name that
// already exists is a no-op.
func (s *Service) AddItem(ctx context.Context, planSlug, item string) ([]models.Claim, error) {
	item, err := cleanItem(item)
	if err != nil {
		return nil, err
	}

	plan, err := s.GetPlan(ctx, planSlug)
	if err != nil {
		return nil, err
	}
	c := models.Claim{ID: auth.NewID(), PlanID: plan.ID, Item: item}
	if _, err := s.store.InsertClaimIfAbsent(ctx, c, customItemPosition); err != nil {
		return nil, storeError("add item", "plan", planSlug, err)
	}
	return s.listClaims(ctx, plan)
}

// ClaimItem signs claimant up for an item. The write is unconditional: if
// two people claim the same item at once, the last write wins.
func (s *Service) ClaimItem(ctx context.Context, planSlug, item, claimant string) (models.Claim, error) {
	item, err := cleanItem(item)
	if err != nil {
		return models.Claim{}, err
	}
	claimant = strings.TrimSpace(claimant)
	if claimant == "" {
		return models.Claim{}, models.NewValidationError("display_name", "is required")
	}

	plan, err := s.GetPlan(ctx, planSlug)
	if err != nil {
		return models.Claim{}, err
	}

	if err := s.store.SetClaimant(ctx, plan.ID, item, claimant); err != nil {
		return models.Claim{}, storeError("claim item", "item", item, err)
	}

	s.metrics.ClaimAction("claim")
	slog.Info("item claimed", "plan", plan.Slug, "item", item, "claimant", claimant)
	return s.getClaim(ctx, plan, item)
}

// UnclaimItem releases an item, but only for the person named on it.
//
// Ownership is plain display-name equality. It is not tied to the
// participant token, so two people using the same name can release each
// other's items.
func (s *Service) UnclaimItem(ctx context.Context, planSlug, item, requester string) (models.Claim, error) {
	item, err := cleanItem(item)
	if err != nil {
		return models.Claim{}, err
	}
	requester = strings.TrimSpace(requester)
	if requester == "" {
		return models.Claim{}, models.NewValidationError("display_name", "is required")
	}

	plan, err := s.GetPlan(ctx, planSlug)
	if err != nil {
		return models.Claim{}, err
	}

	released, err := s.store.ReleaseClaim(ctx, plan.ID, item, requester)
	if err != nil {
		return models.Claim{}, storeError("unclaim item", "item", item, err)
	}
	if !released {
		// Tell a missing item apart from someone else's claim
		if _, err := s.getClaim(ctx, plan, item); err != nil {
			return models.Claim{}, err
		}
		s.metrics.ClaimAction("denied")
		return models.Claim{}, &models.AuthorizationError{Message: "only the claimant may release this item"}
	}

	s.metrics.ClaimAction("unclaim")
	slog.Info("item released", "plan", plan.Slug, "item", item)
	return s.getClaim(ctx, plan, item)
}

// cleanItem normalizes an item name the same way for every item operation.
func cleanItem(item string) (string, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return "", models.NewValidationError("item", "is required")
	}
	if len(item) > maxItemLength {
		return "", models.NewValidationError("item", "must be at most %d characters", maxItemLength)
	}
	return item, nil
}

func (s *Service) getClaim(ctx context.Context, plan models.Plan, item string) (models.Claim, error) {
	c, err := s.store.GetClaim(ctx, plan.ID, item)
	if err != nil {
		return models.Claim{}, storeError("get claim", "item", item, err)
	}
	return c, nil
}

func (s *Service) listClaims(ctx context.Context, plan models.Plan) ([]models.Claim, error) {
	claims, err := s.store.ListClaims(ctx, plan.ID)
	if err != nil {
		return nil, storeError("list claims", "plan", plan.Slug, err)
	}
	return claims, nil
}
