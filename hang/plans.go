// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/models"
)

type PromotePlanInput struct {
	RequestSlug string    `json:"-"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
	Location    string    `json:"location" validate:"max=200"`
}

type CreatePlanInput struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Category string    `json:"category" validate:"required,oneof=potluck coworking dance_class playdate"`
	Note     string    `json:"note" validate:"max=2000"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtfield=Start"`
	Location string    `json:"location" validate:"max=200"`
}

// PromotePlan commits a chosen window as a new plan, copying title,
// category and note from the request.
//
// Every call creates a new plan with a new slug. Callers must invoke it once
// per user action.
func (s *Service) PromotePlan(ctx context.Context, in PromotePlanInput) (models.Plan, error) {
	in.Location = strings.TrimSpace(in.Location)
	if err := validateInput(in); err != nil {
		return models.Plan{}, err
	}

	req, err := s.GetRequest(ctx, in.RequestSlug)
	if err != nil {
		return models.Plan{}, err
	}

	requestID := req.ID
	plan, err := s.insertPlan(ctx, models.Plan{
		SourceRequestID: &requestID,
		Title:           req.Title,
		Category:        req.Category,
		Note:            req.Note,
		Start:           in.Start,
		End:             in.End,
		Location:        optional(in.Location),
	})
	if err != nil {
		return models.Plan{}, err
	}

	s.metrics.PlanCreated("promoted")
	slog.Info("plan promoted", "request", req.Slug, "plan", plan.Slug, "start", plan.Start)
	return plan, nil
}

// CreatePlan creates a plan directly, without a request to promote from.
func (s *Service) CreatePlan(ctx context.Context, in CreatePlanInput) (models.Plan, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Note = strings.TrimSpace(in.Note)
	in.Location = strings.TrimSpace(in.Location)
	if err := validateInput(in); err != nil {
		return models.Plan{}, err
	}

	plan, err := s.insertPlan(ctx, models.Plan{
		Title:    in.Title,
		Category: in.Category,
		Note:     in.Note,
		Start:    in.Start,
		End:      in.End,
		Location: optional(in.Location),
	})
	if err != nil {
		return models.Plan{}, err
	}

	s.metrics.PlanCreated("direct")
	slog.Info("plan created", "plan", plan.Slug, "category", plan.Category)
	return plan, nil
}

func (s *Service) insertPlan(ctx context.Context, p models.Plan) (models.Plan, error) {
	p.ID = auth.NewID()
	p.Start = p.Start.UTC().Truncate(time.Second)
	p.End = p.End.UTC().Truncate(time.Second)
	p.CreatedAt = s.now()
	if !p.End.After(p.Start) {
		return models.Plan{}, models.NewValidationError("end", "must be after start")
	}

	slug, err := insertWithSlug(func(slug string) error {
		p.Slug = slug
		return s.store.CreatePlan(ctx, p)
	})
	if err != nil {
		return models.Plan{}, &models.PersistenceError{Op: "create plan", Err: err}
	}
	p.Slug = slug
	return p, nil
}

// GetPlan resolves a public plan slug.
func (s *Service) GetPlan(ctx context.Context, slug string) (models.Plan, error) {
	if auth.ValidateSlug(slug) != nil {
		return models.Plan{}, &models.NotFoundError{Kind: "plan", Key: slug}
	}
	plan, err := s.store.GetPlanBySlug(ctx, slug)
	if err != nil {
		return models.Plan{}, storeError("get plan", "plan", slug, err)
	}
	return plan, nil
}

// PlanSnapshot reads the plan with all of its responses and claims. Potluck
// defaults are seeded first, so the first view of a potluck plan already
// lists them.
func (s *Service) PlanSnapshot(ctx context.Context, slug string) (models.PlanSnapshot, error) {
	plan, err := s.GetPlan(ctx, slug)
	if err != nil {
		return models.PlanSnapshot{}, err
	}

	if err := s.seedDefaults(ctx, plan); err != nil {
		return models.PlanSnapshot{}, err
	}

	snap := models.PlanSnapshot{Plan: plan}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		responses, err := s.store.ListResponses(gctx, plan.ID)
		if err != nil {
			return storeError("list responses", "plan", slug, err)
		}
		snap.Responses = responses
		return nil
	})
	g.Go(func() error {
		claims, err := s.store.ListClaims(gctx, plan.ID)
		if err != nil {
			return storeError("list claims", "plan", slug, err)
		}
		snap.Claims = claims
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.PlanSnapshot{}, err
	}

	snap.Tally = tally(snap.Responses)
	snap.FetchedAt = s.clock.Now()
	snap.PollIntervalMS = s.syncInterval.Milliseconds()
	return snap, nil
}

// ParticipantPlans lists the plans a participant token has responded to.
func (s *Service) ParticipantPlans(ctx context.Context, token string) ([]models.ParticipantPlan, error) {
	if err := auth.ValidateToken(token); err != nil {
		return nil, models.NewValidationError("participant_token", "must be 1-128 printable characters")
	}
	plans, err := s.store.ListPlansForParticipant(ctx, token)
	if err != nil {
		return nil, &models.PersistenceError{Op: "list participant plans", Err: err}
	}
	return plans, nil
}

func tally(responses []models.Response) models.Tally {
	var t models.Tally
	for _, r := range responses {
		switch r.Status {
		case models.StatusIn:
			t.In++
		case models.StatusMaybe:
			t.Maybe++
		case models.StatusOut:
			t.Out++
		}
	}
	return t
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
