// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/store"
)

type SetResponseInput struct {
	PlanSlug    string  `json:"-"`
	Token       string  `json:"participant_token" validate:"token"`
	DisplayName string  `json:"display_name" validate:"required,max=80"`
	Status      string  `json:"status" validate:"required,oneof=in maybe out"`
	Arrival     *string `json:"arrival"`
}

// UpdateResponseInput changes only the fields that are set. An empty
// DisplayName keeps the stored one; an Arrival of "" clears it.
type UpdateResponseInput struct {
	PlanSlug    string
	Token       string
	DisplayName string
	Status      *string
	Arrival     *string
}

// SetResponse writes the participant's whole response. A later write for
// the same (plan, participant token) replaces the earlier one; concurrent
// writes for that key resolve by last-write-wins in the store.
//
// Arrival estimates only mean something for playdates and are dropped for
// other categories.
func (s *Service) SetResponse(ctx context.Context, in SetResponseInput) (models.Response, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := validateInput(in); err != nil {
		return models.Response{}, err
	}
	if in.Arrival != nil && *in.Arrival != "" && !models.IsValidArrival(*in.Arrival) {
		return models.Response{}, models.NewValidationError("arrival",
			"must be one of: on_time, few_minutes_late, half_hour_late, leaving_early")
	}

	plan, err := s.GetPlan(ctx, in.PlanSlug)
	if err != nil {
		return models.Response{}, err
	}

	arrival := in.Arrival
	if plan.Category != models.CategoryPlaydate || (arrival != nil && *arrival == "") {
		arrival = nil
	}

	r := models.Response{
		ID:               auth.NewID(),
		PlanID:           plan.ID,
		ParticipantToken: in.Token,
		DisplayName:      in.DisplayName,
		Status:           in.Status,
		Arrival:          arrival,
		UpdatedAt:        s.now(),
	}
	if err := s.store.UpsertResponse(ctx, r); err != nil {
		return models.Response{}, storeError("set response", "plan", in.PlanSlug, err)
	}

	slog.Info("response set", "plan", plan.Slug, "participant", r.DisplayName, "status", r.Status)
	return r, nil
}

// UpdateResponse changes status or arrival alone. The store has no
// field-level patch, so the current row is read and the whole record is
// written back through SetResponse.
func (s *Service) UpdateResponse(ctx context.Context, in UpdateResponseInput) (models.Response, error) {
	if in.Status == nil && in.Arrival == nil {
		return models.Response{}, models.NewValidationError("", "nothing to update: set status or arrival")
	}

	current, err := s.MyResponse(ctx, in.PlanSlug, in.Token)
	hasCurrent := err == nil
	if err != nil {
		// No response yet is fine; a missing plan is not
		var nf *models.NotFoundError
		if !errors.As(err, &nf) || nf.Kind != "response" {
			return models.Response{}, err
		}
	}

	merged := SetResponseInput{
		PlanSlug:    in.PlanSlug,
		Token:       in.Token,
		DisplayName: in.DisplayName,
	}
	if hasCurrent {
		merged.Status = current.Status
		merged.Arrival = current.Arrival
		if strings.TrimSpace(merged.DisplayName) == "" {
			merged.DisplayName = current.DisplayName
		}
	}
	if in.Status != nil {
		merged.Status = *in.Status
	}
	if in.Arrival != nil {
		merged.Arrival = in.Arrival
	}

	if merged.Status == "" {
		return models.Response{}, models.NewValidationError("status", "choose a status first")
	}
	return s.SetResponse(ctx, merged)
}

// MyResponse returns the caller's current response to a plan.
func (s *Service) MyResponse(ctx context.Context, planSlug, token string) (models.Response, error) {
	if err := auth.ValidateToken(token); err != nil {
		return models.Response{}, models.NewValidationError("participant_token", "must be 1-128 printable characters")
	}
	plan, err := s.GetPlan(ctx, planSlug)
	if err != nil {
		return models.Response{}, err
	}
	r, err := s.store.GetResponse(ctx, plan.ID, token)
	if errors.Is(err, store.ErrNotFound) {
		return models.Response{}, &models.NotFoundError{Kind: "response", Key: planSlug}
	}
	if err != nil {
		return models.Response{}, &models.PersistenceError{Op: "get response", Err: err}
	}
	return r, nil
}
