// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/kahatra/tribe-widget/cliparse"
	"github.com/kahatra/tribe-widget/hang"
	"github.com/kahatra/tribe-widget/middleware"
	"github.com/kahatra/tribe-widget/models"
)

type PlanHandler struct {
	svc *hang.Service
	cfg cliparse.Config

	// Coalesces concurrent snapshot reads of the same slug
	snapshots singleflight.Group
}

func NewPlanHandler(svc *hang.Service, cfg cliparse.Config) *PlanHandler {
	return &PlanHandler{svc: svc, cfg: cfg}
}

// CreatePlan handles POST /plans
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	plan, err := h.svc.CreatePlan(r.Context(), hang.CreatePlanInput{
		Title:    req.Title,
		Category: req.Category,
		Note:     req.Note,
		Start:    req.Start,
		End:      req.End,
		Location: req.Location,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePlanResponse{
		Slug:     plan.Slug,
		ShareURL: h.cfg.BaseURL + "/p/" + plan.Slug,
		Plan:     plan,
	})
}

// GetPlan handles GET /plans/{slug}
// Returns the plan snapshot: plan, responses, claims and tally
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	// The shared read is detached from any one caller's cancellation
	ctx := r.Context()
	v, err, _ := h.snapshots.Do(slug, func() (interface{}, error) {
		return h.svc.PlanSnapshot(context.WithoutCancel(ctx), slug)
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, v.(models.PlanSnapshot))
}

// SetResponse handles PUT /plans/{slug}/response
// Requires X-Participant-Token header
func (h *PlanHandler) SetResponse(w http.ResponseWriter, r *http.Request) {
	var req models.SetResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.SetResponse(r.Context(), hang.SetResponseInput{
		PlanSlug:    r.PathValue("slug"),
		Token:       middleware.ParticipantToken(r),
		DisplayName: req.DisplayName,
		Status:      req.Status,
		Arrival:     req.Arrival,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UpdateResponse handles PATCH /plans/{slug}/response
// Changes status or arrival without resending the other
func (h *PlanHandler) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.svc.UpdateResponse(r.Context(), hang.UpdateResponseInput{
		PlanSlug:    r.PathValue("slug"),
		Token:       middleware.ParticipantToken(r),
		DisplayName: req.DisplayName,
		Status:      req.Status,
		Arrival:     req.Arrival,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetMyResponse handles GET /plans/{slug}/response
func (h *PlanHandler) GetMyResponse(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.MyResponse(r.Context(), r.PathValue("slug"), middleware.ParticipantToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SeedClaims handles POST /plans/{slug}/claims/seed
func (h *PlanHandler) SeedClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.svc.SeedDefaultClaims(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ClaimsResponse{Claims: claims})
}

// AddItem handles POST /plans/{slug}/items
func (h *PlanHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	claims, err := h.svc.AddItem(r.Context(), r.PathValue("slug"), req.Item)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.ClaimsResponse{Claims: claims})
}

// ClaimItem handles POST /plans/{slug}/claim
func (h *PlanHandler) ClaimItem(w http.ResponseWriter, r *http.Request) {
	var req models.ClaimRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	claim, err := h.svc.ClaimItem(r.Context(), r.PathValue("slug"), req.Item, req.DisplayName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, claim)
}

// UnclaimItem handles POST /plans/{slug}/unclaim
// Only the display name on the claim may release it
func (h *PlanHandler) UnclaimItem(w http.ResponseWriter, r *http.Request) {
	var req models.ClaimRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	claim, err := h.svc.UnclaimItem(r.Context(), r.PathValue("slug"), req.Item, req.DisplayName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, claim)
}
