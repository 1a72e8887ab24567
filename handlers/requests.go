// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/kahatra/tribe-widget/cliparse"
	"github.com/kahatra/tribe-widget/hang"
	"github.com/kahatra/tribe-widget/middleware"
	"github.com/kahatra/tribe-widget/models"
)

type RequestHandler struct {
	svc *hang.Service
	cfg cliparse.Config
}

func NewRequestHandler(svc *hang.Service, cfg cliparse.Config) *RequestHandler {
	return &RequestHandler{svc: svc, cfg: cfg}
}

// CreateRequest handles POST /requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	created, err := h.svc.CreateRequest(r.Context(), hang.CreateRequestInput{
		Title:    req.Title,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRequestResponse{
		Slug:     created.Slug,
		ShareURL: h.cfg.BaseURL + "/r/" + created.Slug,
	})
}

// GetRequest handles GET /requests/{slug}
// Returns the request with its windows and current candidates
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RequestSnapshot(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// ListWindows handles GET /requests/{slug}/windows
func (h *RequestHandler) ListWindows(w http.ResponseWriter, r *http.Request) {
	windows, err := h.svc.ListWindows(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.WindowsResponse{Windows: windows})
}

// AddWindow handles POST /requests/{slug}/windows
// Requires X-Participant-Token header
func (h *RequestHandler) AddWindow(w http.ResponseWriter, r *http.Request) {
	var req models.AddWindowRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	window, err := h.svc.AddWindow(r.Context(), hang.AddWindowInput{
		RequestSlug: r.PathValue("slug"),
		Token:       middleware.ParticipantToken(r),
		DisplayName: req.DisplayName,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, window)
}

// GetOverlaps handles GET /requests/{slug}/overlaps
func (h *RequestHandler) GetOverlaps(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.svc.ComputeOverlaps(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{Candidates: candidates})
}

// PromotePlan handles POST /requests/{slug}/promote
// Every call creates a new plan
func (h *RequestHandler) PromotePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PromotePlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	plan, err := h.svc.PromotePlan(r.Context(), hang.PromotePlanInput{
		RequestSlug: r.PathValue("slug"),
		Start:       req.Start,
		End:         req.End,
		Location:    req.Location,
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
