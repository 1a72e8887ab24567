// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/hang"
	"github.com/kahatra/tribe-widget/middleware"
	"github.com/kahatra/tribe-widget/models"
)

type ParticipantHandler struct {
	svc *hang.Service
}

func NewParticipantHandler(svc *hang.Service) *ParticipantHandler {
	return &ParticipantHandler{svc: svc}
}

// Register handles POST /participants
// Mints an opaque participant token. Nothing is stored until the token is
// used to add a window or respond to a plan.
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	token := auth.GenerateParticipantToken()
	slog.Info("participant token issued")
	middleware.JSONResponse(w, http.StatusCreated, models.RegisterParticipantResponse{Token: token})
}

// GetMyPlans handles GET /participants/me/plans
// Requires X-Participant-Token header
func (h *ParticipantHandler) GetMyPlans(w http.ResponseWriter, r *http.Request) {
	token := middleware.ParticipantToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.ParticipantTokenHeader+" header required")
		return
	}

	plans, err := h.svc.ParticipantPlans(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ParticipantPlansResponse{Plans: plans})
}
