// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kahatra/tribe-widget/middleware"
	"github.com/kahatra/tribe-widget/models"
)

// writeServiceError maps the service error taxonomy onto HTTP status codes.
// Persistence details are logged, never echoed to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		verr  *models.ValidationError
		nferr *models.NotFoundError
		aerr  *models.AuthorizationError
	)
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &nferr):
		middleware.ErrorResponse(w, http.StatusNotFound, titleCase(nferr.Kind)+" not found")
	case errors.As(err, &aerr):
		middleware.ErrorResponse(w, http.StatusForbidden, aerr.Message)
	default:
		slog.Error("service call failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func titleCase(s string) string {
	if s == "" {
		return "Resource"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
