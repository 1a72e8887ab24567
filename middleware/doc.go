// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging and metrics:

	mux.HandleFunc(pattern, middleware.WithLogging(m, pattern, handler))

Logs method, path, status, client IP and duration_ms, and records the
request in m under the given route label. m may be nil.

# CORS Middleware

Enable cross-origin requests for the embedded widget:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST, PUT, PATCH, OPTIONS with headers Content-Type,
Authorization and X-Participant-Token.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateRequestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Participant Token

	token := middleware.ParticipantToken(r)
*/
package middleware
