// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the tribe widget API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg, m, reg)

Every API route is wrapped in middleware.WithLogging, labelled with its
pattern for the request metrics.

# Endpoints

Ops:

	GET /health
	GET /metrics

Requests (public, by slug):

	POST /requests                 - Create request
	GET  /requests/{slug}          - Request, windows and candidates
	GET  /requests/{slug}/windows  - List windows
	POST /requests/{slug}/windows  - Add window (X-Participant-Token)
	GET  /requests/{slug}/overlaps - Candidate slots
	POST /requests/{slug}/promote  - Commit a slot as a plan

Plans (public, by slug):

	POST  /plans                     - Create plan directly
	GET   /plans/{slug}              - Plan snapshot
	PUT   /plans/{slug}/response     - Set response (X-Participant-Token)
	PATCH /plans/{slug}/response     - Change status or arrival
	GET   /plans/{slug}/response     - Caller's response
	POST  /plans/{slug}/claims/seed  - Seed potluck items
	POST  /plans/{slug}/items        - Add custom item
	POST  /plans/{slug}/claim        - Claim item
	POST  /plans/{slug}/unclaim      - Release item

Participants:

	POST /participants          - Mint participant token
	GET  /participants/me/plans - Plans the token answered
*/
package router
