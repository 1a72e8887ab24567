// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tribe widget API.

# Handler Types

Each handler is a thin struct over the hang service:

  - RequestHandler: hang requests, availability windows, overlaps, promotion
  - PlanHandler: plan snapshots, responses and item claims
  - ParticipantHandler: participant tokens and "my plans"

Handlers are created via constructor functions:

	planHandler := handlers.NewPlanHandler(svc, cfg)

# Request Flow

A request is shared by slug; participants add windows and the candidates
are recomputed on every read:

	POST /requests                  → CreateRequest (returns slug, share_url)
	POST /requests/{slug}/windows   → AddWindow
	GET  /requests/{slug}/overlaps  → GetOverlaps
	POST /requests/{slug}/promote   → PromotePlan (new plan every call)

# Plan Flow

	GET   /plans/{slug}           → GetPlan (seeds potluck defaults)
	PUT   /plans/{slug}/response  → SetResponse
	PATCH /plans/{slug}/response  → UpdateResponse
	POST  /plans/{slug}/claim     → ClaimItem
	POST  /plans/{slug}/unclaim   → UnclaimItem (claimant only)

Participant operations read the X-Participant-Token header.

# Errors

Service errors map to 400 (validation), 404 (not found), 403 (not the
claimant) and 500 (store failure) in writeServiceError.
*/
package handlers
