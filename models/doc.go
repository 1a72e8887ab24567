// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRequestRequest: title, category, note
  - AddWindowRequest: display_name, start, end
  - PromotePlanRequest, CreatePlanRequest: plan times and location
  - SetResponseRequest, UpdateResponseRequest: status and arrival
  - AddItemRequest, ClaimRequest: sign-up items

# Domain Types

  - HangRequest: a proposal participants add windows to
  - AvailabilityWindow: one participant's free interval
  - Candidate: an overlap long enough to meet in
  - Plan: a committed time, promoted from a request or created directly
  - Response: a participant's in/maybe/out answer
  - Claim: a potluck item and who is bringing it
  - PlanSnapshot, RequestSnapshot: the shared views clients poll

Participant tokens are tagged json:"-" and never leave the server.

# Errors

ValidationError, NotFoundError, AuthorizationError and PersistenceError
form the error taxonomy; use IsValidation, IsNotFound and friends to
classify.
*/
package models
