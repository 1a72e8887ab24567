// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tribe widget server.

tribe-widget schedules small group hangouts: participants share when they
are free, the server lists overlapping slots, and a chosen slot becomes a
plan that people answer in/maybe/out and, for potlucks, sign up to bring
items.

# Starting the Server

	DATABASE_URL=file:tribe.db go run .

Or with flags:

	go run . serve -p 3318 -t postgres -d "postgres://..."

# Configuration

Settings come from flags, then the environment, then a .env file:

  - DATABASE_URL (-d): connection string (required)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - PORT (-p): server port (default: 3318)
  - SYNC_INTERVAL (-sync-interval): snapshot refresh cadence (default: 2s)
  - BASE_URL (-base-url): prefix for share URLs
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Watching

	go run . watch plan <slug> --server http://localhost:3318

prints the plan each time it is refreshed, until interrupted or the plan
is gone.

# Architecture

  - hang: request, window, plan, response and claim operations
  - overlap: candidate slot computation
  - syncloop: periodic snapshot reconciliation
  - store: SQL persistence
  - handlers, router, middleware: HTTP API
  - client: typed API client used by watch
  - metrics: prometheus collectors
  - models, auth, db, cliparse, clock: shared types and plumbing
*/
package main
