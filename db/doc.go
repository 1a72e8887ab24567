// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the record store and creates its schema.

# Drivers

Two database types are supported through database/sql:

  - sqlite (modernc.org/sqlite, pure Go) - the default, used for development and tests
  - postgres (github.com/lib/pq)

	conn, err := db.Open(db.TypeSQLite, "file:tribe.db")

All queries use $N placeholders, numbered in order of appearance, which both
drivers accept.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - hang_requests: title, type, note and public slug
  - availability_windows: one row per submitted window
  - plans: committed plans, optionally linked to the request they came from
  - responses: one row per (plan_id, user_key)
  - claims: one row per (plan_id, item)

# Relationships

	hang_requests 1──* availability_windows
	hang_requests 1──* plans
	plans 1──* responses
	plans 1──* claims

There are no version columns. Concurrent writes to the same row resolve by
last-write-wins.
*/
package db
