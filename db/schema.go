// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is the common subset of PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table. Used by tests.
func DropSchema(db *sql.DB) error {
	_, err := db.Exec(`
		DROP TABLE IF EXISTS claims;
		DROP TABLE IF EXISTS responses;
		DROP TABLE IF EXISTS plans;
		DROP TABLE IF EXISTS availability_windows;
		DROP TABLE IF EXISTS hang_requests;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

const schema = `
-- Hang requests
CREATE TABLE IF NOT EXISTS hang_requests (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('potluck', 'coworking', 'dance_class', 'playdate')),
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Availability windows
CREATE TABLE IF NOT EXISTS availability_windows (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL REFERENCES hang_requests(id) ON DELETE CASCADE,
    user_key TEXT NOT NULL,
    user_name TEXT NOT NULL,
    start_ts TIMESTAMP NOT NULL,
    end_ts TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (start_ts < end_ts)
);

CREATE INDEX IF NOT EXISTS idx_availability_windows_request_id ON availability_windows(request_id);

-- Plans
CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    request_id TEXT REFERENCES hang_requests(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('potluck', 'coworking', 'dance_class', 'playdate')),
    note TEXT NOT NULL DEFAULT '',
    start_ts TIMESTAMP NOT NULL,
    end_ts TIMESTAMP NOT NULL,
    location TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (start_ts < end_ts)
);

CREATE INDEX IF NOT EXISTS idx_plans_request_id ON plans(request_id);

-- Responses
CREATE TABLE IF NOT EXISTS responses (
    id TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    user_key TEXT NOT NULL,
    user_name TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('in', 'maybe', 'out')),
    arrival TEXT,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (plan_id, user_key)
);

CREATE INDEX IF NOT EXISTS idx_responses_user_key ON responses(user_key);

-- Claims
CREATE TABLE IF NOT EXISTS claims (
    id TEXT PRIMARY KEY,
    plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    item TEXT NOT NULL,
    claimed_by TEXT,
    position INTEGER NOT NULL DEFAULT 0,
    UNIQUE (plan_id, item)
);
`
