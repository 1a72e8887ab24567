// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/cliparse"
	"github.com/kahatra/tribe-widget/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema in the
// test's temp directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		SyncInterval: 20 * time.Millisecond,
		BaseURL:      "https://tribe.test",
		LogLevel:     "info",
	}
}

// Day is the fixed date test windows and plans are placed on.
var Day = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

// At returns Day at hh:mm UTC.
func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// CreateTestRequest inserts a hang request and returns its ID and slug
func CreateTestRequest(t *testing.T, conn *sql.DB, category string) (requestID, slug string) {
	t.Helper()

	requestID = auth.NewID()
	slug, _ = auth.GenerateSlug()
	_, err := conn.Exec(`
		INSERT INTO hang_requests (id, slug, title, type, note, created_at)
		VALUES ($1, $2, 'Test Hang', $3, 'A test hang', $4)
	`, requestID, slug, category, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test request: %v", err)
	}

	return requestID, slug
}

// AddTestWindow inserts an availability window for a participant
func AddTestWindow(t *testing.T, conn *sql.DB, requestID, token, name string, start, end time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO availability_windows (id, request_id, user_key, user_name, start_ts, end_ts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, auth.NewID(), requestID, token, name, start, end, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test window: %v", err)
	}
}

// CreateTestPlan inserts a plan from 18:00 to 20:00 and returns its ID and slug
func CreateTestPlan(t *testing.T, conn *sql.DB, category string) (planID, slug string) {
	t.Helper()

	planID = auth.NewID()
	slug, _ = auth.GenerateSlug()
	_, err := conn.Exec(`
		INSERT INTO plans (id, slug, title, type, note, start_ts, end_ts, created_at)
		VALUES ($1, $2, 'Test Plan', $3, '', $4, $5, $6)
	`, planID, slug, category, At(18, 0), At(20, 0), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return planID, slug
}

// CreateTestClaim inserts an item, claimed by claimedBy unless it is empty
func CreateTestClaim(t *testing.T, conn *sql.DB, planID, item, claimedBy string) {
	t.Helper()

	var by *string
	if claimedBy != "" {
		by = &claimedBy
	}
	_, err := conn.Exec(`
		INSERT INTO claims (id, plan_id, item, claimed_by, position)
		VALUES ($1, $2, $3, $4, 0)
	`, auth.NewID(), planID, item, by)
	if err != nil {
		t.Fatalf("Failed to create test claim: %v", err)
	}
}

// CountRows runs a COUNT(*) query and returns the result
func CountRows(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
