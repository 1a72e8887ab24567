// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kahatra/tribe-widget/hang"
	"github.com/kahatra/tribe-widget/metrics"
	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/store"
	"github.com/kahatra/tribe-widget/testutil"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	db := testutil.SetupTestDB(t)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := hang.NewService(store.New(db), hang.WithMetrics(m))
	return NewRouter(svc, testutil.GetTestConfig(), m, reg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "tribe-widget API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestMux(t)

	// 400 and 404 are valid handler responses here; 405 means no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/"},

		{"POST", "/requests"},
		{"GET", "/requests/test-slug"},
		{"GET", "/requests/test-slug/windows"},
		{"POST", "/requests/test-slug/windows"},
		{"GET", "/requests/test-slug/overlaps"},
		{"POST", "/requests/test-slug/promote"},

		{"POST", "/plans"},
		{"GET", "/plans/test-slug"},
		{"PUT", "/plans/test-slug/response"},
		{"PATCH", "/plans/test-slug/response"},
		{"GET", "/plans/test-slug/response"},
		{"POST", "/plans/test-slug/claims/seed"},
		{"POST", "/plans/test-slug/items"},
		{"POST", "/plans/test-slug/claim"},
		{"POST", "/plans/test-slug/unclaim"},

		{"POST", "/participants"},
		{"GET", "/participants/me/plans"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux := newTestMux(t)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"DELETE a plan", "DELETE", "/plans/test-slug", http.StatusMethodNotAllowed},
		{"PUT to claim endpoint", "PUT", "/plans/test-slug/claim", http.StatusMethodNotAllowed},
		{"DELETE a response", "DELETE", "/plans/test-slug/response", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestRequestToPlanThroughRouter(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/requests",
		models.CreateRequestRequest{Title: "Dance", Category: models.CategoryDanceClass}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreateRequestResponse
	testutil.AssertJSON(t, w, &created)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/requests/"+created.Slug+"/promote",
		models.PromotePlanRequest{Start: testutil.At(19, 0), End: testutil.At(20, 0)}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var plan models.CreatePlanResponse
	testutil.AssertJSON(t, w, &plan)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/plans/"+plan.Slug, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var snap models.PlanSnapshot
	testutil.AssertJSON(t, w, &snap)
	if snap.Plan.Title != "Dance" {
		t.Errorf("Expected plan title 'Dance', got '%s'", snap.Plan.Title)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux := newTestMux(t)

	// One routed request so the counters have a sample
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/plans/nothere000", nil))
	mux.ServeHTTP(httptest.NewRecorder(), testutil.MakeRequest("POST", "/plans",
		models.CreatePlanRequest{Title: "x", Category: models.CategoryCoworking, Start: testutil.At(9, 0), End: testutil.At(10, 0)}, nil))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	for _, want := range []string{"tribe_http_requests_total", `code="404"`, "tribe_plans_created_total"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected /metrics to contain %s", want)
		}
	}
}
