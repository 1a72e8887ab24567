// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kahatra/tribe-widget/cliparse"
	"github.com/kahatra/tribe-widget/handlers"
	"github.com/kahatra/tribe-widget/hang"
	"github.com/kahatra/tribe-widget/metrics"
	"github.com/kahatra/tribe-widget/middleware"
)

// NewRouter registers every endpoint. m may be nil; gatherer backs
// /metrics and defaults to the global prometheus registry.
func NewRouter(svc *hang.Service, cfg cliparse.Config, m *metrics.Metrics, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Initialize handlers
	requestHandler := handlers.NewRequestHandler(svc, cfg)
	planHandler := handlers.NewPlanHandler(svc, cfg)
	participantHandler := handlers.NewParticipantHandler(svc)

	// The pattern doubles as the metrics route label
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(m, pattern, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Hang requests and availability
	handle("POST /requests", requestHandler.CreateRequest)
	handle("GET /requests/{slug}", requestHandler.GetRequest)
	handle("GET /requests/{slug}/windows", requestHandler.ListWindows)
	handle("POST /requests/{slug}/windows", requestHandler.AddWindow)
	handle("GET /requests/{slug}/overlaps", requestHandler.GetOverlaps)
	handle("POST /requests/{slug}/promote", requestHandler.PromotePlan)

	// Plans, responses and claims
	handle("POST /plans", planHandler.CreatePlan)
	handle("GET /plans/{slug}", planHandler.GetPlan)
	handle("PUT /plans/{slug}/response", planHandler.SetResponse)
	handle("PATCH /plans/{slug}/response", planHandler.UpdateResponse)
	handle("GET /plans/{slug}/response", planHandler.GetMyResponse)
	handle("POST /plans/{slug}/claims/seed", planHandler.SeedClaims)
	handle("POST /plans/{slug}/items", planHandler.AddItem)
	handle("POST /plans/{slug}/claim", planHandler.ClaimItem)
	handle("POST /plans/{slug}/unclaim", planHandler.UnclaimItem)

	// Participants
	handle("POST /participants", participantHandler.Register)
	handle("GET /participants/me/plans", participantHandler.GetMyPlans)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tribe-widget API v1"))
	})

	return mux
}
