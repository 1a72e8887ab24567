// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus metrics the service exports.
//
// All methods are safe on a nil *Metrics, so components can be built without
// instrumentation in tests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tribe"

// Sync outcomes
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeNotFound  = "not_found"
	OutcomeCoalesced = "coalesced"
)

type Metrics struct {
	// HTTPRequests counts API requests. Labels: route, code
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration observes request latency. Labels: route
	HTTPDuration *prometheus.HistogramVec

	// SyncFetches counts reconciliation fetches. Labels: loop, outcome
	SyncFetches *prometheus.CounterVec

	// ClaimActions counts item sign-up changes. Labels: action
	ClaimActions *prometheus.CounterVec

	// PlansCreated counts new plans. Labels: source (promoted, direct)
	PlansCreated *prometheus.CounterVec
}

// New registers all metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "API requests by route and status code",
			},
			[]string{"route", "code"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "API request latency by route",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"route"},
		),
		SyncFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "fetches_total",
				Help:      "Snapshot reconciliation fetches by loop and outcome",
			},
			[]string{"loop", "outcome"},
		),
		ClaimActions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "claims",
				Name:      "actions_total",
				Help:      "Item claim changes by action (claim, unclaim, denied, seed per default item inserted)",
			},
			[]string{"action"},
		),
		PlansCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "plans",
				Name:      "created_total",
				Help:      "Plans created by source",
			},
			[]string{"source"},
		),
	}
}

func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) SyncFetch(loop, outcome string) {
	if m == nil {
		return
	}
	m.SyncFetches.WithLabelValues(loop, outcome).Inc()
}

func (m *Metrics) ClaimAction(action string) {
	if m == nil {
		return
	}
	m.ClaimActions.WithLabelValues(action).Inc()
}

func (m *Metrics) PlanCreated(source string) {
	if m == nil {
		return
	}
	m.PlansCreated.WithLabelValues(source).Inc()
}
