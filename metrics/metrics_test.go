// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET /plans/{slug}", 200, 10*time.Millisecond)
	m.ObserveRequest("GET /plans/{slug}", 200, 20*time.Millisecond)
	m.SyncFetch("plan", OutcomeOK)
	m.SyncFetch("plan", OutcomeError)
	m.ClaimAction("claim")
	m.PlanCreated("promoted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET /plans/{slug}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncFetches.WithLabelValues("plan", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncFetches.WithLabelValues("plan", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClaimActions.WithLabelValues("claim")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansCreated.WithLabelValues("promoted")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET /", 200, time.Millisecond)
		m.SyncFetch("plan", OutcomeOK)
		m.ClaimAction("claim")
		m.PlanCreated("direct")
	})
}
