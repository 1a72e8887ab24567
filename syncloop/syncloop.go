// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncloop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kahatra/tribe-widget/metrics"
	"github.com/kahatra/tribe-widget/models"
)

// DefaultInterval is how often a loop re-reads shared state.
const DefaultInterval = 2 * time.Second

// FetchFunc reads a complete snapshot from the source of truth.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type config struct {
	name       string
	interval   time.Duration
	timeout    time.Duration
	onError    func(error)
	isTerminal func(error) bool
	metrics    *metrics.Metrics
}

type Option func(*config)

// WithInterval sets the poll cadence. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithFetchTimeout bounds a single fetch. Defaults to the interval.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithErrorHandler is called for every failed fetch that is not caused by
// the loop's own cancellation.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithTerminal decides which fetch errors stop the loop. By default only
// models.NotFoundError does.
func WithTerminal(fn func(error) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.isTerminal = fn
		}
	}
}

// WithName labels the loop in logs and metrics.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// Loop keeps a snapshot of type T current by re-fetching it on a fixed
// cadence. Each successful fetch replaces the snapshot wholesale. A failed
// fetch keeps the previous snapshot.
//
// At most one fetch runs at a time: ticks are serviced on the Run goroutine
// and concurrent Refresh calls join the in-flight fetch.
type Loop[T any] struct {
	fetch    FetchFunc[T]
	onUpdate func(T)
	cfg      config

	group singleflight.Group

	mu        sync.RWMutex
	current   T
	has       bool
	lastErr   error
	fetchedAt time.Time
}

// New builds a loop. onUpdate, if non-nil, receives every new snapshot on
// the goroutine that performed the fetch.
func New[T any](fetch FetchFunc[T], onUpdate func(T), opts ...Option) *Loop[T] {
	cfg := config{
		name:       "snapshot",
		interval:   DefaultInterval,
		isTerminal: models.IsNotFound,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.timeout <= 0 {
		cfg.timeout = cfg.interval
	}
	return &Loop[T]{fetch: fetch, onUpdate: onUpdate, cfg: cfg}
}

// Run fetches immediately and then once per interval until ctx is done or a
// terminal error occurs. It returns nil on cancellation and the terminal
// error otherwise. Transient errors are retried on the next tick.
func (l *Loop[T]) Run(ctx context.Context) error {
	if _, err := l.Refresh(ctx); err != nil && l.cfg.isTerminal(err) {
		return err
	}

	ticker := time.NewTicker(l.cfg.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := l.Refresh(ctx); err != nil && l.cfg.isTerminal(err) {
				return err
			}
		}
	}
}

// Refresh fetches now, or waits for the fetch already in flight.
func (l *Loop[T]) Refresh(ctx context.Context) (T, error) {
	var zero T

	// led is only written by the fetch goroutine before ch is sent on
	var led bool
	ch := l.group.DoChan(l.cfg.name, func() (any, error) {
		led = true
		return l.fetchOnce(ctx)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		// Only callers that joined another's fetch count as coalesced
		if res.Shared && !led {
			l.cfg.metrics.SyncFetch(l.cfg.name, metrics.OutcomeCoalesced)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Current returns the last good snapshot. ok is false until the first
// successful fetch.
func (l *Loop[T]) Current() (snapshot T, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current, l.has
}

// Err returns the error from the most recent fetch, or nil if it succeeded.
func (l *Loop[T]) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// FetchedAt is when the current snapshot was read.
func (l *Loop[T]) FetchedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fetchedAt
}

func (l *Loop[T]) fetchOnce(ctx context.Context) (T, error) {
	var zero T

	fctx, cancel := context.WithTimeout(ctx, l.cfg.timeout)
	defer cancel()

	v, err := l.fetch(fctx)
	if err != nil {
		// Our own cancellation is not a failed fetch
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		l.mu.Lock()
		l.lastErr = err
		l.mu.Unlock()

		outcome := metrics.OutcomeError
		if l.cfg.isTerminal(err) {
			outcome = metrics.OutcomeNotFound
		}
		l.cfg.metrics.SyncFetch(l.cfg.name, outcome)

		slog.Debug("sync fetch failed", "loop", l.cfg.name, "error", err,
			"timed_out", errors.Is(err, context.DeadlineExceeded))
		if l.cfg.onError != nil {
			l.cfg.onError(err)
		}
		return zero, err
	}

	l.mu.Lock()
	l.current = v
	l.has = true
	l.lastErr = nil
	l.fetchedAt = time.Now()
	l.mu.Unlock()

	l.cfg.metrics.SyncFetch(l.cfg.name, metrics.OutcomeOK)
	if l.onUpdate != nil {
		l.onUpdate(v)
	}
	return v, nil
}
