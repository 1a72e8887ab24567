// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/clock"
	"github.com/kahatra/tribe-widget/db"
	"github.com/kahatra/tribe-widget/metrics"
	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/store"
	"github.com/kahatra/tribe-widget/syncloop"
)

// Store is the record store the service reads and writes. *store.Store
// implements it.
type Store interface {
	CreateRequest(ctx context.Context, r models.HangRequest) error
	GetRequestBySlug(ctx context.Context, slug string) (models.HangRequest, error)

	AddWindow(ctx context.Context, w models.AvailabilityWindow) error
	ListWindows(ctx context.Context, requestID string) ([]models.AvailabilityWindow, error)

	CreatePlan(ctx context.Context, p models.Plan) error
	GetPlanBySlug(ctx context.Context, slug string) (models.Plan, error)
	ListPlansForParticipant(ctx context.Context, token string) ([]models.ParticipantPlan, error)

	UpsertResponse(ctx context.Context, r models.Response) error
	GetResponse(ctx context.Context, planID, token string) (models.Response, error)
	ListResponses(ctx context.Context, planID string) ([]models.Response, error)

	InsertClaimIfAbsent(ctx context.Context, c models.Claim, position int) (bool, error)
	ListClaims(ctx context.Context, planID string) ([]models.Claim, error)
	GetClaim(ctx context.Context, planID, item string) (models.Claim, error)
	SetClaimant(ctx context.Context, planID, item, name string) error
	ReleaseClaim(ctx context.Context, planID, item, name string) (bool, error)
}

// Service implements the caller-facing operations: requests and windows,
// overlap computation, plan promotion, responses, claims and snapshots.
//
// It keeps no state between calls; every operation re-reads what it needs
// from the store.
type Service struct {
	store        Store
	clock        clock.Clock
	metrics      *metrics.Metrics
	syncInterval time.Duration
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSyncInterval overrides the refresh cadence used by WatchPlan and
// WatchRequest and advertised to clients in every snapshot.
func WithSyncInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.syncInterval = d
		}
	}
}

func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		store:        st,
		clock:        clock.NewSystem(),
		syncInterval: syncloop.DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// slugAttempts bounds retries when a freshly generated slug collides.
const slugAttempts = 3

// insertWithSlug generates a slug and runs insert, retrying with a new slug
// on a unique violation.
func insertWithSlug(insert func(slug string) error) (string, error) {
	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		var slug string
		slug, err = auth.GenerateSlug()
		if err != nil {
			return "", err
		}
		err = insert(slug)
		if err == nil {
			return slug, nil
		}
		if !db.IsUniqueViolation(err) {
			return "", err
		}
		slog.Warn("slug collision, retrying", "attempt", attempt+1)
	}
	return "", err
}

// storeError converts a store failure into the service error taxonomy.
func storeError(op, kind, key string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &models.NotFoundError{Kind: kind, Key: key}
	}
	return &models.PersistenceError{Op: op, Err: err}
}

func (s *Service) now() time.Time {
	return s.clock.Now().Truncate(time.Second)
}

// WatchPlan keeps a plan snapshot current until ctx is cancelled, calling
// onUpdate with every fresh snapshot. It returns a NotFoundError if the
// plan does not exist.
func (s *Service) WatchPlan(ctx context.Context, slug string, onUpdate func(models.PlanSnapshot), opts ...syncloop.Option) error {
	fetch := func(ctx context.Context) (models.PlanSnapshot, error) {
		return s.PlanSnapshot(ctx, slug)
	}
	opts = append([]syncloop.Option{
		syncloop.WithName("plan"),
		syncloop.WithInterval(s.syncInterval),
		syncloop.WithMetrics(s.metrics),
	}, opts...)
	return syncloop.New(fetch, onUpdate, opts...).Run(ctx)
}

// WatchRequest is WatchPlan for a request that has not been promoted yet.
func (s *Service) WatchRequest(ctx context.Context, slug string, onUpdate func(models.RequestSnapshot), opts ...syncloop.Option) error {
	fetch := func(ctx context.Context) (models.RequestSnapshot, error) {
		return s.RequestSnapshot(ctx, slug)
	}
	opts = append([]syncloop.Option{
		syncloop.WithName("request"),
		syncloop.WithInterval(s.syncInterval),
		syncloop.WithMetrics(s.metrics),
	}, opts...)
	return syncloop.New(fetch, onUpdate, opts...).Run(ctx)
}
