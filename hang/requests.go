// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kahatra/tribe-widget/auth"
	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/overlap"
)

type CreateRequestInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"required,oneof=potluck coworking dance_class playdate"`
	Note     string `json:"note" validate:"max=2000"`
}

type AddWindowInput struct {
	RequestSlug string    `json:"-"`
	Token       string    `json:"participant_token" validate:"token"`
	DisplayName string    `json:"display_name" validate:"required,max=80"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
}

// CreateRequest stores a new hang request under a fresh public slug.
func (s *Service) CreateRequest(ctx context.Context, in CreateRequestInput) (models.HangRequest, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Note = strings.TrimSpace(in.Note)
	if err := validateInput(in); err != nil {
		return models.HangRequest{}, err
	}

	req := models.HangRequest{
		ID:        auth.NewID(),
		Title:     in.Title,
		Category:  in.Category,
		Note:      in.Note,
		CreatedAt: s.now(),
	}

	slug, err := insertWithSlug(func(slug string) error {
		req.Slug = slug
		return s.store.CreateRequest(ctx, req)
	})
	if err != nil {
		return models.HangRequest{}, &models.PersistenceError{Op: "create request", Err: err}
	}
	req.Slug = slug

	slog.Info("hang request created", "slug", slug, "category", req.Category)
	return req, nil
}

// GetRequest resolves a public slug.
func (s *Service) GetRequest(ctx context.Context, slug string) (models.HangRequest, error) {
	if auth.ValidateSlug(slug) != nil {
		return models.HangRequest{}, &models.NotFoundError{Kind: "request", Key: slug}
	}
	req, err := s.store.GetRequestBySlug(ctx, slug)
	if err != nil {
		return models.HangRequest{}, storeError("get request", "request", slug, err)
	}
	return req, nil
}

// AddWindow records one availability window for a participant. A
// participant may add any number of windows.
func (s *Service) AddWindow(ctx context.Context, in AddWindowInput) (models.AvailabilityWindow, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := validateInput(in); err != nil {
		return models.AvailabilityWindow{}, err
	}

	req, err := s.GetRequest(ctx, in.RequestSlug)
	if err != nil {
		return models.AvailabilityWindow{}, err
	}

	w := models.AvailabilityWindow{
		ID:               auth.NewID(),
		RequestID:        req.ID,
		ParticipantToken: in.Token,
		DisplayName:      in.DisplayName,
		Start:            in.Start.UTC().Truncate(time.Second),
		End:              in.End.UTC().Truncate(time.Second),
		CreatedAt:        s.now(),
	}
	// Truncation can collapse a sub-second window
	if !w.End.After(w.Start) {
		return models.AvailabilityWindow{}, models.NewValidationError("end", "must be after start")
	}

	if err := s.store.AddWindow(ctx, w); err != nil {
		return models.AvailabilityWindow{}, storeError("add window", "request", in.RequestSlug, err)
	}

	slog.Info("window added", "request", req.Slug, "participant", w.DisplayName)
	return w, nil
}

// ListWindows returns every window submitted for a request.
func (s *Service) ListWindows(ctx context.Context, slug string) ([]models.AvailabilityWindow, error) {
	req, err := s.GetRequest(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.listWindows(ctx, req)
}

func (s *Service) listWindows(ctx context.Context, req models.HangRequest) ([]models.AvailabilityWindow, error) {
	windows, err := s.store.ListWindows(ctx, req.ID)
	if err != nil {
		return nil, storeError("list windows", "request", req.Slug, err)
	}
	return windows, nil
}

// ComputeOverlaps recomputes candidate slots from the current window set.
func (s *Service) ComputeOverlaps(ctx context.Context, slug string) ([]models.Candidate, error) {
	windows, err := s.ListWindows(ctx, slug)
	if err != nil {
		return nil, err
	}
	return overlap.Compute(windows), nil
}

// RequestSnapshot reads a request with its windows and candidates.
func (s *Service) RequestSnapshot(ctx context.Context, slug string) (models.RequestSnapshot, error) {
	req, err := s.GetRequest(ctx, slug)
	if err != nil {
		return models.RequestSnapshot{}, err
	}
	windows, err := s.listWindows(ctx, req)
	if err != nil {
		return models.RequestSnapshot{}, err
	}
	return models.RequestSnapshot{
		Request:    req,
		Windows:    windows,
		Candidates: overlap.Compute(windows),
		FetchedAt:  s.clock.Now(),

		PollIntervalMS: s.syncInterval.Milliseconds(),
	}, nil
}
