// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package overlap

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kahatra/tribe-widget/models"
)

const (
	// MinOverlap is the shortest intersection worth offering as a slot.
	MinOverlap = 30 * time.Minute

	// MaxCandidates caps the list so it stays reviewable.
	MaxCandidates = 8
)

// Intersect returns the overlap of two windows. ok is false when the
// windows only touch or do not meet at all.
func Intersect(a, b models.AvailabilityWindow) (c models.Candidate, ok bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !end.After(start) {
		return models.Candidate{}, false
	}
	return newCandidate(start, end), true
}

// Compute turns a request's windows into candidate meeting slots.
//
// Every unordered pair of windows is intersected; intersections shorter than
// MinOverlap are dropped and identical (start, end) pairs collapse into one.
// The result is sorted soonest first and capped at MaxCandidates. Fewer than
// two windows yields an empty, non-nil slice.
//
// Pairwise is quadratic, which is fine for the handful of people in a group.
func Compute(windows []models.AvailabilityWindow) []models.Candidate {
	candidates := []models.Candidate{}
	if len(windows) < 2 {
		return candidates
	}

	type key struct{ start, end int64 }
	seen := make(map[key]bool)

	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			c, ok := Intersect(windows[i], windows[j])
			if !ok || c.Duration < MinOverlap {
				continue
			}
			k := key{c.Start.UnixNano(), c.End.UnixNano()}
			if seen[k] {
				continue
			}
			seen[k] = true
			candidates = append(candidates, c)
		}
	}

	slices.SortFunc(candidates, func(a, b models.Candidate) int {
		if n := a.Start.Compare(b.Start); n != 0 {
			return n
		}
		return a.End.Compare(b.End)
	})

	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	for i := range candidates {
		candidates[i].Participants = coveringNames(windows, candidates[i])
	}
	return candidates
}

// coveringNames lists the distinct display names whose windows contain c.
func coveringNames(windows []models.AvailabilityWindow, c models.Candidate) []string {
	names := []string{}
	for _, w := range windows {
		if w.Start.After(c.Start) || w.End.Before(c.End) {
			continue
		}
		if !slices.Contains(names, w.DisplayName) {
			names = append(names, w.DisplayName)
		}
	}
	slices.Sort(names)
	return names
}

func newCandidate(start, end time.Time) models.Candidate {
	d := end.Sub(start)
	return models.Candidate{
		Start:    start,
		End:      end,
		Duration: d,
		Minutes:  int(d / time.Minute),
		Label:    strings.TrimSpace(humanize.RelTime(start, end, "", "")),
	}
}
