package models

import "time"

// Hang categories
const (
	CategoryPotluck    = "potluck"
	CategoryCoworking  = "coworking"
	CategoryDanceClass = "dance_class"
	CategoryPlaydate   = "playdate"
)

// Response status constants
const (
	StatusIn    = "in"
	StatusMaybe = "maybe"
	StatusOut   = "out"
)

// Arrival estimates (Playdate plans only)
const (
	ArrivalOnTime         = "on_time"
	ArrivalFewMinutesLate = "few_minutes_late"
	ArrivalHalfHourLate   = "half_hour_late"
	ArrivalLeavingEarly   = "leaving_early"
)

// DefaultPotluckItems is seeded into every potluck plan, in display order.
var DefaultPotluckItems = []string{
	"Main dish",
	"Side dish",
	"Salad",
	"Dessert",
	"Drinks",
	"Plates & cutlery",
}

func IsValidCategory(c string) bool {
	switch c {
	case CategoryPotluck, CategoryCoworking, CategoryDanceClass, CategoryPlaydate:
		return true
	}
	return false
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusIn, StatusMaybe, StatusOut:
		return true
	}
	return false
}

func IsValidArrival(a string) bool {
	switch a {
	case ArrivalOnTime, ArrivalFewMinutesLate, ArrivalHalfHourLate, ArrivalLeavingEarly:
		return true
	}
	return false
}

// Request types

type CreateRequestRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Note     string `json:"note"`
}

type AddWindowRequest struct {
	DisplayName string    `json:"display_name"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type PromotePlanRequest struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location"`
}

type CreatePlanRequest struct {
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Note     string    `json:"note"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location"`
}

type SetResponseRequest struct {
	DisplayName string  `json:"display_name"`
	Status      string  `json:"status"`
	Arrival     *string `json:"arrival,omitempty"`
}

// Status and Arrival are both optional; at least one must be set.
type UpdateResponseRequest struct {
	DisplayName string  `json:"display_name"`
	Status      *string `json:"status,omitempty"`
	Arrival     *string `json:"arrival,omitempty"`
}

type AddItemRequest struct {
	Item string `json:"item"`
}

type ClaimRequest struct {
	Item        string `json:"item"`
	DisplayName string `json:"display_name"`
}

// Response types

type CreateRequestResponse struct {
	Slug     string `json:"slug"`
	ShareURL string `json:"share_url"`
}

type CreatePlanResponse struct {
	Slug     string `json:"slug"`
	ShareURL string `json:"share_url"`
	Plan     Plan   `json:"plan"`
}

type RegisterParticipantResponse struct {
	Token string `json:"token"`
}

type WindowsResponse struct {
	Windows []AvailabilityWindow `json:"windows"`
}

type CandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type ClaimsResponse struct {
	Claims []Claim `json:"claims"`
}

type ParticipantPlansResponse struct {
	Plans []ParticipantPlan `json:"plans"`
}

// Domain types

type HangRequest struct {
	ID        string    `json:"-"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type AvailabilityWindow struct {
	ID               string    `json:"-"`
	RequestID        string    `json:"-"`
	ParticipantToken string    `json:"-"` // Never expose in JSON
	DisplayName      string    `json:"display_name"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	CreatedAt        time.Time `json:"created_at"`
}

type Plan struct {
	ID              string    `json:"-"`
	Slug            string    `json:"slug"`
	SourceRequestID *string   `json:"-"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Note            string    `json:"note"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Location        *string   `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Response struct {
	ID               string    `json:"-"`
	PlanID           string    `json:"-"`
	ParticipantToken string    `json:"-"` // Never expose in JSON
	DisplayName      string    `json:"display_name"`
	Status           string    `json:"status"`
	Arrival          *string   `json:"arrival,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Claim struct {
	ID        string  `json:"-"`
	PlanID    string  `json:"-"`
	Item      string  `json:"item"`
	ClaimedBy *string `json:"claimed_by,omitempty"`
}

// Candidate is an overlap of two or more windows long enough to meet in.
type Candidate struct {
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Duration     time.Duration `json:"-"`
	Minutes      int           `json:"minutes"`
	Label        string        `json:"label"`
	Participants []string      `json:"participants"`
}

type Tally struct {
	In    int `json:"in"`
	Maybe int `json:"maybe"`
	Out   int `json:"out"`
}

// PlanSnapshot is the shared view of a plan that clients poll.
type PlanSnapshot struct {
	Plan      Plan       `json:"plan"`
	Responses []Response `json:"responses"`
	Claims    []Claim    `json:"claims"`
	Tally     Tally      `json:"tally"`
	FetchedAt time.Time  `json:"fetched_at"`

	// PollIntervalMS is how often clients should re-fetch this view.
	PollIntervalMS int64 `json:"poll_interval_ms"`
}

// RequestSnapshot is the shared view of a hang request before promotion.
type RequestSnapshot struct {
	Request    HangRequest          `json:"request"`
	Windows    []AvailabilityWindow `json:"windows"`
	Candidates []Candidate          `json:"candidates"`
	FetchedAt  time.Time            `json:"fetched_at"`

	PollIntervalMS int64 `json:"poll_interval_ms"`
}

type ParticipantPlan struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
