// README: Assistant domain models: conversation turns, travel intent, plans, tools.
package assistant

import (
	"context"
	"errors"
	"time"

	"globetrotter/internal/modules/catalog"
	"globetrotter/internal/modules/flights"
	"globetrotter/internal/modules/hotels"
	"globetrotter/internal/types"
)

var ErrEmptyConversation = errors.New("assistant: conversation is empty")

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of the user-facing conversation. Only user-role turns
// feed extraction; assistant and system turns are excluded to avoid feedback
// contamination.
type Message struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	ImageRef string `json:"imageRef,omitempty"`
}

const defaultTripDays = 3

// TravelIntent is the structured record of what the user wants, produced
// fresh per request and never persisted.
type TravelIntent struct {
	Destination string
	OriginCity  string
	Budget      types.Money
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
	Days        int
}

// Action is the classifier's decision for the next assistant move.
type Action int

const (
	ActionPlan Action = iota
	ActionFreeform
	ActionGreet
	ActionClarifyBudget
	ActionClarifyDestination
	ActionClarifyBoth
)

func (a Action) String() string {
	switch a {
	case ActionPlan:
		return "plan"
	case ActionFreeform:
		return "freeform"
	case ActionGreet:
		return "greet"
	case ActionClarifyBudget:
		return "clarify_budget"
	case ActionClarifyDestination:
		return "clarify_destination"
	case ActionClarifyBoth:
		return "clarify_both"
	}
	return "unknown"
}

// BudgetBreakdown is the per-category cost allocation of a plan.
// After reconciliation, Total never exceeds the requested budget.
type BudgetBreakdown struct {
	Flights    int64  `json:"flights"`
	Hotels     int64  `json:"hotels"`
	Activities int64  `json:"activities"`
	Total      int64  `json:"total"`
	Currency   string `json:"currency"`
}

// PlanItem is one scheduled entry of an itinerary day.
type PlanItem struct {
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	StartTime     string  `json:"startTime,omitempty"`
	DurationHours float64 `json:"duration_hours,omitempty"`
	EstimatedCost float64 `json:"estimated_cost,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// PlanDay groups items under a 1-based day number.
type PlanDay struct {
	Day   int        `json:"day"`
	Items []PlanItem `json:"items"`
}

// Plan is a multi-day itinerary with its budget allocation.
type Plan struct {
	Itinerary       []PlanDay        `json:"itinerary"`
	BudgetBreakdown *BudgetBreakdown `json:"budget_breakdown,omitempty"`
}

// BaselineOptions carries the deterministic cost anchors returned alongside
// (or instead of) a plan. Flight is null when no flight could be found.
type BaselineOptions struct {
	Flight     *flights.Option    `json:"flight"`
	Hotel      *hotels.Estimate   `json:"hotel"`
	Activities []catalog.Activity `json:"activities,omitempty"`
}

// TurnRequest is one inbound assistant turn. DocumentText and ImageHint are
// pre-extracted upstream (see internal/docs and ai.Provider.Caption) and are
// both optional.
type TurnRequest struct {
	Messages     []Message
	DocumentText string
	ImageHint    string
	Currency     string
}

// TurnResponse is the assistant's reply for one turn.
type TurnResponse struct {
	AssistantText   string           `json:"assistantText"`
	Plan            *Plan            `json:"plan,omitempty"`
	BudgetBreakdown *BudgetBreakdown `json:"budget_breakdown,omitempty"`
	Options         *BaselineOptions `json:"options,omitempty"`
}

// Catalog is the city/activity lookup collaborator.
type Catalog interface {
	ResolveCity(ctx context.Context, query string) (catalog.City, bool)
	FindCityInText(ctx context.Context, text string) (catalog.City, bool)
	ListActivities(ctx context.Context, cityName string, limit int) ([]catalog.Activity, error)
}

// FlightSearcher is the flight-search collaborator. Options come back
// ordered ascending by price.
type FlightSearcher interface {
	Search(ctx context.Context, q flights.Query) ([]flights.Option, error)
}

// HotelEstimator is the hotel cost-estimate collaborator.
type HotelEstimator interface {
	Estimate(ctx context.Context, destination string, nights int, currency string) (hotels.Estimate, error)
}
