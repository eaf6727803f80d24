// README: Tool registry and executor for the model's callable capabilities.
package assistant

import (
	"context"
	"fmt"
	"log"
	"math"

	"globetrotter/internal/modules/flights"
)

// Tool names exposed to the model.
const (
	toolSearchFlights  = "search_flights"
	toolEstimateHotels = "estimate_hotels"
	toolGetActivities  = "get_activities"
)

// maxActivities caps catalog lookups regardless of what the model asks for.
const maxActivities = 40

const defaultActivityLimit = 12

// ToolCall is the model's request to run one named capability.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult is the executor's reply. It is always produced; provider
// failures become {ok:false, error} envelopes, never Go errors, so the model
// can adapt inside the loop.
type ToolResult struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// executeTool runs one tool call against the external collaborators.
// Nothing raises past this boundary.
func (s *Service) executeTool(ctx context.Context, call ToolCall, defaultCurrency string) ToolResult {
	switch call.Name {
	case toolSearchFlights:
		return s.runSearchFlights(ctx, call.Arguments, defaultCurrency)
	case toolEstimateHotels:
		return s.runEstimateHotels(ctx, call.Arguments, defaultCurrency)
	case toolGetActivities:
		return s.runGetActivities(ctx, call.Arguments)
	default:
		return ToolResult{OK: false, Error: fmt.Sprintf("unknown tool %q", call.Name)}
	}
}

func (s *Service) runSearchFlights(ctx context.Context, args map[string]any, defaultCurrency string) ToolResult {
	q := flights.Query{
		Origin:      argString(args, "origin"),
		Destination: argString(args, "destination"),
		DateFrom:    argString(args, "dateFrom"),
		DateTo:      argString(args, "dateTo"),
		MaxPrice:    argFloat(args, "maxPrice"),
		Currency:    argString(args, "currency"),
	}
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}
	if q.Destination == "" {
		return ToolResult{OK: false, Error: "destination is required"}
	}

	options, err := s.flights.Search(ctx, q)
	if err != nil {
		log.Printf("assistant: search_flights failed: %v", err)
		return ToolResult{OK: false, Error: err.Error()}
	}
	if len(options) > 3 {
		options = options[:3]
	}
	return ToolResult{OK: true, Data: options}
}

func (s *Service) runEstimateHotels(ctx context.Context, args map[string]any, defaultCurrency string) ToolResult {
	destination := argString(args, "destination")
	if destination == "" {
		return ToolResult{OK: false, Error: "destination is required"}
	}
	nights := argInt(args, "nights")
	if nights < 1 {
		nights = 1
	}
	currency := argString(args, "currency")
	if currency == "" {
		currency = defaultCurrency
	}

	est, err := s.hotels.Estimate(ctx, destination, nights, currency)
	if err != nil {
		log.Printf("assistant: estimate_hotels failed: %v", err)
		return ToolResult{OK: false, Error: err.Error()}
	}
	return ToolResult{OK: true, Data: est}
}

// runGetActivities is best-effort: a catalog failure yields an empty list,
// never an error envelope, because activities must not hard-fail a plan.
func (s *Service) runGetActivities(ctx context.Context, args map[string]any) ToolResult {
	destination := argString(args, "destination")
	if destination == "" {
		return ToolResult{OK: true, Data: []any{}}
	}
	limit := argInt(args, "limit")
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivities {
		limit = maxActivities
	}

	activities, err := s.catalog.ListActivities(ctx, destination, limit)
	if err != nil {
		log.Printf("assistant: get_activities failed: %v", err)
		activities = nil
	}
	if activities == nil {
		return ToolResult{OK: true, Data: []any{}}
	}
	return ToolResult{OK: true, Data: activities}
}

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argFloat(args map[string]any, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(math.Round(v))
	case int:
		return v
	}
	return 0
}
