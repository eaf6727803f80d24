// README: Bounded tool-calling loop between the orchestrator and the model.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"globetrotter/internal/ai"
)

// maxToolIterations is the hard ceiling on model round trips per turn. The
// loop trades completeness for a fixed latency and cost bound.
const maxToolIterations = 3

// loopOutcome is the result of interpreting one model reply.
type loopOutcome int

const (
	outcomeToolRequested loopOutcome = iota
	outcomeFinalAnswer
	outcomeParseFailed
	outcomeExhausted
)

// modelTurn is the tagged union of the two reply shapes the model may emit.
type modelTurn struct {
	ToolCall        *ToolCall        `json:"tool_call,omitempty"`
	FinalAnswer     string           `json:"final_answer,omitempty"`
	Plan            *Plan            `json:"plan,omitempty"`
	BudgetBreakdown *BudgetBreakdown `json:"budget_breakdown,omitempty"`
}

// toolPlanResult is a successful tool-loop outcome.
type toolPlanResult struct {
	FinalAnswer string
	Plan        *Plan
	Breakdown   *BudgetBreakdown
}

const toolSystemPrompt = `You are Globetrotter, a travel planning assistant. You can call exactly three tools:
- search_flights(origin, destination, dateFrom?, dateTo?, maxPrice?, currency) -> cheapest flight options
- estimate_hotels(destination, nights, currency) -> lodging cost estimate
- get_activities(destination, limit?) -> catalog of things to do

Reply with ONLY one JSON object per turn, in one of exactly two shapes:
1. {"tool_call": {"name": "<tool>", "arguments": {...}}}
2. {"final_answer": "<friendly summary for the user>", "plan": {"itinerary": [{"day": 1, "items": [{"name", "category", "startTime", "duration_hours", "estimated_cost", "notes"}]}]}, "budget_breakdown": {"flights": 0, "hotels": 0, "activities": 0, "total": 0, "currency": "USD"}}

Ground the plan in tool results. Keep the total within the stated budget. Only reference activities the catalog returned. No markdown outside the JSON object.`

// planWithTools runs the bounded conversational loop. It returns nil when
// the loop failed to converge (malformed reply, model error, or iteration
// ceiling) and the caller must fall back to the deterministic builder.
func (s *Service) planWithTools(ctx context.Context, intent TravelIntent) *toolPlanResult {
	msgs := []ai.Message{
		{Role: ai.RoleSystem, Content: toolSystemPrompt},
		{Role: ai.RoleUser, Content: intentSummary(intent)},
	}

	for i := 0; i < maxToolIterations; i++ {
		raw, err := s.llm.Complete(ctx, msgs, 0.3, 1200)
		if err != nil {
			log.Printf("assistant: tool loop model call failed: %v", err)
			return nil
		}

		turn, outcome := interpretModelTurn(raw)
		switch outcome {
		case outcomeParseFailed:
			log.Printf("assistant: tool loop reply not parseable, falling back")
			return nil
		case outcomeFinalAnswer:
			return &toolPlanResult{
				FinalAnswer: turn.FinalAnswer,
				Plan:        turn.Plan,
				Breakdown:   pickBreakdown(turn),
			}
		case outcomeToolRequested:
			result := s.executeTool(ctx, *turn.ToolCall, intent.Budget.Currency)
			msgs = append(msgs, ai.Message{Role: ai.RoleAssistant, Content: raw})
			msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: toolResultEnvelope(result)})
		}
	}
	// outcomeExhausted: the model kept requesting tools.
	return nil
}

func interpretModelTurn(raw string) (modelTurn, loopOutcome) {
	var turn modelTurn
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &turn); err != nil {
		return modelTurn{}, outcomeParseFailed
	}
	switch {
	case turn.ToolCall != nil && turn.ToolCall.Name != "":
		return turn, outcomeToolRequested
	case turn.FinalAnswer != "" || turn.Plan != nil:
		return turn, outcomeFinalAnswer
	default:
		// Parsed but matches neither shape: treat as malformed.
		return modelTurn{}, outcomeParseFailed
	}
}

func pickBreakdown(turn modelTurn) *BudgetBreakdown {
	if turn.BudgetBreakdown != nil {
		return turn.BudgetBreakdown
	}
	if turn.Plan != nil {
		return turn.Plan.BudgetBreakdown
	}
	return nil
}

func toolResultEnvelope(result ToolResult) string {
	raw, err := json.Marshal(map[string]any{"tool_result": result})
	if err != nil {
		return `{"tool_result":{"ok":false,"error":"unserializable result"}}`
	}
	return string(raw)
}

func intentSummary(intent TravelIntent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s for %d days.", intent.Destination, intent.Days)
	if intent.OriginCity != "" {
		fmt.Fprintf(&b, " Departing from %s.", intent.OriginCity)
	}
	if !intent.Budget.IsZero() {
		fmt.Fprintf(&b, " Total budget: %d %s.", intent.Budget.Amount, intent.Budget.Currency)
	}
	if !intent.StartDate.IsZero() {
		fmt.Fprintf(&b, " Starting %s.", intent.StartDate.Format("2006-01-02"))
	}
	if !intent.EndDate.IsZero() {
		fmt.Fprintf(&b, " Ending %s.", intent.EndDate.Format("2006-01-02"))
	}
	if len(intent.Interests) > 0 {
		fmt.Fprintf(&b, " Interests: %s.", strings.Join(intent.Interests, ", "))
	}
	return b.String()
}
