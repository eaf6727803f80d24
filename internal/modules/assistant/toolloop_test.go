package assistant

import (
	"context"
	"strings"
	"testing"

	"globetrotter/internal/ai"
	"globetrotter/internal/modules/flights"
	"globetrotter/internal/types"
)

func planIntent() TravelIntent {
	return TravelIntent{
		Destination: "Paris",
		OriginCity:  "London",
		Budget:      types.Money{Amount: 400, Currency: "USD"},
		Days:        3,
	}
}

// The loop must stop after exactly the iteration ceiling when the model
// never produces a final answer.
func TestPlanWithToolsIterationCeiling(t *testing.T) {
	llm := &fakeLLM{fn: func(int, []ai.Message) (string, error) {
		return `{"tool_call": {"name": "get_activities", "arguments": {"destination": "Paris"}}}`, nil
	}}
	svc := newTestService(llm, nil, nil, nil)

	result := svc.planWithTools(context.Background(), planIntent())

	if result != nil {
		t.Fatalf("expected nil result for a non-converging loop, got %+v", result)
	}
	if llm.calls != maxToolIterations {
		t.Fatalf("model calls = %d, want %d", llm.calls, maxToolIterations)
	}
}

func TestPlanWithToolsFinalAnswer(t *testing.T) {
	llm := &fakeLLM{replies: []string{
		`{"final_answer": "Here is your Paris plan!",
		  "plan": {"itinerary": [{"day": 1, "items": [{"name": "Louvre", "estimated_cost": 22}]}]},
		  "budget_breakdown": {"flights": 120, "hotels": 180, "activities": 60, "total": 360, "currency": "USD"}}`,
	}}
	svc := newTestService(llm, nil, nil, nil)

	result := svc.planWithTools(context.Background(), planIntent())

	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if result.FinalAnswer != "Here is your Paris plan!" {
		t.Errorf("final answer = %q", result.FinalAnswer)
	}
	if result.Plan == nil || len(result.Plan.Itinerary) != 1 {
		t.Errorf("plan = %+v, want one itinerary day", result.Plan)
	}
	if result.Breakdown == nil || result.Breakdown.Total != 360 {
		t.Errorf("breakdown = %+v, want total 360", result.Breakdown)
	}
	if llm.calls != 1 {
		t.Errorf("model calls = %d, want 1", llm.calls)
	}
}

// A reply matching neither shape aborts the loop immediately so the
// deterministic builder can take over.
func TestPlanWithToolsParseFailureAborts(t *testing.T) {
	llm := &fakeLLM{replies: []string{"Sure, let me think about that..."}}
	svc := newTestService(llm, nil, nil, nil)

	if result := svc.planWithTools(context.Background(), planIntent()); result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
	if llm.calls != 1 {
		t.Fatalf("model calls = %d, want 1", llm.calls)
	}
}

func TestPlanWithToolsFeedsResultBack(t *testing.T) {
	fl := &fakeFlights{options: []flights.Option{
		{Airline: "AF", FlightNo: "AF123", Price: 140, Currency: "USD"},
	}}
	llm := &fakeLLM{fn: func(call int, msgs []ai.Message) (string, error) {
		switch call {
		case 1:
			return `{"tool_call": {"name": "search_flights", "arguments": {"origin": "London", "destination": "Paris", "currency": "USD"}}}`, nil
		default:
			last := msgs[len(msgs)-1]
			if last.Role != ai.RoleUser || !strings.Contains(last.Content, "tool_result") {
				t.Errorf("tool result not fed back as a user turn: %+v", last)
			}
			if !strings.Contains(last.Content, "AF123") {
				t.Errorf("tool result missing flight data: %s", last.Content)
			}
			return `{"final_answer": "Found a flight for 140 USD.", "budget_breakdown": {"flights": 140, "hotels": 200, "activities": 60, "total": 400, "currency": "USD"}}`, nil
		}
	}}
	svc := newTestService(llm, nil, fl, nil)

	result := svc.planWithTools(context.Background(), planIntent())

	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if llm.calls != 2 {
		t.Errorf("model calls = %d, want 2", llm.calls)
	}
	if fl.calls != 1 {
		t.Errorf("flight searches = %d, want 1", fl.calls)
	}
	if fl.lastQuery.Destination != "Paris" || fl.lastQuery.Origin != "London" {
		t.Errorf("query = %+v", fl.lastQuery)
	}
}

// A failing tool must come back as an ok:false envelope, not abort the loop.
func TestPlanWithToolsToolErrorKeepsLooping(t *testing.T) {
	llm := &fakeLLM{fn: func(call int, msgs []ai.Message) (string, error) {
		if call == 1 {
			return `{"tool_call": {"name": "search_flights", "arguments": {"destination": "Paris"}}}`, nil
		}
		last := msgs[len(msgs)-1]
		if !strings.Contains(last.Content, `"ok":false`) {
			t.Errorf("expected an ok:false envelope, got: %s", last.Content)
		}
		return `{"final_answer": "No flights found, but here's a plan.", "plan": {"itinerary": [{"day": 1, "items": [{"name": "Walk the Seine"}]}]}}`, nil
	}}
	svc := newTestService(llm, nil, nil, nil) // flights fake errors by default

	result := svc.planWithTools(context.Background(), planIntent())

	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if result.Breakdown != nil {
		t.Errorf("breakdown = %+v, want nil when the model omitted it", result.Breakdown)
	}
}

func TestInterpretModelTurn(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want loopOutcome
	}{
		{"tool call", `{"tool_call": {"name": "get_activities", "arguments": {}}}`, outcomeToolRequested},
		{"final answer", `{"final_answer": "done"}`, outcomeFinalAnswer},
		{"plan without text", `{"plan": {"itinerary": [{"day": 1, "items": []}]}}`, outcomeFinalAnswer},
		{"fenced tool call", "```json\n{\"tool_call\": {\"name\": \"estimate_hotels\", \"arguments\": {}}}\n```", outcomeToolRequested},
		{"prose", "I think we should look at flights first.", outcomeParseFailed},
		{"empty object", `{}`, outcomeParseFailed},
		{"nameless tool call", `{"tool_call": {"arguments": {}}}`, outcomeParseFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, outcome := interpretModelTurn(tc.raw)
			if outcome != tc.want {
				t.Fatalf("outcome = %d, want %d", outcome, tc.want)
			}
		})
	}
}
