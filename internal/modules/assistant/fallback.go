// README: Deterministic plan builder: baseline costs, grounded narrative, permissive plan parse.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"sync"

	"globetrotter/internal/ai"
	"globetrotter/internal/modules/catalog"
	"globetrotter/internal/modules/flights"
	"globetrotter/internal/modules/hotels"
)

// flightBudgetShare caps the flight search price at this fraction of the
// total budget when the origin is known.
const flightBudgetShare = 0.6

const narrativePromptHeader = `You are Globetrotter, a friendly travel planning assistant.
Write a short, warm message for the user, then append the plan as a fenced JSON block:

` + "```json" + `
{"itinerary": [{"day": 1, "items": [{"name": "...", "category": "...", "startTime": "09:00", "duration_hours": 2, "estimated_cost": 20, "notes": "..."}]}], "budget_breakdown": {"flights": 0, "hotels": 0, "activities": 0, "total": 0, "currency": "USD"}}
` + "```" + `

Ground every cost in the baseline numbers provided. Only schedule activities from the provided catalog list. Keep the breakdown total within the stated budget.`

// buildPlan is the fallback path used when the tool loop fails to converge.
// It fetches baseline costs concurrently, grounds a single narrative
// request, and parses the embedded plan permissively. Planning degrades to a
// cost estimate rather than erroring: every sub-step tolerates failure.
func (s *Service) buildPlan(ctx context.Context, intent TravelIntent, priorItinerary string) TurnResponse {
	currency := intent.Budget.Currency
	nights := intent.Days - 1
	if nights < 1 {
		nights = 1
	}

	var (
		wg         sync.WaitGroup
		flight     *flights.Option
		hotel      hotels.Estimate
		activities []catalog.Activity
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		q := flights.Query{
			Origin:      intent.OriginCity,
			Destination: intent.Destination,
			Currency:    currency,
		}
		if !intent.StartDate.IsZero() {
			q.DateFrom = intent.StartDate.Format("2006-01-02")
		}
		if !intent.EndDate.IsZero() {
			q.DateTo = intent.EndDate.Format("2006-01-02")
		}
		if intent.OriginCity != "" && !intent.Budget.IsZero() {
			q.MaxPrice = float64(intent.Budget.Scaled(flightBudgetShare).Amount)
		}
		options, err := s.flights.Search(ctx, q)
		if err != nil {
			log.Printf("assistant: baseline flight fetch failed: %v", err)
			return
		}
		if len(options) > 0 {
			flight = &options[0]
		}
	}()
	go func() {
		defer wg.Done()
		est, err := s.hotels.Estimate(ctx, intent.Destination, nights, currency)
		if err != nil {
			log.Printf("assistant: baseline hotel fetch failed, using heuristic: %v", err)
			est = hotels.HeuristicEstimate(nights, currency)
		}
		hotel = est
	}()
	go func() {
		defer wg.Done()
		list, err := s.catalog.ListActivities(ctx, intent.Destination, maxActivities)
		if err != nil {
			log.Printf("assistant: baseline activity fetch failed: %v", err)
			return
		}
		activities = list
	}()
	wg.Wait()

	options := &BaselineOptions{Flight: flight, Hotel: &hotel, Activities: activities}

	narrative, plan := s.narrate(ctx, intent, flight, hotel, activities, priorItinerary)

	resp := TurnResponse{AssistantText: narrative, Options: options}
	if plan != nil && plan.BudgetBreakdown != nil {
		reconciled := Reconcile(*plan.BudgetBreakdown, intent.Budget)
		plan.BudgetBreakdown = &reconciled
		resp.Plan = plan
		resp.BudgetBreakdown = &reconciled
		return resp
	}
	resp.Plan = plan
	breakdown := baselineBreakdown(flight, hotel, intent)
	resp.BudgetBreakdown = &breakdown
	return resp
}

func (s *Service) narrate(ctx context.Context, intent TravelIntent, flight *flights.Option, hotel hotels.Estimate, activities []catalog.Activity, priorItinerary string) (string, *Plan) {
	raw, err := s.llm.Complete(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: narrativePromptHeader},
		{Role: ai.RoleUser, Content: narrativeContext(intent, flight, hotel, activities, priorItinerary)},
	}, 0.7, 1800)
	if err != nil {
		log.Printf("assistant: narrative model call failed: %v", err)
		return baselineNarrative(intent, flight, hotel), nil
	}

	narrative, plan := splitNarrative(raw)
	if narrative == "" {
		narrative = baselineNarrative(intent, flight, hotel)
	}
	return narrative, plan
}

func narrativeContext(intent TravelIntent, flight *flights.Option, hotel hotels.Estimate, activities []catalog.Activity, priorItinerary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\nDays: %d\n", intent.Destination, intent.Days)
	if !intent.Budget.IsZero() {
		fmt.Fprintf(&b, "Budget: %d %s\n", intent.Budget.Amount, intent.Budget.Currency)
	}
	if len(intent.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(intent.Interests, ", "))
	}
	if flight != nil {
		fmt.Fprintf(&b, "Cheapest flight found: %.0f %s (%s)\n", flight.Price, flight.Currency, flight.Airline)
	} else {
		b.WriteString("No flight baseline available.\n")
	}
	fmt.Fprintf(&b, "Hotel estimate: %.0f %s total (%s)\n", hotel.TotalEstimate, hotel.Currency, hotel.Basis)
	if len(activities) > 0 {
		b.WriteString("Catalog activities:\n")
		for _, a := range activities {
			fmt.Fprintf(&b, "- %s (%s, %s, %.1fh)\n", a.Name, a.Category, a.PriceRange, a.DurationHours)
		}
	}
	if priorItinerary != "" {
		b.WriteString("\nThe user already has a draft itinerary. Refine it rather than inventing a new one:\n")
		b.WriteString(priorItinerary)
		b.WriteString("\n")
	}
	return b.String()
}

var fencedPlanPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// splitNarrative separates the friendly message from the embedded plan
// block. Accepts a fenced JSON block or, failing that, the widest brace
// span that mentions an itinerary. Returns a nil plan when nothing parses.
func splitNarrative(raw string) (string, *Plan) {
	raw = strings.TrimSpace(raw)

	if m := fencedPlanPattern.FindStringSubmatchIndex(raw); m != nil {
		block := raw[m[2]:m[3]]
		narrative := strings.TrimSpace(raw[:m[0]])
		if plan := parsePlanBlock(block); plan != nil {
			return narrative, plan
		}
		return narrative, nil
	}

	open := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if open >= 0 && end > open {
		block := raw[open : end+1]
		if strings.Contains(block, "itinerary") {
			if plan := parsePlanBlock(block); plan != nil {
				return strings.TrimSpace(raw[:open]), plan
			}
		}
	}
	return raw, nil
}

func parsePlanBlock(block string) *Plan {
	var plan Plan
	if err := json.Unmarshal([]byte(block), &plan); err != nil {
		log.Printf("assistant: embedded plan not parseable: %v", err)
		return nil
	}
	if len(plan.Itinerary) == 0 {
		return nil
	}
	return &plan
}

func baselineBreakdown(flight *flights.Option, hotel hotels.Estimate, intent TravelIntent) BudgetBreakdown {
	b := BudgetBreakdown{Currency: intent.Budget.Currency}
	if flight != nil {
		b.Flights = int64(math.Round(flight.Price))
	}
	b.Hotels = int64(math.Round(hotel.TotalEstimate))
	b.Total = b.Flights + b.Hotels + b.Activities
	return Reconcile(b, intent.Budget)
}

func baselineNarrative(intent TravelIntent, flight *flights.Option, hotel hotels.Estimate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I found for %d days in %s.", intent.Days, intent.Destination)
	if flight != nil {
		fmt.Fprintf(&b, " Flights start around %.0f %s.", flight.Price, flight.Currency)
	} else {
		b.WriteString(" I couldn't find flight prices right now.")
	}
	fmt.Fprintf(&b, " Expect roughly %.0f %s for lodging.", hotel.TotalEstimate, hotel.Currency)
	if !intent.Budget.IsZero() {
		fmt.Fprintf(&b, " I'll keep the plan within your %d %s budget.", intent.Budget.Amount, intent.Budget.Currency)
	}
	return b.String()
}
