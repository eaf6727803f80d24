// README: CLI demo; runs one assistant turn against the real Gemini provider
// with in-memory stand-ins for the catalog and cost providers.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"globetrotter/internal/ai"
	"globetrotter/internal/modules/assistant"
	"globetrotter/internal/modules/catalog"
	"globetrotter/internal/modules/flights"
	"globetrotter/internal/modules/hotels"
)

type memCatalog struct {
	cities []catalog.City
}

func (m *memCatalog) ResolveCity(_ context.Context, query string) (catalog.City, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, c := range m.cities {
		if strings.ToLower(c.Name) == q {
			return c, true
		}
	}
	return catalog.City{}, false
}

func (m *memCatalog) FindCityInText(_ context.Context, text string) (catalog.City, bool) {
	lower := strings.ToLower(text)
	for _, c := range m.cities {
		if strings.Contains(lower, strings.ToLower(c.Name)) {
			return c, true
		}
	}
	return catalog.City{}, false
}

func (m *memCatalog) ListActivities(_ context.Context, cityName string, limit int) ([]catalog.Activity, error) {
	acts := []catalog.Activity{
		{Name: "Old town walking tour", Category: "sightseeing", PriceRange: "$", DurationHours: 2},
		{Name: "Food market visit", Category: "food", PriceRange: "$$", DurationHours: 1.5},
		{Name: "City museum", Category: "culture", PriceRange: "$$", DurationHours: 3},
	}
	if limit < len(acts) {
		acts = acts[:limit]
	}
	return acts, nil
}

type noFlights struct{}

func (noFlights) Search(context.Context, flights.Query) ([]flights.Option, error) {
	return nil, errors.New("demo: flight provider not configured")
}

type noHotels struct{}

func (noHotels) Estimate(context.Context, string, int, string) (hotels.Estimate, error) {
	return hotels.Estimate{}, errors.New("demo: hotel provider not configured")
}

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	cat := &memCatalog{cities: []catalog.City{
		{Name: "Paris", Country: "France"},
		{Name: "Rome", Country: "Italy"},
		{Name: "Tokyo", Country: "Japan"},
	}}

	svc := assistant.NewService(provider, cat, noFlights{}, noHotels{})

	userMessage := "I'd love to visit Paris for 3 days, my budget is $400"
	if len(os.Args) > 1 {
		userMessage = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("User: %s\n\n", userMessage)

	resp, err := svc.HandleTurn(ctx, assistant.TurnRequest{
		Messages: []assistant.Message{{Role: assistant.RoleUser, Content: userMessage}},
		Currency: "USD",
	})
	if err != nil {
		log.Fatalf("Turn failed: %v", err)
	}

	fmt.Printf("Assistant: %s\n", resp.AssistantText)
	if resp.BudgetBreakdown != nil {
		raw, _ := json.MarshalIndent(resp.BudgetBreakdown, "", "  ")
		fmt.Printf("\nBudget breakdown:\n%s\n", raw)
	}
	if resp.Plan != nil {
		raw, _ := json.MarshalIndent(resp.Plan, "", "  ")
		fmt.Printf("\nPlan:\n%s\n", raw)
	}
}
