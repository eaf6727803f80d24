// README: Entity extraction: one structured model pass plus deterministic fallbacks.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"globetrotter/internal/ai"
	"globetrotter/internal/types"
)

const extractionPrompt = `You are the information extraction engine of a travel planning assistant.
Read the conversation below and return ONLY a single JSON object with these fields:
{
  "destination": "city name or null",
  "origin": "departure city or null",
  "budget": number or null,
  "currency": "ISO 4217 code or null",
  "start_date": "YYYY-MM-DD or null",
  "end_date": "YYYY-MM-DD or null",
  "interests": ["short keywords"]
}
Use null for anything the user has not stated. Do not guess. No prose, no markdown.`

// extractedFields is the model's structured-extraction output. Pointer fields
// keep "not mentioned" distinct from zero values.
type extractedFields struct {
	Destination *string  `json:"destination"`
	Origin      *string  `json:"origin"`
	Budget      *float64 `json:"budget"`
	Currency    *string  `json:"currency"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Interests   []string `json:"interests"`
}

// Extract turns the conversation into a TravelIntent. It never fails: a
// model error or malformed output simply leaves fields to the deterministic
// fallbacks, and anything still unknown stays at its zero value.
func (s *Service) Extract(ctx context.Context, messages []Message, documentText, imageHint, defaultCurrency string) TravelIntent {
	intent := TravelIntent{
		Budget: types.Money{Currency: defaultCurrency},
		Days:   defaultTripDays,
	}

	userText := joinUserText(messages)
	scanText := userText
	if documentText != "" {
		scanText += "\n" + documentText
	}

	fields, ok := s.modelExtract(ctx, messages, documentText, imageHint)
	if ok {
		applyModelFields(&intent, fields, defaultCurrency)
	}

	if intent.Destination == "" {
		intent.Destination = s.fallbackDestination(ctx, scanText, lastUserText(messages))
	}
	if intent.Budget.Amount == 0 {
		if amount, currency, found := fallbackBudget(scanText, defaultCurrency); found {
			intent.Budget = types.Money{Amount: amount, Currency: currency}
		}
	}

	intent.Days = tripDays(intent.StartDate, intent.EndDate)
	return intent
}

func (s *Service) modelExtract(ctx context.Context, messages []Message, documentText, imageHint string) (extractedFields, bool) {
	var content strings.Builder
	for _, m := range messages {
		if m.Role != RoleUser || strings.TrimSpace(m.Content) == "" {
			continue
		}
		content.WriteString(m.Content)
		content.WriteString("\n")
	}
	if documentText != "" {
		content.WriteString("\nAttached document:\n" + documentText + "\n")
	}
	if imageHint != "" {
		content.WriteString("\nAttached image description: " + imageHint + "\n")
	}

	raw, err := s.llm.Complete(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: extractionPrompt},
		{Role: ai.RoleUser, Content: content.String()},
	}, 0.1, 512)
	if err != nil {
		log.Printf("assistant: extraction model call failed: %v", err)
		return extractedFields{}, false
	}

	var fields extractedFields
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &fields); err != nil {
		log.Printf("assistant: extraction output not parseable: %v", err)
		return extractedFields{}, false
	}
	return fields, true
}

func applyModelFields(intent *TravelIntent, fields extractedFields, defaultCurrency string) {
	if fields.Destination != nil && strings.TrimSpace(*fields.Destination) != "" {
		intent.Destination = strings.TrimSpace(*fields.Destination)
	}
	if fields.Origin != nil && strings.TrimSpace(*fields.Origin) != "" {
		intent.OriginCity = strings.TrimSpace(*fields.Origin)
	}
	if fields.Budget != nil && *fields.Budget > 0 {
		intent.Budget.Amount = int64(math.Round(*fields.Budget))
	}
	if fields.Currency != nil && strings.TrimSpace(*fields.Currency) != "" {
		intent.Budget.Currency = strings.ToUpper(strings.TrimSpace(*fields.Currency))
	} else {
		intent.Budget.Currency = defaultCurrency
	}
	if fields.StartDate != nil {
		if t, err := time.Parse("2006-01-02", *fields.StartDate); err == nil {
			intent.StartDate = t
		}
	}
	if fields.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *fields.EndDate); err == nil {
			intent.EndDate = t
		}
	}
	for _, it := range fields.Interests {
		if it = strings.TrimSpace(it); it != "" {
			intent.Interests = append(intent.Interests, it)
		}
	}
}

// Ordered destination patterns. Spans run to the end of the text so that the
// trailing-span shrink can reach the most recent mention.
var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bvisit(?:ing)?\s+(.+)`),
	regexp.MustCompile(`(?i)\bto\s+(.+)`),
	regexp.MustCompile(`(?i)\bin\s+(.+)`),
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"i": true, "me": true, "my": true, "we": true, "our": true, "you": true, "your": true,
	"it": true, "its": true, "this": true, "that": true, "there": true,
	"to": true, "in": true, "on": true, "at": true, "of": true, "for": true,
	"with": true, "from": true, "by": true, "and": true, "or": true,
	"is": true, "are": true, "was": true, "be": true,
	"go": true, "going": true, "visit": true, "usd": true, "gbp": true, "eur": true,
}

// fallbackDestination resolves a destination with regex spans against the
// catalog. For each pattern the last match wins (most recent mention), then
// the captured span is tried whole, with a leading stop-word dropped, and as
// progressively shorter trailing spans.
func (s *Service) fallbackDestination(ctx context.Context, scanText, lastText string) string {
	for _, re := range destinationPatterns {
		matches := re.FindAllStringSubmatch(scanText, -1)
		if len(matches) == 0 {
			continue
		}
		span := matches[len(matches)-1][1]
		for _, candidate := range spanCandidates(span) {
			if city, ok := s.catalog.ResolveCity(ctx, candidate); ok {
				return city.Name
			}
		}
	}

	if city, ok := s.catalog.FindCityInText(ctx, scanText); ok {
		return city.Name
	}
	return lastCapitalizedToken(lastText)
}

func spanCandidates(span string) []string {
	clean := strings.TrimSpace(strings.Trim(strings.TrimSpace(span), ".,!?;:"))
	if clean == "" {
		return nil
	}

	var out []string
	seen := map[string]bool{}
	add := func(c string) {
		c = strings.Trim(strings.TrimSpace(c), ".,!?;:")
		if c != "" && !seen[strings.ToLower(c)] {
			seen[strings.ToLower(c)] = true
			out = append(out, c)
		}
	}

	add(clean)
	words := strings.Fields(clean)
	if len(words) > 1 && stopWords[strings.ToLower(strings.Trim(words[0], ".,!?;:"))] {
		add(strings.Join(words[1:], " "))
	}
	if len(words) >= 2 {
		add(strings.Join(words[len(words)-2:], " "))
	}
	if len(words) >= 1 {
		add(words[len(words)-1])
	}
	return out
}

func lastCapitalizedToken(text string) string {
	words := strings.Fields(text)
	for i := len(words) - 1; i >= 0; i-- {
		w := strings.Trim(words[i], ".,!?;:\"'()")
		if w == "" || stopWords[strings.ToLower(w)] {
			continue
		}
		r := []rune(w)[0]
		if unicode.IsUpper(r) {
			return titleCase(w)
		}
	}
	return ""
}

func titleCase(w string) string {
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// moneyPattern matches an optional currency symbol, an amount, and an
// optional currency word. A bare number with neither is ignored so "3 days"
// never becomes a budget.
var moneyPattern = regexp.MustCompile(`(?i)([$£€])?\s?(\d+(?:\.\d+)?)(?:\s*(usd|dollars?|bucks|gbp|pounds?|eur|euros?))?`)

func fallbackBudget(text, defaultCurrency string) (int64, string, bool) {
	matches := moneyPattern.FindAllStringSubmatch(text, -1)
	var amount float64
	currency := ""
	found := false
	for _, m := range matches {
		symbol, number, word := m[1], m[2], m[3]
		if symbol == "" && word == "" {
			continue
		}
		if _, err := fmt.Sscanf(number, "%f", &amount); err != nil {
			continue
		}
		currency = currencyFor(symbol, word, defaultCurrency)
		found = true
	}
	if !found {
		return 0, "", false
	}
	return int64(math.Round(amount)), currency, true
}

func currencyFor(symbol, word, def string) string {
	switch symbol {
	case "$":
		return "USD"
	case "£":
		return "GBP"
	case "€":
		return "EUR"
	}
	switch strings.ToLower(word) {
	case "usd", "dollar", "dollars", "bucks":
		return "USD"
	case "gbp", "pound", "pounds":
		return "GBP"
	case "eur", "euro", "euros":
		return "EUR"
	}
	return def
}

func tripDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return defaultTripDays
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func joinUserText(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func lastUserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
