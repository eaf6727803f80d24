// README: Intent classifier: decides greet / clarify / freeform / plan.
package assistant

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	greetingPattern = regexp.MustCompile(`(?i)^(hi|hiya|hello|hey|howdy|yo|sup|greetings|good\s+(morning|afternoon|evening)|what'?s\s+up|how\s+are\s+you)\b`)

	travelHintPattern = regexp.MustCompile(`(?i)\b(trip|travel|visit|vacation|holiday|itinerary|flight|fly|hotel|stay|budget|tour|destination|city|plan|weekend|getaway)\b`)

	digitOrCurrencyPattern = regexp.MustCompile(`[0-9$£€]`)
)

// veryShortTextRunes: replies at or under this length are treated as small
// talk rather than data.
const veryShortTextRunes = 3

// Classify picks the next action from the extracted intent and simple
// lexical signals. Rules apply in order; the small-talk continuation rule
// stops the assistant from re-asking the same clarifying question when the
// user keeps chatting instead of answering.
func Classify(intent TravelIntent, lastUserText string, hasDocument bool, recentAssistantWasShortQuestion bool) Action {
	hasDestination := intent.Destination != ""
	hasBudget := !intent.Budget.IsZero()
	text := strings.TrimSpace(lastUserText)

	if hasDestination && (hasBudget || hasDocument) {
		return ActionPlan
	}

	if !hasDestination && !hasBudget {
		greeting := greetingPattern.MatchString(text)
		travelHint := travelHintPattern.MatchString(text)

		if !greeting && !travelHint && !hasDocument {
			return ActionFreeform
		}
		if greeting || utf8.RuneCountInString(text) <= veryShortTextRunes {
			return ActionGreet
		}
		if recentAssistantWasShortQuestion && !digitOrCurrencyPattern.MatchString(text) {
			return ActionGreet
		}
	}

	switch {
	case hasDestination && !hasBudget:
		return ActionClarifyBudget
	case hasBudget && !hasDestination:
		return ActionClarifyDestination
	default:
		return ActionClarifyBoth
	}
}

// recentAssistantWasShortQuestion reports whether any of the last three
// assistant turns was a short question, which marks the conversation as an
// open clarification exchange.
func recentAssistantWasShortQuestion(messages []Message) bool {
	seen := 0
	for i := len(messages) - 1; i >= 0 && seen < 3; i-- {
		if messages[i].Role != RoleAssistant {
			continue
		}
		seen++
		content := strings.TrimSpace(messages[i].Content)
		if strings.HasSuffix(content, "?") && utf8.RuneCountInString(content) <= 80 {
			return true
		}
	}
	return false
}
