// README: Assistant service; orchestrates extract -> classify -> plan for one turn.
package assistant

import (
	"context"
	"fmt"
	"log"

	"globetrotter/internal/ai"
)

// Service runs the conversational trip-planning pipeline. Stateless per
// invocation: the only transient state is the message list inside one tool
// loop.
type Service struct {
	llm     ai.Provider
	catalog Catalog
	flights FlightSearcher
	hotels  HotelEstimator
}

// NewService wires the pipeline's collaborators. All are required except
// that catalog/flights/hotels implementations may themselves run degraded.
func NewService(llm ai.Provider, catalog Catalog, flights FlightSearcher, hotels HotelEstimator) *Service {
	return &Service{llm: llm, catalog: catalog, flights: flights, hotels: hotels}
}

const defaultCurrency = "USD"

// HandleTurn processes one conversation turn and decides whether to greet,
// ask exactly one clarifying question, or produce a budget-conformant plan.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	if len(req.Messages) == 0 {
		return TurnResponse{}, ErrEmptyConversation
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	intent := s.Extract(ctx, req.Messages, req.DocumentText, req.ImageHint, currency)
	action := Classify(intent, lastUserText(req.Messages), req.DocumentText != "", recentAssistantWasShortQuestion(req.Messages))

	switch action {
	case ActionGreet:
		return TurnResponse{AssistantText: s.smallTalkReply(ctx, req.Messages)}, nil
	case ActionFreeform:
		return TurnResponse{AssistantText: s.freeformReply(ctx, req.Messages)}, nil
	case ActionClarifyBudget:
		return TurnResponse{AssistantText: fmt.Sprintf("%s sounds wonderful! What's your total budget for the trip?", intent.Destination)}, nil
	case ActionClarifyDestination:
		return TurnResponse{AssistantText: fmt.Sprintf("Great, I can work with %d %s. Where would you like to go?", intent.Budget.Amount, intent.Budget.Currency)}, nil
	case ActionClarifyBoth:
		return TurnResponse{AssistantText: "I'd love to help plan this trip! Where would you like to go, and what budget do you have in mind?"}, nil
	}

	// ActionPlan: bounded tool loop first, deterministic builder on failure.
	if result := s.planWithTools(ctx, intent); result != nil {
		resp := TurnResponse{AssistantText: result.FinalAnswer, Plan: result.Plan}
		if result.Breakdown != nil {
			reconciled := Reconcile(*result.Breakdown, intent.Budget)
			resp.BudgetBreakdown = &reconciled
			if resp.Plan != nil {
				resp.Plan.BudgetBreakdown = &reconciled
			}
		}
		if resp.AssistantText == "" {
			resp.AssistantText = fmt.Sprintf("Here's your %d-day plan for %s!", intent.Days, intent.Destination)
		}
		return resp, nil
	}
	return s.buildPlan(ctx, intent, req.DocumentText), nil
}

const smallTalkPrompt = `You are Globetrotter, a friendly travel planning assistant. Respond warmly to the user's small talk in one or two sentences, and gently invite them to share a destination and budget when it feels natural. No lists, no markdown.`

func (s *Service) smallTalkReply(ctx context.Context, messages []Message) string {
	reply, err := s.chat(ctx, smallTalkPrompt, messages)
	if err != nil {
		log.Printf("assistant: small talk model call failed: %v", err)
		return "Hi there! I can help you plan a trip — just tell me where you'd like to go and your budget."
	}
	return reply
}

const freeformPrompt = `You are Globetrotter, a helpful travel planning assistant. Answer the user's message directly and conversationally. Do not ask structured follow-up questions.`

func (s *Service) freeformReply(ctx context.Context, messages []Message) string {
	reply, err := s.chat(ctx, freeformPrompt, messages)
	if err != nil {
		log.Printf("assistant: freeform model call failed: %v", err)
		return "I'm best at planning trips — tell me about a destination you're curious about!"
	}
	return reply
}

func (s *Service) chat(ctx context.Context, system string, messages []Message) (string, error) {
	msgs := []ai.Message{{Role: ai.RoleSystem, Content: system}}
	for _, m := range messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		msgs = append(msgs, ai.Message{Role: m.Role, Content: m.Content})
	}
	return s.llm.Complete(ctx, msgs, 0.8, 400)
}
