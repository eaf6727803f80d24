package ai

import (
	"context"
)

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Provider interface {
	// Complete sends a conversation to the model and returns the raw text reply.
	// Callers own any structured parsing of the output; Complete never interprets it.
	Complete(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error)

	// Caption describes an attached image in one or two sentences.
	// Best-effort: callers must tolerate failure and continue without the hint.
	Caption(ctx context.Context, image []byte, format string) (string, error)
}
