package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Complete flattens the conversation into a single prompt and returns the reply text.
// Gemini supports multi-turn chat sessions, but appending turns directly to the
// prompt keeps system instructions and tool-result envelopes bound to the request.
func (p *GeminiProvider) Complete(ctx context.Context, messages []Message, temperature float32, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("gemini: empty conversation")
	}

	model := p.client.GenerativeModel(geminiModel)
	model.SetTemperature(temperature)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	var prompt strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			prompt.WriteString(m.Content)
		case RoleAssistant:
			prompt.WriteString("Assistant: " + m.Content)
		default:
			prompt.WriteString("User: " + m.Content)
		}
		prompt.WriteString("\n\n")
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return collectText(resp)
}

// Caption asks the model to describe an attached image.
func (p *GeminiProvider) Caption(ctx context.Context, image []byte, format string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("gemini: empty image")
	}
	if format == "" {
		format = "jpeg"
	}

	model := p.client.GenerativeModel(geminiModel)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text("Describe this image in one or two short sentences, focusing on any travel destination, landmark, or document content it shows."),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: caption: %w", err)
	}
	return collectText(resp)
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.Join(parts, "\n"), nil
}
