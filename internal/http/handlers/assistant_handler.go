// README: Assistant chat handler (document/image preprocessing + turn orchestration).
package handlers

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"globetrotter/internal/ai"
	"globetrotter/internal/docs"
	"globetrotter/internal/modules/assistant"
)

type AssistantHandler struct {
	svc         *assistant.Service
	llm         ai.Provider
	turnTimeout time.Duration
}

func NewAssistantHandler(svc *assistant.Service, llm ai.Provider, turnTimeout time.Duration) *AssistantHandler {
	if turnTimeout <= 0 {
		turnTimeout = 60 * time.Second
	}
	return &AssistantHandler{svc: svc, llm: llm, turnTimeout: turnTimeout}
}

type chatMessage struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	ImageRef string `json:"imageRef,omitempty"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Currency    string        `json:"currency"`
	Document    string        `json:"document,omitempty"`    // base64-encoded attachment
	Image       string        `json:"image,omitempty"`       // base64-encoded image
	ImageFormat string        `json:"imageFormat,omitempty"` // e.g. "jpeg", "png"
}

// Chat handles POST /api/assistant/chat.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		writeError(c, http.StatusBadRequest, "at least one message is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.turnTimeout)
	defer cancel()

	turn := assistant.TurnRequest{
		Currency:     strings.ToUpper(strings.TrimSpace(req.Currency)),
		DocumentText: h.documentText(req.Document),
		ImageHint:    h.imageHint(ctx, req.Image, req.ImageFormat),
	}
	for _, m := range req.Messages {
		turn.Messages = append(turn.Messages, assistant.Message{
			Role:     m.Role,
			Content:  m.Content,
			ImageRef: m.ImageRef,
		})
	}

	resp, err := h.svc.HandleTurn(ctx, turn)
	if err != nil {
		writeAssistantError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// documentText decodes and extracts an attached document. Bad encoding or
// binary content degrades to "no document this turn".
func (h *AssistantHandler) documentText(encoded string) string {
	if encoded == "" {
		return ""
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Printf("handlers: document decode failed: %v", err)
		return ""
	}
	return docs.ExtractText(data)
}

// imageHint captions an attached image. Best-effort only.
func (h *AssistantHandler) imageHint(ctx context.Context, encoded, format string) string {
	if encoded == "" {
		return ""
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Printf("handlers: image decode failed: %v", err)
		return ""
	}
	hint, err := h.llm.Caption(ctx, data, format)
	if err != nil {
		log.Printf("handlers: image caption failed: %v", err)
		return ""
	}
	return hint
}
