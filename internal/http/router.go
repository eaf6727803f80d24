// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"globetrotter/internal/http/handlers"
	"globetrotter/internal/http/middleware"
)

func NewRouter(assistantHandler *handlers.AssistantHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.POST("/api/assistant/chat", assistantHandler.Chat)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
