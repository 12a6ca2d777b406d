package api

import (
	"net/http"

	"github.com/Ayash-Bera/highlights/internal/api/handlers"
	"github.com/Ayash-Bera/highlights/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the browser UI routes.
func NewRouter(h *handlers.ChatHandler, limiter *middleware.RateLimiter, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())

	r.SetHTMLTemplate(handlers.Templates())
	r.StaticFS("/static", http.FS(handlers.Static()))

	r.GET("/", h.HandleIndex)
	r.POST("/ask", limiter.RateLimit(), h.HandleAsk)
	r.GET("/api/state", h.HandleState)
	r.GET("/healthz", h.HandleHealth)

	return r
}
