package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Ayash-Bera/highlights/internal/chat"
	"github.com/Ayash-Bera/highlights/internal/health"
	"github.com/Ayash-Bera/highlights/internal/session"
	"github.com/Ayash-Bera/highlights/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SessionCookie carries the browser session id.
const SessionCookie = "hl_session"

type ChatHandler struct {
	sessions   *session.Store
	checker    *health.HealthChecker
	sessionTTL time.Duration
	logger     *logrus.Logger
}

func NewChatHandler(
	sessions *session.Store,
	checker *health.HealthChecker,
	sessionTTL time.Duration,
	logger *logrus.Logger,
) *ChatHandler {
	return &ChatHandler{
		sessions:   sessions,
		checker:    checker,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

type pageData struct {
	Title string
	View  chat.View
}

// HandleIndex renders the question box for the caller's session.
func (h *ChatHandler) HandleIndex(c *gin.Context) {
	ctrl := h.controller(c)
	h.render(c, http.StatusOK, ctrl.View())
}

// HandleAsk submits the form's question and redirects back to the page.
func (h *ChatHandler) HandleAsk(c *gin.Context) {
	ctrl := h.controller(c)

	query := c.PostForm("q")

	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"query":      query,
	}).Info("Processing question")

	if ctrl.View().Loading {
		h.render(c, http.StatusConflict, ctrl.View())
		return
	}
	ctrl.SetQuery(query)

	// An in-flight question is never cancelled, not even when the browser goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	start := time.Now()
	err := ctrl.Submit(ctx)
	switch {
	case errors.Is(err, chat.ErrEmptyQuery):
		h.render(c, http.StatusBadRequest, ctrl.View())
		return
	case errors.Is(err, chat.ErrInFlight):
		h.render(c, http.StatusConflict, ctrl.View())
		return
	case err != nil:
		h.logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("Question failed")
	default:
		h.logger.WithFields(logrus.Fields{
			"request_id":    c.GetString("request_id"),
			"matches_count": len(ctrl.View().Matches),
			"response_time": time.Since(start).Milliseconds(),
		}).Info("Question answered")
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// HandleState returns the session's current view as JSON.
func (h *ChatHandler) HandleState(c *gin.Context) {
	ctrl := h.controller(c)
	c.JSON(http.StatusOK, ctrl.View())
}

// HandleHealth reports on the UI and the backend it fronts.
func (h *ChatHandler) HandleHealth(c *gin.Context) {
	report := h.checker.CheckAll(c.Request.Context())

	code := http.StatusOK
	if report.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

// Helper methods

func (h *ChatHandler) controller(c *gin.Context) *chat.Controller {
	id, err := c.Cookie(SessionCookie)
	if err != nil || !utils.ValidateSessionID(id) {
		id = utils.NewSessionID()
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", false, true)

	return h.sessions.GetOrCreate(id)
}

func (h *ChatHandler) render(c *gin.Context, code int, view chat.View) {
	c.HTML(code, "index.tmpl", pageData{
		Title: "Video Highlights Chat",
		View:  view,
	})
}
