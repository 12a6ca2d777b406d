package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthChecker reports on the web UI and the highlights backend it fronts.
type HealthChecker struct {
	backendURL string
	httpClient *http.Client
	sessions   func() int
	logger     *logrus.Logger
	startTime  time.Time
}

func NewHealthChecker(backendURL string, sessions func() int, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{
		backendURL: backendURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		sessions:   sessions,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status         string          `json:"status"`
	Services       []ServiceHealth `json:"services"`
	ActiveSessions int             `json:"active_sessions"`
	Uptime         string          `json:"uptime"`
}

// CheckBackend probes the backend root. Any HTTP response counts as
// reachable; the query endpoint is never touched.
func (h *HealthChecker) CheckBackend(ctx context.Context) ServiceHealth {
	start := time.Now()

	status := "reachable"
	errorMsg := ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL+"/", nil)
	if err == nil {
		var resp *http.Response
		resp, err = h.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 500 {
				status = "degraded"
				errorMsg = fmt.Sprintf("HTTP %d", resp.StatusCode)
			}
		}
	}
	if err != nil {
		status = "unreachable"
		errorMsg = err.Error()
		h.logger.WithError(err).Warn("Highlights backend health check failed")
	}

	return ServiceHealth{
		Name:         "highlights-api",
		Status:       status,
		ResponseTime: int(time.Since(start).Milliseconds()),
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll performs health checks on all services
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	services := []ServiceHealth{
		h.CheckBackend(ctx),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unreachable" {
			overallStatus = "unhealthy"
			break
		}
		if service.Status == "degraded" {
			overallStatus = "degraded"
		}
	}

	active := 0
	if h.sessions != nil {
		active = h.sessions()
	}

	return OverallHealth{
		Status:         overallStatus,
		Services:       services,
		ActiveSessions: active,
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
	}
}
