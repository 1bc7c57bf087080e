package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 2 * time.Second

// Pinger checks availability of external dependency
type Pinger func(ctx context.Context) error

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHTTPHandler is http handler for liveness and readiness checks
type HealthHTTPHandler struct {
	pingers map[string]Pinger
}

// NewHealthHTTPHandler builds HealthHTTPHandler checking pingers on readiness
func NewHealthHTTPHandler(pingers map[string]Pinger) *HealthHTTPHandler {
	return &HealthHTTPHandler{pingers: pingers}
}

// Live reports that process is up
// @Summary     Liveness check
// @Tags        health
// @Produce     json
// @Success     200 {object} healthStatus
// @Router      /health/live [get]
func (h *HealthHTTPHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, &healthStatus{Status: "ok"})
}

// Ready reports whether all dependencies respond
// @Summary     Readiness check
// @Tags        health
// @Produce     json
// @Success     200 {object} healthStatus
// @Failure     503 {object} healthStatus
// @Router      /health/ready [get]
func (h *HealthHTTPHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	res := &healthStatus{Status: "ok", Checks: make(map[string]string, len(h.pingers))}
	code := http.StatusOK

	for name, ping := range h.pingers {
		if err := ping(ctx); err != nil {
			res.Checks[name] = err.Error()
			res.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		res.Checks[name] = "ok"
	}

	return c.JSON(code, res)
}
