package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger is a backing store the health check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	pingers map[string]Pinger
}

// getHealth godoc
// @Summary Show the status of server.
// @Description Pings every configured store. Any failure turns the response into a 503.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *healthHandler) getHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.pingers))
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			middleware.GetLoggerFromContext(c).Warn("Health check failed", slog.String("store", name), slog.String("error", err.Error()))
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}

// registerHealthRoutes registers the unauthenticated '/health' route.
func registerHealthRoutes(r *gin.Engine, pingers map[string]Pinger) {
	h := &healthHandler{pingers: pingers}
	r.GET("/health", h.getHealth)
}
