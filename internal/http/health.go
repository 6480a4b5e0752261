package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/storage"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports database and upload storage reachability.
// Components left nil are reported as "not configured".
type HealthController struct {
	db      Pinger
	store   storage.Client
	version string
}

func NewHealthController(db Pinger, store storage.Client, version string) *HealthController {
	return &HealthController{db: db, store: store, version: version}
}

// healthProbeKey is never written; only reachability of the store matters.
const healthProbeKey = ".health"

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string, 2)
	healthy := true

	record := func(name string, configured bool, probe func() error) {
		if !configured {
			checks[name] = "not configured"
			return
		}
		if err := probe(); err != nil {
			checks[name] = "error: " + err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	record("database", h.db != nil, func() error { return h.db.Ping() })
	record("storage", h.store != nil, func() error {
		_, err := h.store.Exists(ctx, healthProbeKey)
		return err
	})

	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}
	statusCode := http.StatusOK
	if !healthy {
		health.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}
