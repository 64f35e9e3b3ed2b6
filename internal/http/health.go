package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotes/internal/entities"
)

type HealthResponse struct {
	Status  string                  `json:"status"`
	Time    string                  `json:"time"`
	Version string                  `json:"version,omitempty"`
	Checks  map[string]string       `json:"checks"`
	Catalog *entities.CatalogCounts `json:"catalog,omitempty"`
}

type HealthController struct {
	db      Pinger
	counter CatalogCounter
	version string
}

func NewHealthController(db Pinger, counter CatalogCounter, version string) *HealthController {
	return &HealthController{
		db:      db,
		counter: counter,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			requestLogger(c).Error("health check failed", "error", err)
			checks["database"] = "error"
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
		status = "unhealthy"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	if status == "healthy" && h.counter != nil {
		if counts, err := h.counter.Counts(ctx); err == nil {
			health.Catalog = &counts
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
