package handler

import (
	"context"
	"net/http"
	"time"

	"gamelibrary/backend/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	statusHealthy   = "Healthy"
	statusUnhealthy = "Unhealthy"
)

type HealthEntry struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type HealthReport struct {
	Status  string        `json:"status"`
	Details []HealthEntry `json:"details"`
}

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, timeout: 3 * time.Second}
}

// CheckHealth answers 200 with a Healthy report when the database responds
// to a ping, 503 otherwise.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	entry := HealthEntry{Name: "database", Status: statusHealthy, Description: "database reachable"}
	if err := database.Ping(ctx, h.db); err != nil {
		entry.Status = statusUnhealthy
		entry.Description = err.Error()
	}

	report := HealthReport{Status: entry.Status, Details: []HealthEntry{entry}}
	code := http.StatusOK
	if report.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}
