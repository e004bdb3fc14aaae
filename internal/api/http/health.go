package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Database  string    `json:"database"`
	Version   string    `json:"version,omitempty"`
}

type HealthHandler struct {
	version string
	db      *pgxpool.Pool
	started time.Time
}

func NewHealthHandler(version string, db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{
		version: version,
		db:      db,
		started: time.Now(),
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disconnected"
	status := "error"
	code := http.StatusServiceUnavailable

	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err == nil {
			dbStatus = "connected"
			status = "ok"
			code = http.StatusOK
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Seconds(),
		Database:  dbStatus,
		Version:   h.version,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/health", h.HealthCheck)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server Is Live!")
	})
}
