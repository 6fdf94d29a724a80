package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poihub/poi-manager/internal/database"
)

// QueueHealth reports whether the task queue's backing store is
// reachable. Implemented by tasks.Client; nil when the queue is
// disabled.
type QueueHealth interface {
	Ping() error
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	queue   QueueHealth
	version string
	started time.Time
}

func NewHealthController(db *database.Database, queue QueueHealth, version string) *HealthController {
	return &HealthController{
		db:      db,
		queue:   queue,
		version: version,
		started: time.Now(),
	}
}

// Status reports the service health: main database connectivity and,
// when the queue is enabled, the tasks database too. A disabled queue
// is not unhealthy; imports are just unavailable.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db == nil {
		checks["database"] = "not configured"
	} else if err := h.pingDatabase(); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "ok"
	}

	if h.queue == nil {
		checks["task_queue"] = "disabled"
	} else if err := h.queue.Ping(); err != nil {
		checks["task_queue"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["task_queue"] = "ok"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) pingDatabase() error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
