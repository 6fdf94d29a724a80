package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/poihub/poi-manager/internal/entities"
	"github.com/poihub/poi-manager/internal/tasks"
)

// RunReader provides read-only access to recorded import runs.
// Implemented by imports.Repository.
type RunReader interface {
	GetByID(id uint) (*entities.ImportRun, error)
	Recent(limit int) ([]entities.ImportRun, error)
}

// ImportRequest is the body of POST /api/import.
type ImportRequest struct {
	Paths []string `json:"paths" binding:"required,min=1"`
}

type ImportController struct {
	dispatcher *tasks.Dispatcher
	runs       RunReader
}

func NewImportController(dispatcher *tasks.Dispatcher, runs RunReader) *ImportController {
	return &ImportController{
		dispatcher: dispatcher,
		runs:       runs,
	}
}

// Submit enqueues one import task per path and returns the task handles
// without waiting for ingestion to run.
func (controller *ImportController) Submit(c *gin.Context) {
	if controller.dispatcher == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is disabled"})
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "paths is required and must not be empty"})
		return
	}

	handles, err := controller.dispatcher.SubmitMany(req.Paths)
	if err != nil {
		// Some or all paths failed to enqueue; report what did get in.
		c.IndentedJSON(http.StatusInternalServerError, gin.H{
			"tasks": handles,
			"error": err.Error(),
		})
		return
	}

	c.IndentedJSON(http.StatusAccepted, gin.H{"tasks": handles, "count": len(handles)})
}

// TaskStatus reports the queue-level state of one submitted task.
func (controller *ImportController) TaskStatus(c *gin.Context) {
	if controller.dispatcher == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is disabled"})
		return
	}

	status, err := controller.dispatcher.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"task_id": c.Param("id"), "status": status})
}

// ListRuns returns the most recent import runs.
func (controller *ImportController) ListRuns(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := controller.runs.Recent(limit)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"imports": runs, "count": len(runs)})
}

// GetRun returns one recorded import run with its report.
func (controller *ImportController) GetRun(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid import run id"})
		return
	}

	run, err := controller.runs.GetByID(uint(id))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "import run not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, run)
}
