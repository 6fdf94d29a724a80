package http

import (
	"github.com/gin-gonic/gin"

	"github.com/poihub/poi-manager/internal/database"
	"github.com/poihub/poi-manager/internal/tasks"
)

// RouterConfig carries every dependency the router needs, keeping the
// constructor signature flat and the controllers testable.
type RouterConfig struct {
	Database   *database.Database
	Reader     PoIReader
	Dispatcher *tasks.Dispatcher
	Runs       RunReader
	TaskQueue  QueueHealth
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// The browse/search surface is read-only; the only mutation offered is
// submitting files to the import queue.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.TaskQueue, cfg.Version)
	pois := NewPoIController(cfg.Reader)
	imports := NewImportController(cfg.Dispatcher, cfg.Runs)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		api.GET("/pois", pois.List)
		api.GET("/pois/:id", pois.Lookup)

		api.POST("/import", imports.Submit)
		api.GET("/imports", imports.ListRuns)
		api.GET("/imports/:id", imports.GetRun)
		api.GET("/tasks/:id", imports.TaskStatus)
	}

	return router
}
