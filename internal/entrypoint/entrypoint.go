package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poihub/poi-manager/internal/config"
	"github.com/poihub/poi-manager/internal/database"
	"github.com/poihub/poi-manager/internal/database/imports"
	"github.com/poihub/poi-manager/internal/database/pois"
	http_controllers "github.com/poihub/poi-manager/internal/http"
	"github.com/poihub/poi-manager/internal/ingest"
	"github.com/poihub/poi-manager/internal/scheduler"
	"github.com/poihub/poi-manager/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. Running import tasks get the
	// shutdown timeout to reach their report before the queue stops.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work (scheduler, task queue) before the listener.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting PoI Manager v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	poiRepo := pois.NewRepository(db.DB)
	runRepo := imports.NewRepository(db.DB)
	ingestor := ingest.NewIngestor(poiRepo)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var dispatcher *tasks.Dispatcher
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxAttempts:       cfg.Tasks.MaxAttempts,
			RetryBackoff:      cfg.Tasks.RetryBackoff,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewImportFileQueue(ingestor, runRepo, taskCfg),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		dispatcher = tasks.NewDispatcher(taskClient)
	} else {
		log.Printf("Task queue disabled; POST /api/import will be unavailable")
	}

	// Initialize the drop-directory scan if configured
	var scanScheduler *scheduler.ScanScheduler
	if cfg.Scan.Enabled {
		if dispatcher == nil {
			log.Printf("WARNING: drop-directory scan requires the task queue; scan disabled")
		} else {
			scanScheduler = scheduler.NewScanScheduler(dispatcher, cfg.Scan.Dir, cfg.Scan.Schedule)
			if err := scanScheduler.Start(); err != nil {
				log.Fatalf("Failed to start drop-directory scan: %v", err)
			}
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:   db,
		Reader:     poiRepo,
		Dispatcher: dispatcher,
		Runs:       runRepo,
		Version:    version,
	}
	// Typed nil would make the health check ping a missing queue.
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}
	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if scanScheduler != nil {
			scanScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
