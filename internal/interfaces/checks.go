package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/poihub/poi-manager/internal/database/imports"
	"github.com/poihub/poi-manager/internal/database/pois"
	"github.com/poihub/poi-manager/internal/http"
	"github.com/poihub/poi-manager/internal/ingest"
	"github.com/poihub/poi-manager/internal/scheduler"
	"github.com/poihub/poi-manager/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Store implementations
var _ ingest.Store = (*pois.Repository)(nil)

// PoIReader implementations
var _ http.PoIReader = (*pois.Repository)(nil)

// RunReader/RunRecorder implementations
var _ http.RunReader = (*imports.Repository)(nil)
var _ tasks.RunRecorder = (*imports.Repository)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

// FileIngestor implementations
var _ tasks.FileIngestor = (*ingest.Ingestor)(nil)

// QueueHealth implementations
var _ http.QueueHealth = (*tasks.Client)(nil)

// Submitter implementations
var _ scheduler.Submitter = (*tasks.Dispatcher)(nil)
