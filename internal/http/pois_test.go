package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poihub/poi-manager/internal/entities"
)

// stubReader serves canned records and captures the arguments it was
// called with.
type stubReader struct {
	records      []entities.PointOfInterest
	lastCategory string
	lastQuery    string
}

func (s *stubReader) Lookup(id string) (*entities.PointOfInterest, error) {
	for i := range s.records {
		if s.records[i].ExternalID == id {
			return &s.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReader) List(category string) ([]entities.PointOfInterest, error) {
	s.lastCategory = category
	if category == "" {
		return s.records, nil
	}
	var out []entities.PointOfInterest
	for _, r := range s.records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReader) Search(query string) ([]entities.PointOfInterest, error) {
	s.lastQuery = query
	return s.records, nil
}

func poiRouter(reader PoIReader) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := NewPoIController(reader)
	router.GET("/api/pois", controller.List)
	router.GET("/api/pois/:id", controller.Lookup)
	return router
}

func TestPoIController_List(t *testing.T) {
	reader := &stubReader{records: []entities.PointOfInterest{
		{ExternalID: "1", Name: "Park A", Category: "park"},
		{ExternalID: "2", Name: "Museum B", Category: "museum"},
	}}
	router := poiRouter(reader)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/pois", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count": 2`)
	assert.Contains(t, w.Body.String(), "Park A")
}

func TestPoIController_ListNormalizesCategoryFilter(t *testing.T) {
	reader := &stubReader{records: []entities.PointOfInterest{
		{ExternalID: "1", Name: "Park A", Category: "park"},
	}}
	router := poiRouter(reader)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/pois?category=%20Park%20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "park", reader.lastCategory)
	assert.Contains(t, w.Body.String(), `"count": 1`)
}

func TestPoIController_ListWithSearchQuery(t *testing.T) {
	reader := &stubReader{}
	router := poiRouter(reader)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/pois?q=golden", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "golden", reader.lastQuery)
}

func TestPoIController_Lookup(t *testing.T) {
	reader := &stubReader{records: []entities.PointOfInterest{
		{ID: 7, ExternalID: "ext-7", Name: "Coit Tower"},
	}}
	router := poiRouter(reader)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/pois/ext-7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Coit Tower")
}

func TestPoIController_LookupNotFound(t *testing.T) {
	router := poiRouter(&stubReader{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/pois/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "poi not found")
}

type stubQueueHealth struct {
	err error
}

func (s *stubQueueHealth) Ping() error {
	return s.err
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", NewHealthController(nil, nil, "test").Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status": "healthy"`)
	assert.Contains(t, w.Body.String(), `"database": "not configured"`)
	assert.Contains(t, w.Body.String(), `"task_queue": "disabled"`)
	assert.Contains(t, w.Body.String(), `"uptime"`)
}

func TestHealthEndpoint_ReportsQueueHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", NewHealthController(nil, &stubQueueHealth{}, "test").Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"task_queue": "ok"`)
}

func TestHealthEndpoint_UnreachableQueueIsUnhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	queue := &stubQueueHealth{err: errors.New("database is closed")}
	router.GET("/health", NewHealthController(nil, queue, "test").Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status": "unhealthy"`)
	assert.Contains(t, w.Body.String(), "database is closed")
}
