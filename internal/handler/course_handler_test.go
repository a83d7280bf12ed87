package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseval/courseval-backend/internal/repository/memory"
	"github.com/courseval/courseval-backend/internal/response"
	"github.com/courseval/courseval-backend/internal/service"
	"github.com/courseval/courseval-backend/internal/validator"
)

func setupCourseRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	store := memory.NewFixture(0)
	courseService := service.NewCourseService(store.Courses(), store.Evaluations(), nil, zerolog.Nop())
	h := NewCourseHandler(courseService)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/api/v1/courses", h.List)
	r.GET("/api/v1/courses/:id", h.Get)
	r.DELETE("/api/v1/courses/:id", h.Delete)
	return r, store
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCourseHandler_List(t *testing.T) {
	r, _ := setupCourseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.Nil(t, resp.Error)

	courses, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, courses, 4)
	assert.NotEmpty(t, resp.Metadata.RequestID)
}

func TestCourseHandler_List_IncludesAggregates(t *testing.T) {
	r, _ := setupCourseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)

	courses := resp.Data.([]interface{})
	var first map[string]interface{}
	for _, raw := range courses {
		c := raw.(map[string]interface{})
		if c["id"] == "1" {
			first = c
		}
	}
	require.NotNil(t, first)
	// course 1 carries ratings 5 and 4 in the fixture
	assert.InDelta(t, 4.5, first["averageRating"], 1e-9)
	assert.EqualValues(t, 2, first["totalEvaluations"])
}

func TestCourseHandler_Get(t *testing.T) {
	r, _ := setupCourseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.Nil(t, resp.Error)

	course, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1", course["id"])

	evals, ok := course["evaluations"].([]interface{})
	require.True(t, ok)
	assert.Len(t, evals, 2)
	assert.EqualValues(t, 2, course["totalEvaluations"])
}

func TestCourseHandler_Get_NotFound(t *testing.T) {
	r, _ := setupCourseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/nope", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, response.ErrNotFound, resp.Error.Code)
}

func TestCourseHandler_Delete(t *testing.T) {
	r, _ := setupCourseRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/courses/2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/courses/2", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseHandler_Delete_DependencyConflict(t *testing.T) {
	r, store := setupCourseRouter(t)
	store.Enroll("1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/courses/1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, response.ErrDependencyExists, resp.Error.Code)
	assert.Equal(t, "course has active enrollments", resp.Error.Message)

	// the course must survive the failed delete
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/courses/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCourseHandler_InvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	store := memory.NewFixture(0)
	courseService := service.NewCourseService(store.Courses(), store.Evaluations(), nil, zerolog.Nop())
	h := NewCourseHandler(courseService)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	// auth middleware is exercised separately; bind validation is the target here
	r.POST("/api/v1/courses", h.Create)

	body := bytes.NewBufferString(`{"title":"","hours":0}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, response.ErrValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Fields)
}
