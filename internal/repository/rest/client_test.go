package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}, errCode, errMsg string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{"data": data, "metadata": map[string]string{"request_id": "test"}}
	if errCode != "" {
		e := map[string]interface{}{"code": errCode, "message": errMsg}
		if len(fields) > 0 {
			e["fields"] = fields
		}
		body["error"] = e
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_ListCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/courses", r.URL.Path)
		writeEnvelope(w, http.StatusOK, []map[string]interface{}{
			{"id": "1", "title": "Go Fundamentals", "hours": 40, "averageRating": 4.5, "totalEvaluations": 2},
			{"id": "2", "title": "Databases", "hours": 30, "averageRating": 0, "totalEvaluations": 0},
		}, "", "", nil)
	}))
	defer srv.Close()

	client := New(srv.URL, nil, zerolog.Nop())

	summaries, err := client.Courses().(*CourseRepository).ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Go Fundamentals", summaries[0].Title)
	assert.InDelta(t, 4.5, summaries[0].AverageRating, 1e-9)
	assert.Equal(t, 0, summaries[1].TotalEvaluations)

	courses, err := client.Courses().List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "1", courses[0].ID)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, nil, "NOT_FOUND", "The requested resource was not found.", nil)
	}))
	defer srv.Close()

	client := New(srv.URL, nil, zerolog.Nop())
	_, err := client.Courses().GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClient_ConflictCarriesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, nil, "DEPENDENCY_EXISTS", "course has active enrollments", nil)
	}))
	defer srv.Close()

	client := New(srv.URL, nil, zerolog.Nop())
	err := client.Courses().Delete(context.Background(), "1")

	reason, ok := repository.IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "course has active enrollments", reason)
}

func TestClient_UnauthorizedAndForbidden(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, status, nil, "FORBIDDEN", "nope", nil)
		}))

		client := New(srv.URL, nil, zerolog.Nop())
		err := client.Evaluations().Delete(context.Background(), "1")
		assert.ErrorIs(t, err, repository.ErrUnauthorized, "status %d", status)
		srv.Close()
	}
}

func TestClient_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, nil, "VALIDATION_ERROR", "Validation failed.",
			map[string]string{"rating": "rating must be 5 or less"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil, zerolog.Nop())
	eval := model.Evaluation{CourseID: "1", Rating: 6, Title: "Too good", Description: "off the scale"}
	err := client.Evaluations().Create(context.Background(), &eval)

	var vErr *repository.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rating must be 5 or less", vErr.Fields["rating"])
}

func TestClient_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, nil, "INTERNAL_ERROR", "boom", nil)
	}))
	defer srv.Close()

	client := New(srv.URL, nil, zerolog.Nop())
	_, err := client.Courses().List(context.Background())
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestClient_BearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, map[string]string{"message": "evaluation deleted"}, "", "", nil)
	}))
	defer srv.Close()

	client := New(srv.URL, func() string { return "tok-123" }, zerolog.Nop())
	require.NoError(t, client.Evaluations().Delete(context.Background(), "1"))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"token": "tok-abc",
			"user":  map[string]interface{}{"id": "1", "email": "admin@example.com", "role": "ADMIN"},
		}, "", "", nil)
	}))
	defer srv.Close()

	client := New(srv.URL, nil, zerolog.Nop())
	token, user, err := client.Login(context.Background(), "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.True(t, user.Admin)
}
