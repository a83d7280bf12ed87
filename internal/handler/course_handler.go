package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseval/courseval-backend/internal/middleware"
	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/response"
	"github.com/courseval/courseval-backend/internal/service"
	"github.com/courseval/courseval-backend/internal/validator"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List godoc
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.ListWithRatings(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses)
}

// Get godoc
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetWithEvaluations(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Create godoc
// POST /api/v1/courses (admin)
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req, claims.Email)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

// Update godoc
// PUT /api/v1/courses/:id (admin)
func (h *CourseHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Delete godoc
// DELETE /api/v1/courses/:id (admin)
func (h *CourseHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "course deleted"})
}
