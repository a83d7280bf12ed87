package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseval/courseval-backend/internal/middleware"
	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/response"
	"github.com/courseval/courseval-backend/internal/service"
	"github.com/courseval/courseval-backend/internal/validator"
)

type EvaluationHandler struct {
	evaluationService *service.EvaluationService
}

func NewEvaluationHandler(evaluationService *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// ListByCourse godoc
// GET /api/v1/courses/:id/evaluations
func (h *EvaluationHandler) ListByCourse(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	evaluations, err := h.evaluationService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, evaluations)
}

// Get godoc
// GET /api/v1/evaluations/:id
func (h *EvaluationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	evaluation, err := h.evaluationService.Get(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, evaluation)
}

// Create godoc
// POST /api/v1/evaluations
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req model.CreateEvaluationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	evaluation, err := h.evaluationService.Create(c.Request.Context(), &req, claims.Email)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, evaluation)
}

// Delete godoc
// DELETE /api/v1/evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	err := h.evaluationService.Delete(c.Request.Context(), id, claims.Email, claims.IsAdmin())
	if err != nil {
		if errors.Is(err, service.ErrNotEvaluationAuthor) {
			response.Fail(c, http.StatusForbidden, response.ErrNotAuthor)
			return
		}
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "evaluation deleted"})
}
