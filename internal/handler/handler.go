// Package handler contains the Gin HTTP handlers. Each handler binds and
// validates its payload, delegates to a service, and translates the typed
// repository errors into the response envelope. Conflict reasons pass
// through verbatim; nothing here swallows a server explanation.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/response"
)

// failFromError maps a repository/service error onto the response taxonomy.
func failFromError(c *gin.Context, err error) {
	if reason, ok := repository.IsConflict(err); ok {
		response.FailWithMessage(c, http.StatusConflict, response.ErrDependencyExists, reason)
		return
	}

	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	case errors.Is(err, repository.ErrUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
