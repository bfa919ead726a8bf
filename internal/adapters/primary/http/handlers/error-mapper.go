package handlers

import (
	"errors"
	"net/http"

	"answer-relay-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// errorBody carries the message under both "error" and "detail" so clients
// written against either convention keep working.
func errorBody(msg string) gin.H {
	return gin.H{"error": msg, "detail": msg}
}

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Bad request / validation errors
	case errors.Is(err, domain.ErrEmptyQuestion),
		errors.Is(err, domain.ErrUploadTooLarge),
		errors.Is(err, domain.ErrInvalidArchive),
		errors.Is(err, domain.ErrEmptyArchive),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrMalformedTable),
		errors.Is(err, domain.ErrEntryTooLarge),
		errors.Is(err, domain.ErrColumnNotFound),
		errors.Is(err, domain.ErrEmptyTable):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))

	// Service unavailable errors; upstream bodies are not echoed to callers
	case errors.Is(err, domain.ErrMissingCredential):
		c.JSON(http.StatusServiceUnavailable, errorBody(domain.ErrMissingCredential.Error()))
	case errors.Is(err, domain.ErrModelNotInstalled):
		c.JSON(http.StatusServiceUnavailable, errorBody(err.Error()))
	case errors.Is(err, domain.ErrBackendUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorBody(domain.ErrBackendUnavailable.Error()))
	case errors.Is(err, domain.ErrInferenceServiceUnavailable),
		errors.Is(err, domain.ErrInferenceService):
		c.JSON(http.StatusServiceUnavailable, errorBody(domain.ErrInferenceServiceUnavailable.Error()))

	default:
		c.JSON(http.StatusInternalServerError, errorBody("internal server error"))
	}
}
