package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"answer-relay-service/internal/adapters/primary/http/dto"
)

// ListModels returns the default selector and every known selector.
func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToModelsResponse(h.answerSvc.ListModels()))
}

// Health reports whether the configured backend looks ready.
func (h *Handler) Health(c *gin.Context) {
	backend := h.answerSvc.Backend()
	if !h.answerSvc.BackendAvailable(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Backend: backend})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Backend: backend})
}
