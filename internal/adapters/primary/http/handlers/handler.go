package handlers

import (
	"answer-relay-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	answerSvc     *services.AnswerService
	maxUploadSize int64
}

func New(answerSvc *services.AnswerService, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handler{
		answerSvc:     answerSvc,
		maxUploadSize: maxUploadSize,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Question answering
	r.POST("/api/", h.Answer)

	// Model catalogue
	r.GET("/models", h.ListModels)

	// Backend readiness
	r.GET("/healthz", h.Health)
}
