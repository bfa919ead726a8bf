package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"answer-relay-service/internal/adapters/primary/http/dto"
	"answer-relay-service/internal/adapters/primary/http/middleware"
	"answer-relay-service/internal/core/domain"
)

const defaultMaxUploadSize int64 = 50 << 20

// Answer handles POST /api/ with multipart fields question, model and file.
func (h *Handler) Answer(c *gin.Context) {
	req := domain.AnswerRequest{
		Question: c.PostForm("question"),
		Model:    c.PostForm("model"),
	}

	logger := log.WithField("request_id", middleware.RequestIDFrom(c.Request.Context()))

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		data, err := readUpload(fh, h.maxUploadSize)
		if err != nil {
			logger.WithError(err).WithField("filename", fh.Filename).Warn("read upload failed")
			mapDomainError(c, err)
			return
		}
		req.Archive = data
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		c.JSON(http.StatusBadRequest, errorBody("invalid multipart form: "+err.Error()))
		return
	}

	result, err := h.answerSvc.Answer(c.Request.Context(), req)
	if err != nil {
		logger.WithError(err).Error("answer question failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerResponse(result))
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	if fh.Size > limit {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrUploadTooLarge, fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, domain.ErrUploadTooLarge
	}
	return data, nil
}
