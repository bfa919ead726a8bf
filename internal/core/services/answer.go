package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
)

// AnswerService composes archive extraction and inference into the single
// question-answering operation.
type AnswerService struct {
	extractor *ArchiveExtractor
	inference ports.InferenceClient
	column    string
	mode      domain.AnswerMode
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(
	extractor *ArchiveExtractor,
	inference ports.InferenceClient,
	column string,
	mode domain.AnswerMode,
) *AnswerService {
	if column == "" {
		column = DefaultAnswerColumn
	}
	if !mode.Valid() {
		mode = domain.ModeCombined
	}
	return &AnswerService{
		extractor: extractor,
		inference: inference,
		column:    column,
		mode:      mode,
	}
}

// Answer runs extraction (when an archive is attached) and then inference.
// Extraction always completes before inference starts and any extraction
// failure ends the request without calling the backend.
func (s *AnswerService) Answer(ctx context.Context, req domain.AnswerRequest) (*domain.AnswerResult, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	result := &domain.AnswerResult{
		Mode:     s.mode,
		Question: req.Question,
	}

	if req.HasArchive() {
		extracted, err := s.extract(req.Archive)
		if err != nil {
			return nil, err
		}
		result.ExtractedAnswer = &extracted

		if s.mode == domain.ModeShortCircuit {
			return result, nil
		}
	}

	if s.inference == nil {
		return nil, domain.ErrBackendUnavailable
	}

	// The question goes to the backend exactly as the caller sent it.
	generated, err := s.inference.Generate(ctx, req.Question, req.Model)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"backend": s.inference.Name(),
			"model":   req.Model,
		}).Error("generate answer failed")
		return nil, err
	}

	result.LLMAnswer = generated
	result.Inferred = true
	return result, nil
}

func (s *AnswerService) extract(archive []byte) (string, error) {
	table, err := s.extractor.ExtractTable(archive)
	if err != nil {
		log.WithError(err).Warn("extract table failed")
		return "", err
	}
	value, err := LocateAnswer(table, s.column)
	if err != nil {
		log.WithError(err).WithField("source", table.Source).Warn("locate answer failed")
		return "", err
	}
	return value, nil
}

// ListModels returns the configured default selector and every known selector.
func (s *AnswerService) ListModels() domain.ModelList {
	if s.inference == nil {
		return domain.ModelList{AvailableModels: []string{}}
	}
	return s.inference.Models()
}

// Backend names the configured inference backend.
func (s *AnswerService) Backend() string {
	if s.inference == nil {
		return ""
	}
	return s.inference.Name()
}

// BackendAvailable reports whether the inference backend looks ready.
func (s *AnswerService) BackendAvailable(ctx context.Context) bool {
	return s.inference != nil && s.inference.IsAvailable(ctx)
}

func (s *AnswerService) Mode() domain.AnswerMode {
	return s.mode
}
