package inference

import (
	"fmt"

	"answer-relay-service/internal/adapters/secondary/huggingface"
	"answer-relay-service/internal/adapters/secondary/ollama"
	"answer-relay-service/internal/adapters/secondary/tabular"
	"answer-relay-service/internal/config"
	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
	"answer-relay-service/internal/core/services"
)

// NewClient builds the inference backend selected by INFERENCE_BACKEND.
func NewClient(cfg *config.Config) (ports.InferenceClient, error) {
	switch cfg.Inference.Backend {
	case config.BackendHuggingFace:
		return huggingface.NewClient(&cfg.HuggingFace), nil
	case config.BackendOllama:
		return ollama.NewClient(&cfg.Ollama), nil
	default:
		return nil, fmt.Errorf("unknown inference backend %q", cfg.Inference.Backend)
	}
}

// NewArchiveExtractor builds an extractor for every supported table format.
func NewArchiveExtractor(cfg *config.Config) *services.ArchiveExtractor {
	return services.NewArchiveExtractor(
		cfg.Upload.MaxEntrySize,
		tabular.NewCSVDecoder(),
		tabular.NewXLSXDecoder(cfg.Upload.MaxEntrySize),
	)
}

// NewAnswerService wires extraction and inference into the orchestrator.
func NewAnswerService(cfg *config.Config) (*services.AnswerService, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return services.NewAnswerService(
		NewArchiveExtractor(cfg),
		client,
		cfg.Inference.AnswerColumn,
		domain.AnswerMode(cfg.Inference.Mode),
	), nil
}
