package dto

import (
	"answer-relay-service/internal/core/domain"
)

// ============================================================================
// Response DTOs
// ============================================================================

// AnswerResponse is returned in short-circuit mode.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// DetailedAnswerResponse is returned in combined mode.
type DetailedAnswerResponse struct {
	ExtractedAnswer *string `json:"extracted_answer"`
	LLMAnswer       string  `json:"llm_answer"`
	Question        string  `json:"question"`
}

// ModelsResponse lists the selectors accepted by POST /api/.
type ModelsResponse struct {
	DefaultModel    string   `json:"default_model"`
	AvailableModels []string `json:"available_models"`
}

// HealthResponse reports backend readiness.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// ============================================================================
// Mappers
// ============================================================================

// ToAnswerResponse picks the wire shape for the result's mode. In
// short-circuit mode an extracted value wins over the generated one.
func ToAnswerResponse(r *domain.AnswerResult) any {
	if r.Mode == domain.ModeCombined {
		return DetailedAnswerResponse{
			ExtractedAnswer: r.ExtractedAnswer,
			LLMAnswer:       r.LLMAnswer,
			Question:        r.Question,
		}
	}

	if !r.Inferred && r.ExtractedAnswer != nil {
		return AnswerResponse{Answer: *r.ExtractedAnswer}
	}
	return AnswerResponse{Answer: r.LLMAnswer}
}

func ToModelsResponse(m domain.ModelList) ModelsResponse {
	available := m.AvailableModels
	if available == nil {
		available = []string{}
	}
	return ModelsResponse{
		DefaultModel:    m.DefaultModel,
		AvailableModels: available,
	}
}
