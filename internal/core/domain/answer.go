package domain

// AnswerMode selects how the orchestrator combines archive extraction with
// inference.
type AnswerMode string

const (
	// ModeShortCircuit returns the extracted value without calling inference
	// when an archive yields an answer.
	ModeShortCircuit AnswerMode = "short_circuit"
	// ModeCombined always calls inference and returns both values.
	ModeCombined AnswerMode = "combined"
)

func (m AnswerMode) Valid() bool {
	return m == ModeShortCircuit || m == ModeCombined
}

// AnswerRequest is one inbound question with its optional inputs.
type AnswerRequest struct {
	Question string
	Model    string
	Archive  []byte
}

// HasArchive reports whether an archive was uploaded with the request.
func (r AnswerRequest) HasArchive() bool {
	return r.Archive != nil
}

// AnswerResult carries everything produced for one request.
type AnswerResult struct {
	Mode            AnswerMode
	Question        string
	ExtractedAnswer *string
	LLMAnswer       string
	// Inferred is false when the request short-circuited on an extracted value.
	Inferred bool
}
