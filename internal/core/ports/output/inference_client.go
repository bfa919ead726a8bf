package ports

import (
	"context"

	"answer-relay-service/internal/core/domain"
)

// InferenceClient is a text-generation backend. Implementations differ in
// transport, retry behaviour and post-processing but share this contract.
type InferenceClient interface {
	// Name identifies the backend kind (e.g. "huggingface", "ollama").
	Name() string

	// Generate answers question using the model named by selector. An empty
	// or unknown selector uses the backend's default model.
	Generate(ctx context.Context, question, selector string) (string, error)

	// IsAvailable is a best-effort readiness check; it never returns an error.
	IsAvailable(ctx context.Context) bool

	// Models lists the selectors this backend accepts.
	Models() domain.ModelList
}

// AvailabilityProber checks a local inference daemon before dispatch.
// Both probes treat any transport failure as false.
type AvailabilityProber interface {
	IsAlive(ctx context.Context) bool
	ModelInstalled(ctx context.Context, name string) bool
}
