package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"answer-relay-service/internal/config"
	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
	"answer-relay-service/internal/retry"
)

const backendName = "huggingface"

// promptInstruction asks the model to answer without restating the question.
const promptInstruction = "Give a direct answer without repeating the question: "

// errTransient marks failures worth another attempt: a model that is still
// loading (503) or any transport error.
var errTransient = errors.New("transient inference failure")

type generateRequest struct {
	Inputs string `json:"inputs"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

type client struct {
	registry *domain.ModelRegistry
	token    string
	http     *http.Client
	policy   retry.Policy
}

// NewClient creates a token-authenticated client for per-model inference
// endpoints.
func NewClient(cfg *config.HuggingFaceConfig) ports.InferenceClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	models := make([]domain.ModelEndpoint, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		models = append(models, domain.ModelEndpoint{Name: m.Name, URL: m.URL})
	}

	return &client{
		registry: domain.NewModelRegistry(cfg.DefaultModel, models),
		token:    cfg.APIToken,
		http: &http.Client{
			Timeout: timeout,
		},
		policy: retry.Policy{
			MaxAttempts: cfg.MaxRetries,
			Delay:       cfg.RetryDelay,
			Transient: func(err error) bool {
				return errors.Is(err, errTransient)
			},
		},
	}
}

func (c *client) Name() string {
	return backendName
}

// IsAvailable reports whether a credential is configured. The remote API has
// no cheap liveness endpoint, so no request is made.
func (c *client) IsAvailable(_ context.Context) bool {
	return c.token != ""
}

func (c *client) Models() domain.ModelList {
	return domain.ModelList{
		DefaultModel:    c.registry.Default(),
		AvailableModels: c.registry.Names(),
	}
}

func (c *client) Generate(ctx context.Context, question, selector string) (string, error) {
	if c.token == "" {
		return "", domain.ErrMissingCredential
	}

	endpoint, fellBack := c.registry.Resolve(selector)
	if fellBack && selector != "" {
		log.WithFields(log.Fields{
			"requested": selector,
			"using":     endpoint.Name,
		}).Warn("unknown model, falling back to default")
	}
	if endpoint.URL == "" {
		return "", fmt.Errorf("%w: no endpoint configured for model %q", domain.ErrInferenceService, endpoint.Name)
	}

	question = strings.TrimSpace(question)
	prompt := BuildPrompt(question)
	reqID := uuid.New().String()

	raw, err := retry.Do(ctx, c.policy, func(ctx context.Context, attempt int) (string, error) {
		return c.call(ctx, endpoint, prompt, reqID, attempt)
	})
	if errors.Is(err, retry.ErrExhausted) {
		log.WithError(err).WithFields(log.Fields{
			"req_id": reqID,
			"model":  endpoint.Name,
		}).Error("inference retries exhausted")
		return "", fmt.Errorf("%w: %w", domain.ErrInferenceServiceUnavailable, err)
	}
	if err != nil {
		return "", err
	}

	return StripEcho(raw, question), nil
}

func (c *client) call(ctx context.Context, endpoint domain.ModelEndpoint, prompt, reqID string, attempt int) (string, error) {
	body, err := json.Marshal(generateRequest{Inputs: prompt})
	if err != nil {
		return "", fmt.Errorf("encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	logger := log.WithFields(log.Fields{
		"req_id":  reqID,
		"model":   endpoint.Name,
		"attempt": attempt,
	})
	logger.Debug("sending inference request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %w", errTransient, err)
	}
	defer resp.Body.Close()

	logger.WithFields(log.Fields{
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("inference response received")

	switch resp.StatusCode {
	case http.StatusOK:
		var gens []generation
		if err := json.NewDecoder(resp.Body).Decode(&gens); err != nil {
			return "", fmt.Errorf("%w: decode response: %v", domain.ErrInferenceService, err)
		}
		if len(gens) == 0 {
			return "", fmt.Errorf("%w: response has no generations", domain.ErrInferenceService)
		}
		return gens[0].GeneratedText, nil

	case http.StatusServiceUnavailable:
		return "", fmt.Errorf("%w: model loading: %s", errTransient, readSnippet(resp.Body))

	default:
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrInferenceService, resp.StatusCode, readSnippet(resp.Body))
	}
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(bytes.TrimSpace(b))
}
