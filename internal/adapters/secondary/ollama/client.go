package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"answer-relay-service/internal/config"
	"answer-relay-service/internal/core/domain"
	ports "answer-relay-service/internal/core/ports/output"
)

const backendName = "ollama"

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type client struct {
	baseURL string
	model   string
	http    *http.Client
	prober  ports.AvailabilityProber
}

// NewClient creates a client for a local daemon serving a single configured
// model. Requests are sent once; the daemon is expected to be running.
func NewClient(cfg *config.OllamaConfig) ports.InferenceClient {
	return newClient(cfg, NewProber(cfg))
}

func newClient(cfg *config.OllamaConfig, prober ports.AvailabilityProber) *client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &client{
		baseURL: cfg.URL,
		model:   cfg.Model,
		http: &http.Client{
			Timeout: timeout,
		},
		prober: prober,
	}
}

func (c *client) Name() string {
	return backendName
}

func (c *client) IsAvailable(ctx context.Context) bool {
	return c.prober.IsAlive(ctx)
}

func (c *client) Models() domain.ModelList {
	return domain.ModelList{
		DefaultModel:    c.model,
		AvailableModels: []string{c.model},
	}
}

// Generate probes liveness, then model presence, then sends question as-is.
// The selector is ignored: the daemon serves the configured model only.
func (c *client) Generate(ctx context.Context, question, selector string) (string, error) {
	if selector != "" && selector != c.model {
		log.WithFields(log.Fields{
			"requested": selector,
			"using":     c.model,
		}).Debug("ignoring model selector for local backend")
	}

	if !c.prober.IsAlive(ctx) {
		return "", domain.ErrBackendUnavailable
	}
	if !c.prober.ModelInstalled(ctx, c.model) {
		return "", fmt.Errorf("%w: %s", domain.ErrModelNotInstalled, c.model)
	}

	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: question})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return "", fmt.Errorf("%w: %s: %w", domain.ErrModelNotInstalled, c.model, err)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"model":      c.model,
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("ollama generate completed")

	if resp.StatusCode != http.StatusOK {
		return "", mapStatusError(resp, c.model)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrBackendUnavailable, err)
	}
	return out.Response, nil
}

// mapStatusError turns a "not found" reply into ErrModelNotInstalled and
// everything else into ErrBackendUnavailable.
func mapStatusError(resp *http.Response, model string) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(b))

	if resp.StatusCode == http.StatusNotFound || strings.Contains(strings.ToLower(msg), "not found") {
		return fmt.Errorf("%w: %s", domain.ErrModelNotInstalled, model)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrBackendUnavailable, resp.StatusCode, msg)
}
