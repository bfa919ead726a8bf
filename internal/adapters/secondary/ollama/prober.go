package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"answer-relay-service/internal/config"
	ports "answer-relay-service/internal/core/ports/output"
)

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type prober struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewProber creates the liveness and model-presence probes for a daemon.
func NewProber(cfg *config.OllamaConfig) ports.AvailabilityProber {
	timeout := cfg.ProbeTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &prober{
		baseURL: cfg.URL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *prober) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.get(ctx, "/api/version")
	if err != nil {
		log.WithError(err).Debug("ollama version probe failed")
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (p *prober) ModelInstalled(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.get(ctx, "/api/tags")
	if err != nil {
		log.WithError(err).Debug("ollama tags probe failed")
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		log.WithError(err).Debug("decode ollama tags")
		return false
	}
	for _, m := range tags.Models {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (p *prober) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return p.client.Do(req)
}
