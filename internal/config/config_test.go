package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, BackendHuggingFace, cfg.Inference.Backend)
	assert.Equal(t, ModeShortCircuit, cfg.Inference.Mode)
	assert.Equal(t, "answer", cfg.Inference.AnswerColumn)

	hf := cfg.HuggingFace
	assert.Equal(t, "flan-t5-large", hf.DefaultModel)
	assert.Equal(t, 5, hf.MaxRetries)
	assert.Equal(t, 3*time.Second, hf.RetryDelay)
	assert.Equal(t, 30*time.Second, hf.Timeout)
	assert.Equal(t, []ModelEndpoint{
		{Name: "flan-t5-base", URL: "https://api-inference.huggingface.co/models/google/flan-t5-base"},
		{Name: "gpt2", URL: "https://api-inference.huggingface.co/models/openai-community/gpt2"},
		{Name: "flan-t5-large", URL: "https://api-inference.huggingface.co/models/google/flan-t5-large"},
	}, hf.Models)

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxSize)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("INFERENCE_BACKEND", " Ollama ")
	t.Setenv("OLLAMA_URL", "http://gpu-box:11434/")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("OLLAMA_TIMEOUT", "45s")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendOllama, cfg.Inference.Backend)
	assert.Equal(t, ModeCombined, cfg.Inference.Mode, "local backend defaults to combined mode")
	assert.Equal(t, "http://gpu-box:11434", cfg.Ollama.URL)
	assert.Equal(t, "mistral", cfg.Ollama.Model)
	assert.Equal(t, 45*time.Second, cfg.Ollama.Timeout)
	assert.Equal(t, int64(2<<20), cfg.Upload.MaxSize)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ModeOverride(t *testing.T) {
	t.Setenv("ANSWER_MODE", "COMBINED")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeCombined, cfg.Inference.Mode)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("HUGGINGFACE_RETRY_DELAY", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.HuggingFace.RetryDelay)
}

func TestLoad_InvalidModels(t *testing.T) {
	t.Setenv("HUGGINGFACE_MODELS", "flan-t5-base")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseModels(t *testing.T) {
	models, err := parseModels(" a = org/a , ,b=https://example.test/b ", "https://hf.test/models")
	require.NoError(t, err)

	assert.Equal(t, []ModelEndpoint{
		{Name: "a", URL: "https://hf.test/models/org/a"},
		{Name: "b", URL: "https://example.test/b"},
	}, models)
}

// ============================================================================
// Validate Tests
// ============================================================================

func validHuggingFace() *Config {
	return &Config{
		Inference: InferenceConfig{Backend: BackendHuggingFace, Mode: ModeShortCircuit},
		HuggingFace: HuggingFaceConfig{
			APIToken:     "hf_secret",
			Models:       []ModelEndpoint{{Name: "flan-t5-large", URL: "https://hf.test/m"}},
			DefaultModel: "flan-t5-large",
			MaxRetries:   5,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.HuggingFace.APIToken = "" }, wantErr: "HUGGINGFACE_API_TOKEN"},
		{name: "unknown default", mutate: func(c *Config) { c.HuggingFace.DefaultModel = "gpt5" }, wantErr: "HUGGINGFACE_DEFAULT_MODEL"},
		{name: "no retries", mutate: func(c *Config) { c.HuggingFace.MaxRetries = 0 }, wantErr: "HUGGINGFACE_MAX_RETRIES"},
		{name: "unknown backend", mutate: func(c *Config) { c.Inference.Backend = "openai" }, wantErr: "INFERENCE_BACKEND"},
		{name: "unknown mode", mutate: func(c *Config) { c.Inference.Mode = "both" }, wantErr: "ANSWER_MODE"},
		{
			name: "ollama without model",
			mutate: func(c *Config) {
				c.Inference.Backend = BackendOllama
				c.Ollama = OllamaConfig{URL: "http://localhost:11434"}
			},
			wantErr: "OLLAMA_MODEL",
		},
		{
			name: "ollama does not need a token",
			mutate: func(c *Config) {
				c.Inference.Backend = BackendOllama
				c.HuggingFace.APIToken = ""
				c.Ollama = OllamaConfig{URL: "http://localhost:11434", Model: "llama3.2"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validHuggingFace()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
