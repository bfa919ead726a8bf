package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	BackendHuggingFace = "huggingface"
	BackendOllama      = "ollama"
)

const (
	ModeShortCircuit = "short_circuit"
	ModeCombined     = "combined"
)

const defaultHuggingFaceModels = "flan-t5-base=google/flan-t5-base," +
	"gpt2=openai-community/gpt2," +
	"flan-t5-large=google/flan-t5-large"

type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	Inference   InferenceConfig
	HuggingFace HuggingFaceConfig
	Ollama      OllamaConfig
	Upload      UploadConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type InferenceConfig struct {
	Backend      string
	Mode         string
	AnswerColumn string
}

type ModelEndpoint struct {
	Name string
	URL  string
}

type HuggingFaceConfig struct {
	APIToken     string
	BaseURL      string
	Models       []ModelEndpoint
	DefaultModel string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
}

type OllamaConfig struct {
	URL          string
	Model        string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

type UploadConfig struct {
	MaxSize      int64
	MaxEntrySize int64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("could not load .env file")
	}

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("INFERENCE_BACKEND", BackendHuggingFace)
	v.SetDefault("ANSWER_MODE", "")
	v.SetDefault("ANSWER_COLUMN", "answer")
	v.SetDefault("HUGGINGFACE_API_TOKEN", "")
	v.SetDefault("HUGGINGFACE_BASE_URL", "https://api-inference.huggingface.co/models")
	v.SetDefault("HUGGINGFACE_MODELS", defaultHuggingFaceModels)
	v.SetDefault("HUGGINGFACE_DEFAULT_MODEL", "flan-t5-large")
	v.SetDefault("HUGGINGFACE_TIMEOUT", "30s")
	v.SetDefault("HUGGINGFACE_MAX_RETRIES", 5)
	v.SetDefault("HUGGINGFACE_RETRY_DELAY", "3s")
	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
	v.SetDefault("OLLAMA_MODEL", "llama3.2")
	v.SetDefault("OLLAMA_TIMEOUT", "30s")
	v.SetDefault("OLLAMA_PROBE_TIMEOUT", "5s")
	v.SetDefault("UPLOAD_MAX_SIZE_MB", 50)
	v.SetDefault("UPLOAD_MAX_ENTRY_SIZE_MB", 50)

	// Env
	v.AutomaticEnv()

	backend := strings.ToLower(strings.TrimSpace(v.GetString("INFERENCE_BACKEND")))
	mode := strings.ToLower(strings.TrimSpace(v.GetString("ANSWER_MODE")))
	if mode == "" {
		mode = defaultMode(backend)
	}

	baseURL := strings.TrimRight(v.GetString("HUGGINGFACE_BASE_URL"), "/")
	models, err := parseModels(v.GetString("HUGGINGFACE_MODELS"), baseURL)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Inference: InferenceConfig{
			Backend:      backend,
			Mode:         mode,
			AnswerColumn: v.GetString("ANSWER_COLUMN"),
		},
		HuggingFace: HuggingFaceConfig{
			APIToken:     strings.TrimSpace(v.GetString("HUGGINGFACE_API_TOKEN")),
			BaseURL:      baseURL,
			Models:       models,
			DefaultModel: v.GetString("HUGGINGFACE_DEFAULT_MODEL"),
			Timeout:      parseDuration(v.GetString("HUGGINGFACE_TIMEOUT"), 30*time.Second),
			MaxRetries:   v.GetInt("HUGGINGFACE_MAX_RETRIES"),
			RetryDelay:   parseDuration(v.GetString("HUGGINGFACE_RETRY_DELAY"), 3*time.Second),
		},
		Ollama: OllamaConfig{
			URL:          strings.TrimRight(v.GetString("OLLAMA_URL"), "/"),
			Model:        v.GetString("OLLAMA_MODEL"),
			Timeout:      parseDuration(v.GetString("OLLAMA_TIMEOUT"), 30*time.Second),
			ProbeTimeout: parseDuration(v.GetString("OLLAMA_PROBE_TIMEOUT"), 5*time.Second),
		},
		Upload: UploadConfig{
			MaxSize:      v.GetInt64("UPLOAD_MAX_SIZE_MB") << 20,
			MaxEntrySize: v.GetInt64("UPLOAD_MAX_ENTRY_SIZE_MB") << 20,
		},
	}

	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	switch c.Inference.Backend {
	case BackendHuggingFace:
		if c.HuggingFace.APIToken == "" {
			return errors.New("HUGGINGFACE_API_TOKEN is required when INFERENCE_BACKEND=huggingface")
		}
		if !c.HuggingFace.hasModel(c.HuggingFace.DefaultModel) {
			return fmt.Errorf("HUGGINGFACE_DEFAULT_MODEL %q is not listed in HUGGINGFACE_MODELS", c.HuggingFace.DefaultModel)
		}
		if c.HuggingFace.MaxRetries < 1 {
			return errors.New("HUGGINGFACE_MAX_RETRIES must be at least 1")
		}
	case BackendOllama:
		if c.Ollama.URL == "" {
			return errors.New("OLLAMA_URL is required when INFERENCE_BACKEND=ollama")
		}
		if c.Ollama.Model == "" {
			return errors.New("OLLAMA_MODEL is required when INFERENCE_BACKEND=ollama")
		}
	default:
		return fmt.Errorf("unknown INFERENCE_BACKEND %q", c.Inference.Backend)
	}

	if c.Inference.Mode != ModeShortCircuit && c.Inference.Mode != ModeCombined {
		return fmt.Errorf("unknown ANSWER_MODE %q", c.Inference.Mode)
	}
	return nil
}

func (h HuggingFaceConfig) hasModel(name string) bool {
	for _, m := range h.Models {
		if m.Name == name {
			return true
		}
	}
	return false
}

func defaultMode(backend string) string {
	if backend == BackendOllama {
		return ModeCombined
	}
	return ModeShortCircuit
}

// parseModels reads "name=target,name=target". A target that is not an
// absolute http(s) URL is treated as a repository path under baseURL.
func parseModels(raw, baseURL string) ([]ModelEndpoint, error) {
	var models []ModelEndpoint
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, target, ok := strings.Cut(item, "=")
		name, target = strings.TrimSpace(name), strings.TrimSpace(target)
		if !ok || name == "" || target == "" {
			return nil, fmt.Errorf("invalid HUGGINGFACE_MODELS entry %q, want name=target", item)
		}
		if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
			target = baseURL + "/" + strings.TrimLeft(target, "/")
		}
		models = append(models, ModelEndpoint{Name: name, URL: target})
	}
	return models, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
