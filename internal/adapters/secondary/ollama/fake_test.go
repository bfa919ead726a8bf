package ollama

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"answer-relay-service/internal/config"
)

// fakeDaemon mimics the version, tags and generate endpoints of a local
// daemon and records the order in which they are hit.
type fakeDaemon struct {
	mu       sync.Mutex
	paths    []string
	lastBody generateRequest

	versionStatus  int
	installed      []string
	generateStatus int
	generateBody   string
	response       string
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{
		versionStatus:  http.StatusOK,
		installed:      []string{"llama3.2"},
		generateStatus: http.StatusOK,
		response:       "  The answer is 42.\n",
	}
}

func (d *fakeDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.paths = append(d.paths, r.URL.Path)
	d.mu.Unlock()

	switch r.URL.Path {
	case "/api/version":
		w.WriteHeader(d.versionStatus)
		_, _ = w.Write([]byte(`{"version":"0.5.7"}`))

	case "/api/tags":
		var tags tagsResponse
		for _, name := range d.installed {
			tags.Models = append(tags.Models, struct {
				Name string `json:"name"`
			}{Name: name})
		}
		_ = json.NewEncoder(w).Encode(tags)

	case "/api/generate":
		var body generateRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		d.mu.Lock()
		d.lastBody = body
		d.mu.Unlock()

		if d.generateStatus != http.StatusOK {
			w.WriteHeader(d.generateStatus)
			_, _ = w.Write([]byte(d.generateBody))
			return
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Response: d.response})

	default:
		http.NotFound(w, r)
	}
}

func (d *fakeDaemon) hits() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.paths...)
}

func startDaemon(t *testing.T, d *fakeDaemon) *config.OllamaConfig {
	t.Helper()
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	return &config.OllamaConfig{
		URL:          srv.URL,
		Model:        "llama3.2",
		Timeout:      2 * time.Second,
		ProbeTimeout: time.Second,
	}
}
