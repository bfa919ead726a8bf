package ollama

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProber_IsAlive(t *testing.T) {
	up := NewProber(startDaemon(t, newFakeDaemon()))
	assert.True(t, up.IsAlive(context.Background()))

	d := newFakeDaemon()
	d.versionStatus = http.StatusBadGateway
	down := NewProber(startDaemon(t, d))
	assert.False(t, down.IsAlive(context.Background()))
}

func TestProber_ModelInstalledExactMatch(t *testing.T) {
	d := newFakeDaemon()
	d.installed = []string{"llama3.2:latest", "mistral"}
	p := NewProber(startDaemon(t, d))

	assert.True(t, p.ModelInstalled(context.Background(), "mistral"))
	assert.True(t, p.ModelInstalled(context.Background(), "llama3.2:latest"))
	assert.False(t, p.ModelInstalled(context.Background(), "llama3.2"))
	assert.False(t, p.ModelInstalled(context.Background(), "Mistral"))
}

func TestProber_CancelledContext(t *testing.T) {
	d := newFakeDaemon()
	p := NewProber(startDaemon(t, d))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, p.IsAlive(ctx))
	assert.False(t, p.ModelInstalled(ctx, "llama3.2"))
}
