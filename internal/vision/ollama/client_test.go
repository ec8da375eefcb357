package ollama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/gemmascan/constants"
	"github.com/joseph-ayodele/gemmascan/internal/vision"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type chatRequest struct {
	Model    string `json:"model"`
	Stream   bool   `json:"stream"`
	Messages []struct {
		Role    string   `json:"role"`
		Content string   `json:"content"`
		Images  []string `json:"images"`
	} `json:"messages"`
}

func TestInvokeRequestShape(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"message":{"content":"a red square"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Model: "gemma3:4b"}, testLogger())
	text, err := c.Invoke(context.Background(), "describe this", []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, "a red square", text)

	assert.Equal(t, "gemma3:4b", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "describe this", got.Messages[0].Content)
	require.Len(t, got.Messages[0].Images, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2}), got.Messages[0].Images[0])
}

func TestInvokeStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, testLogger())
	_, err := c.Invoke(context.Background(), "p", nil)
	require.Error(t, err)

	var invErr *vision.InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Contains(t, err.Error(), "404")
}

func TestInvokeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(Config{BaseURL: srv.URL}, testLogger())
	_, err := c.Invoke(context.Background(), "p", nil)
	require.Error(t, err)

	var invErr *vision.InvocationError
	assert.True(t, errors.As(err, &invErr))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version", r.URL.Path)
		_, _ = w.Write([]byte(`{"version":"0.6.0"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, testLogger())
	assert.NoError(t, c.Ping(context.Background()))

	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewClientDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	c := NewClient(Config{}, testLogger())
	assert.Equal(t, constants.DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, constants.DefaultModel, c.cfg.Model)
	assert.Equal(t, constants.DefaultInvokeTimeout, c.cfg.Timeout)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.test:11434/", Timeout: time.Second}, testLogger())
	assert.Equal(t, "http://example.test:11434", c.cfg.BaseURL)
}
