package ollama

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/gemmascan/constants"
)

// Config for the Ollama client.
type Config struct {
	BaseURL string        // default http://localhost:11434, or env OLLAMA_HOST
	Model   string        // e.g. "gemma3:12b"
	Timeout time.Duration // http client timeout
}

// Client talks to a local Ollama server. Opaque to the pipeline beyond the
// vision.Invoker contract; availability and model selection are configuration.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("OLLAMA_HOST")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = constants.DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultInvokeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
