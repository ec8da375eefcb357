package constants

import "time"

// Pipeline defaults, overridable through env config or CLI flags.
const (
	// DefaultMaxDimension bounds the longer side of images sent to the model.
	DefaultMaxDimension = 1024

	// DefaultRenderScale is the linear magnification applied when rasterizing
	// PDF pages (72 DPI base, so 1.5 renders at 108 DPI).
	DefaultRenderScale = 1.5

	// DefaultJPEGQuality for re-encoded page images.
	DefaultJPEGQuality = 90

	// DefaultModel is the vision model requested from Ollama.
	DefaultModel = "gemma3:12b"

	// DefaultBaseURL is the local Ollama endpoint.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultInvokeTimeout caps a single model call.
	DefaultInvokeTimeout = 120 * time.Second
)
