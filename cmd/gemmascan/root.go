package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/gemmascan/internal/common"
)

// cliOptions carries flag values; defaults come from the env config so
// flags, env vars, and hardcoded defaults layer in that order.
type cliOptions struct {
	cfg *common.Config

	baseURL      string
	model        string
	timeout      time.Duration
	maxDimension int
	renderScale  float64
	historyDB    string
	outDir       string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{cfg: common.LoadConfig()}

	root := &cobra.Command{
		Use:          "gemmascan",
		Short:        "Batch images and PDFs through a local vision model",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.applyFlags()
			setupLogger(opts.cfg.LogLevel)
			return opts.cfg.Validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.baseURL, "base-url", opts.cfg.Model.BaseURL, "Ollama base URL")
	pf.StringVar(&opts.model, "model", opts.cfg.Model.Name, "vision model name")
	pf.DurationVar(&opts.timeout, "timeout", opts.cfg.Model.Timeout, "per-call model timeout")
	pf.IntVar(&opts.maxDimension, "max-dimension", opts.cfg.Pipeline.MaxDimension, "longest image side sent to the model, in pixels")
	pf.Float64Var(&opts.renderScale, "render-scale", opts.cfg.Pipeline.RenderScale, "PDF rasterization scale over the 72 DPI base")
	pf.StringVar(&opts.historyDB, "history-db", opts.cfg.History.DSN, "optional run-history DSN (sqlite path or postgres URL)")
	pf.StringVar(&opts.outDir, "out-dir", opts.cfg.Export.OutDir, "directory for export files")
	pf.StringVar(&opts.logLevel, "log-level", opts.cfg.LogLevel, "log level: debug|info|warn|error")

	root.AddCommand(describeCmd(opts), extractCmd(opts), doctorCmd(opts))
	return root
}

func (o *cliOptions) applyFlags() {
	o.cfg.Model.BaseURL = o.baseURL
	o.cfg.Model.Name = o.model
	o.cfg.Model.Timeout = o.timeout
	o.cfg.Pipeline.MaxDimension = o.maxDimension
	o.cfg.Pipeline.RenderScale = o.renderScale
	o.cfg.History.DSN = o.historyDB
	o.cfg.Export.OutDir = o.outDir
	o.cfg.LogLevel = o.logLevel
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
}
