package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/gemmascan/internal/history"
	"github.com/joseph-ayodele/gemmascan/internal/vision/ollama"
)

func doctorCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check pdftoppm, the model endpoint, and the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.cfg
			out := cmd.OutOrStdout()
			failed := false

			if path, err := exec.LookPath(cfg.Pipeline.Pdftoppm); err != nil {
				fmt.Fprintf(out, "pdftoppm: FAIL (%v)\n", err)
				failed = true
			} else {
				fmt.Fprintf(out, "pdftoppm: OK (%s)\n", path)
			}

			client := ollama.NewClient(ollama.Config{
				BaseURL: cfg.Model.BaseURL,
				Model:   cfg.Model.Name,
				Timeout: cfg.Model.Timeout,
			}, slog.Default())
			if err := client.Ping(ctx); err != nil {
				fmt.Fprintf(out, "model endpoint: FAIL (%v)\n", err)
				failed = true
			} else {
				fmt.Fprintf(out, "model endpoint: OK (%s)\n", cfg.Model.BaseURL)
			}

			if cfg.History.DSN == "" {
				fmt.Fprintln(out, "history db: not configured")
			} else if store, err := history.Open(ctx, cfg.History.DSN, slog.Default()); err != nil {
				fmt.Fprintf(out, "history db: FAIL (%v)\n", err)
				failed = true
			} else {
				if err := store.HealthCheck(ctx); err != nil {
					fmt.Fprintf(out, "history db: FAIL (%v)\n", err)
					failed = true
				} else {
					fmt.Fprintln(out, "history db: OK")
				}
				_ = store.Close()
			}

			if failed {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
