package main

import (
	"github.com/spf13/cobra"
)

func describeCmd(opts *cliOptions) *cobra.Command {
	var firstPageOnly, xlsx bool

	cmd := &cobra.Command{
		Use:   "describe <path>...",
		Short: "Produce free-text descriptions for every image and PDF page",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args, nil, firstPageOnly, xlsx)
		},
	}
	cmd.Flags().BoolVar(&firstPageOnly, "first-page-only", false, "process only the first page of each PDF")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also write an XLSX workbook")
	return cmd
}
