package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/gemmascan/internal/extract"
)

func extractCmd(opts *cliOptions) *cobra.Command {
	var fieldsFlag string
	var firstPageOnly, xlsx bool

	cmd := &cobra.Command{
		Use:   "extract <path>...",
		Short: "Extract named fields from every image and PDF page",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := extract.NormalizeFields(strings.Split(fieldsFlag, ","))
			if err != nil {
				return err
			}
			return runBatch(cmd, opts, args, fields, firstPageOnly, xlsx)
		},
	}
	cmd.Flags().StringVar(&fieldsFlag, "fields", "", `comma-separated field names to extract, e.g. "Invoice number,Date,Total"`)
	_ = cmd.MarkFlagRequired("fields")
	cmd.Flags().BoolVar(&firstPageOnly, "first-page-only", false, "process only the first page of each PDF")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "also write an XLSX workbook")
	return cmd
}
