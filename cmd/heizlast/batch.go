package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/heizlast/internal/report"
)

func newBatchCmd(opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "batch <file.csv|file.xlsx>",
		Short: "Run the detailed calculation for every row of a sheet",
		Long: `Reads one building per row. Header names are the export input keys
(length_a_m, u_wall_W_m2K, ...) plus optional name, preset and ridge_axis columns.
Missing cells keep their defaults. Rows that fail validation are reported, not fatal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			in, err := report.ParseFormat(filepath.Ext(path))
			if err != nil {
				return err
			}
			outFmt, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			fh, err := os.Open(path)
			if err != nil {
				return err
			}
			defer fh.Close()

			items, err := report.ReadBatch(fh, in)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			failed := 0
			for _, it := range items {
				if it.Err != nil {
					failed++
					opts.log.Warn("row rejected", "row", it.Row, "name", it.Name, "error", it.Err)
				}
			}
			opts.log.Info("batch done", "rows", len(items), "failed", failed)

			w := cmd.OutOrStdout()
			if out != "" {
				of, err := os.Create(out)
				if err != nil {
					return err
				}
				defer of.Close()
				w = of
			}
			return report.WriteBatch(w, outFmt, items)
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "output format (csv|xlsx|json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}
