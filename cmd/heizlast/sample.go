package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/heizlast/cmd/app"
)

func newSampleConfigCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sample-config",
		Short: "Print a config file with every default spelled out",
		Args:  cobra.NoArgs,
		// No config is needed to write one.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return app.WriteSample(cmd.OutOrStdout())
			}
			fh, err := os.Create(out)
			if err != nil {
				return err
			}
			defer fh.Close()
			return app.WriteSample(fh)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}
