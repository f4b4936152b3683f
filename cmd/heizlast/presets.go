package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

func newPresetsCmd(_ *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List building-standard presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(heatload.Presets())
			case "text":
				tw := newTable(w)
				fmt.Fprintln(tw, "NAME\tU_WALL\tU_WINDOW\tU_ROOF\tU_FLOOR\tINFILTRATION\tFACTOR")
				for _, p := range heatload.Presets() {
					name := p.Name
					if name == heatload.DefaultPresetName {
						name += " (default)"
					}
					fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
						name, p.UWall, p.UWindow, p.URoof, p.UFloor, p.Infiltration, p.HeatLossFactor)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unsupported output format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}
