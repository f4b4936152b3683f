package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

func newSimpleCmd(_ *options) *cobra.Command {
	in := heatload.DefaultSimpleInput()
	var preset, format string

	cmd := &cobra.Command{
		Use:   "simple",
		Short: "Volumetric quick estimate: area × height × factor × ΔT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if preset != "" && !cmd.Flags().Changed("factor") {
				in.HeatLossFactor = heatload.LookupPreset(preset).HeatLossFactor
			}
			res, err := heatload.Simple(in)
			if err != nil {
				return err
			}
			return writeSimple(cmd.OutOrStdout(), format, res)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.FloorArea, "floor-area", in.FloorArea, "heated floor area (m²)")
	f.Float64Var(&in.RoomHeight, "room-height", in.RoomHeight, "room height (m)")
	f.Float64Var(&in.HeatLossFactor, "factor", in.HeatLossFactor, "heat-loss factor (W/(m³·K))")
	f.Float64Var(&in.DeltaT, "delta-t", in.DeltaT, "indoor/outdoor temperature difference (K)")
	f.StringVar(&preset, "preset", "", "take the factor from a building-standard preset")
	f.StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}

func writeSimple(w io.Writer, format string, res heatload.SimpleResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "text":
		tw := newTable(w)
		fmt.Fprintf(tw, "Volumen\t%.2f\tm³\n", res.Volume)
		fmt.Fprintf(tw, "Heizlast\t%.2f\tkW\n", res.PowerKW)
		fmt.Fprintf(tw, "Heizlast\t%.0f\tW\n", res.PowerW)
		fmt.Fprintf(tw, "pro m²\t%.4f\tkW/m²\n", res.PerFloorArea)
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
