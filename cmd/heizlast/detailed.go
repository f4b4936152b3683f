package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
	"github.com/Agrid-Dev/heizlast/internal/report"
)

// detailedFlags maps CLI flag names to building inputs.
var detailedFlags = []struct {
	name  string
	field building.Field
	usage string
}{
	{"length-a", building.FieldLengthA, "building length a (m)"},
	{"length-b", building.FieldLengthB, "building length b (m)"},
	{"room-height", building.FieldRoomHeight, "room height per floor (m)"},
	{"floors", building.FieldFloors, "number of full floors"},
	{"roof-pitch", building.FieldRoofPitch, "roof pitch (degrees, 0 = flat)"},
	{"window-area", building.FieldWindowArea, "total window area (m²)"},
	{"u-wall", building.FieldUWall, "wall U-value (W/(m²·K))"},
	{"u-window", building.FieldUWindow, "window U-value (W/(m²·K))"},
	{"u-roof", building.FieldURoof, "roof U-value (W/(m²·K))"},
	{"u-floor", building.FieldUFloor, "floor U-value (W/(m²·K))"},
	{"delta-t", building.FieldDeltaT, "indoor/outdoor temperature difference (K)"},
	{"infiltration", building.FieldInfiltration, "infiltration coefficient (W/(m³·K))"},
}

func newDetailedCmd(opts *options) *cobra.Command {
	values := make([]float64, len(detailedFlags))
	var preset, ridge, format, out string

	cmd := &cobra.Command{
		Use:   "detailed",
		Short: "Envelope heat-loss breakdown per component",
		Long: `Computes geometry and the transmission and infiltration losses of a simple
rectangular building with a gable roof. Inputs start from the config's building
section; --preset replaces the thermal properties; explicit flags win.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.cfg.Input()
			if err != nil {
				return err
			}
			if preset != "" {
				p := heatload.LookupPreset(preset)
				in.ThermalInput = p.Apply(in.ThermalInput)
				opts.log.Debug("preset applied", "requested", preset, "applied", p.Name)
			}
			if cmd.Flags().Changed("ridge-axis") {
				if in.RidgeAxis, err = heatload.ParseRidgeAxis(ridge); err != nil {
					return err
				}
			}
			for i, df := range detailedFlags {
				if !cmd.Flags().Changed(df.name) {
					continue
				}
				if err := df.field.Apply(&in, values[i]); err != nil {
					return fmt.Errorf("--%s: %w", df.name, err)
				}
			}

			if err := in.Validate(); err != nil {
				return err
			}
			res, err := heatload.Detailed(in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				fh, err := os.Create(out)
				if err != nil {
					return err
				}
				defer fh.Close()
				w = fh
			}
			return writeDetailed(w, format, in, res)
		},
	}

	def := heatload.DefaultDetailedInput()
	f := cmd.Flags()
	for i, df := range detailedFlags {
		f.Float64Var(&values[i], df.name, df.field.Value(def), df.usage)
	}
	f.StringVar(&ridge, "ridge-axis", def.RidgeAxis.String(), "ridge runs along side A or B")
	f.StringVar(&preset, "preset", "", "building-standard preset for U-values and infiltration")
	f.StringVar(&format, "format", "text", "output format (text|json|csv|pdf|xlsx)")
	f.StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func writeDetailed(w io.Writer, format string, in heatload.DetailedInput, res heatload.DetailedResult) error {
	if format == "text" {
		return writeDetailedText(w, res)
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	return report.Write(w, f, heatload.NewExport(in, res), report.Meta{Advisories: res.Advisories})
}

func writeDetailedText(w io.Writer, res heatload.DetailedResult) error {
	g := res.Geometry
	tw := newTable(w)
	fmt.Fprintf(tw, "Grundfläche\t%.2f\tm²\n", g.GrossFloorArea)
	fmt.Fprintf(tw, "Volumen\t%.2f\tm³\n", g.Volume)
	fmt.Fprintf(tw, "Wandfläche (netto)\t%.2f\tm²\n", g.WallAreaNet)
	fmt.Fprintf(tw, "Dachfläche\t%.2f\tm²\n", g.RoofArea)
	fmt.Fprintln(tw, "\t\t")
	for _, c := range heatload.Components {
		fmt.Fprintf(tw, "%s\t%.2f\tkW\n", c.Label(), res.Breakdown.Part(c))
	}
	fmt.Fprintf(tw, "Hülle\t%.2f\tkW\n", res.Breakdown.Hull)
	fmt.Fprintf(tw, "Gesamt\t%.2f\tkW\n", res.Breakdown.Total)
	fmt.Fprintf(tw, "pro m²\t%.4f\tkW/m²\n", res.PerFloorArea)
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, a := range res.Advisories {
		if _, err := fmt.Fprintln(w, "Hinweis:", a.Message()); err != nil {
			return err
		}
	}
	return nil
}
