package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

type Sweep struct {
	From, To, Step float64
}

// SweepDeltaT writes the detailed breakdown of the default house for every
// preset and every ΔT in the sweep.
func SweepDeltaT(filename string, sweep Sweep) error {
	b, err := building.New("sweep", heatload.DefaultDetailedInput())
	if err != nil {
		return fmt.Errorf("failed to create building: %v", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Preset", "DeltaT"}
	for _, c := range heatload.Components {
		header = append(header, c.Label())
	}
	header = append(header, "Huelle", "Gesamt")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, p := range heatload.Presets() {
		b.ApplyPreset(p.Name)
		for dt := sweep.From; dt <= sweep.To; dt += sweep.Step {
			if err := b.Set(building.FieldDeltaT, dt); err != nil {
				return fmt.Errorf("failed to set delta t: %v", err)
			}
			br := b.Get().Result.Breakdown

			rec := []string{p.Name, fmt.Sprintf("%.1f", dt)}
			for _, c := range heatload.Components {
				rec = append(rec, fmt.Sprintf("%.3f", br.Part(c)))
			}
			rec = append(rec, fmt.Sprintf("%.3f", br.Hull), fmt.Sprintf("%.3f", br.Total))
			if err := writer.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %v", err)
			}
		}
	}
	return nil
}

func main() {
	if err := SweepDeltaT("heizlast_sweep.csv", Sweep{From: 0, To: 40, Step: 2.5}); err != nil {
		log.Fatal(err)
	}
}
