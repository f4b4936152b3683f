package heatload

import "strings"

// DefaultPresetName is returned for labels that are not in the table.
const DefaultPresetName = "Teilsaniert"

// Preset bundles typical thermal properties of a building standard.
type Preset struct {
	Name           string  `json:"name"`
	UWall          float64 `json:"u_wall_W_m2K"`
	UWindow        float64 `json:"u_window_W_m2K"`
	URoof          float64 `json:"u_roof_W_m2K"`
	UFloor         float64 `json:"u_floor_W_m2K"`
	Infiltration   float64 `json:"infiltration_W_m3K"`
	HeatLossFactor float64 `json:"heat_loss_factor_W_m3K"`
}

var presets = []Preset{
	{Name: "Altbau", UWall: 1.4, UWindow: 2.8, URoof: 1.0, UFloor: 1.0, Infiltration: 0.25, HeatLossFactor: 1.25},
	{Name: "Teilsaniert", UWall: 0.6, UWindow: 1.3, URoof: 0.4, UFloor: 0.5, Infiltration: 0.1, HeatLossFactor: 0.9},
	{Name: "Neubau", UWall: 0.24, UWindow: 1.0, URoof: 0.2, UFloor: 0.3, Infiltration: 0.04, HeatLossFactor: 0.55},
	{Name: "Passivhaus", UWall: 0.1, UWindow: 0.7, URoof: 0.1, UFloor: 0.15, Infiltration: 0.01, HeatLossFactor: 0.2},
}

// Presets returns a copy of the table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset never fails: unknown labels yield the Teilsaniert entry.
func LookupPreset(name string) Preset {
	p, ok := findPreset(name)
	if !ok {
		p, _ = findPreset(DefaultPresetName)
	}
	return p
}

// HasPreset reports whether name is in the table.
func HasPreset(name string) bool {
	_, ok := findPreset(name)
	return ok
}

func findPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply copies the preset values onto th, keeping ΔT.
func (p Preset) Apply(th ThermalInput) ThermalInput {
	th.UWall = p.UWall
	th.UWindow = p.UWindow
	th.URoof = p.URoof
	th.UFloor = p.UFloor
	th.Infiltration = p.Infiltration
	return th
}
