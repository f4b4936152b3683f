package report

import (
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// row is one labelled value of an export, shared by the tabular writers.
type row struct {
	Section string
	Key     string
	Value   any
	Unit    string
}

const (
	sectionInputs   = "inputs"
	sectionGeometry = "geometry"
	sectionResults  = "results_kW"
)

func exportRows(exp heatload.Export) []row {
	in, g, r := exp.Inputs, exp.Geometry, exp.Results
	rows := []row{
		{sectionInputs, "length_a_m", in.LengthA, "m"},
		{sectionInputs, "length_b_m", in.LengthB, "m"},
		{sectionInputs, "room_height_m", in.RoomHeight, "m"},
		{sectionInputs, "floors", in.Floors, ""},
		{sectionInputs, "roof_pitch_deg", in.RoofPitch, "°"},
		{sectionInputs, "ridge_axis", in.RidgeAxis.String(), ""},
		{sectionInputs, "window_area_m2", in.WindowArea, "m²"},
		{sectionInputs, "u_wall_W_m2K", in.UWall, "W/(m²K)"},
		{sectionInputs, "u_window_W_m2K", in.UWindow, "W/(m²K)"},
		{sectionInputs, "u_roof_W_m2K", in.URoof, "W/(m²K)"},
		{sectionInputs, "u_floor_W_m2K", in.UFloor, "W/(m²K)"},
		{sectionInputs, "delta_t_K", in.DeltaT, "K"},
		{sectionInputs, "infiltration_W_m3K", in.Infiltration, "W/(m³K)"},
		{sectionGeometry, "floor_area_single", g.FloorAreaSingle, "m²"},
		{sectionGeometry, "gross_floor_area", g.GrossFloorArea, "m²"},
		{sectionGeometry, "volume", g.Volume, "m³"},
		{sectionGeometry, "roof_area", g.RoofArea, "m²"},
		{sectionGeometry, "wall_area_gross", g.WallAreaGross, "m²"},
		{sectionGeometry, "wall_area_net", g.WallAreaNet, "m²"},
		{sectionGeometry, "window_area", g.WindowArea, "m²"},
		{sectionResults, "total", r.Total, "kW"},
		{sectionResults, "hull", r.Hull, "kW"},
		{sectionResults, "infiltration", r.Infiltration, "kW"},
	}
	for _, c := range heatload.Components {
		rows = append(rows, row{sectionResults, "parts." + c.Label(), r.Parts[c.Label()], "kW"})
	}
	return rows
}
