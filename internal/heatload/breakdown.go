package heatload

// ThermalInput carries the envelope U-values (W/(m²·K)), the infiltration
// coefficient (W/(m³·K)) and the indoor/outdoor temperature difference (K).
type ThermalInput struct {
	UWall        float64 `json:"u_wall_W_m2K" validate:"gt=0"`
	UWindow      float64 `json:"u_window_W_m2K" validate:"gt=0"`
	URoof        float64 `json:"u_roof_W_m2K" validate:"gt=0"`
	UFloor       float64 `json:"u_floor_W_m2K" validate:"gt=0"`
	DeltaT       float64 `json:"delta_t_K"`
	Infiltration float64 `json:"infiltration_W_m3K" validate:"gte=0"`
}

// Breakdown holds per-component heat loss in kW.
type Breakdown struct {
	Wall         float64
	Roof         float64
	Floor        float64
	Window       float64
	Infiltration float64
	Hull         float64
	Total        float64
}

// ComputeBreakdown applies U-values and infiltration to a geometry.
func ComputeBreakdown(g Geometry, th ThermalInput) Breakdown {
	b := Breakdown{
		Wall:   th.UWall * g.WallAreaNet * th.DeltaT / 1000,
		Roof:   th.URoof * g.RoofArea * th.DeltaT / 1000,
		Floor:  th.UFloor * g.FloorAreaSingle * th.DeltaT / 1000, // ground slab only
		Window: th.UWindow * g.WindowArea * th.DeltaT / 1000,
	}
	b.Hull = b.Wall + b.Roof + b.Floor + b.Window
	b.Infiltration = th.Infiltration * g.Volume * th.DeltaT / 1000
	b.Total = b.Hull + b.Infiltration
	return b
}

// Part returns the value of a single component.
func (b Breakdown) Part(c Component) float64 {
	switch c {
	case ComponentWall:
		return b.Wall
	case ComponentRoof:
		return b.Roof
	case ComponentFloor:
		return b.Floor
	case ComponentWindow:
		return b.Window
	case ComponentInfiltration:
		return b.Infiltration
	default:
		return 0
	}
}
