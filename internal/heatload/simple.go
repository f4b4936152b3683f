package heatload

// SimpleHeatLoad is the volumetric rule of thumb: volume (m³) times a
// heat-loss factor (W/(m³·K)) times ΔT (K), in kW.
func SimpleHeatLoad(volume, factor, deltaT float64) float64 {
	return volume * factor * deltaT / 1000
}

type SimpleInput struct {
	FloorArea      float64 `json:"floor_area_m2" validate:"gt=0"`
	RoomHeight     float64 `json:"room_height_m" validate:"gt=0"`
	HeatLossFactor float64 `json:"heat_loss_factor_W_m3K" validate:"gte=0"`
	DeltaT         float64 `json:"delta_t_K"`
}

type SimpleResult struct {
	Volume       float64 `json:"volume_m3"`
	PowerKW      float64 `json:"power_kW"`
	PowerW       float64 `json:"power_W"`
	PerFloorArea float64 `json:"per_floor_area_kW_m2"`
}

func DefaultSimpleInput() SimpleInput {
	return SimpleInput{
		FloorArea:      100,
		RoomHeight:     3,
		HeatLossFactor: 1.5,
		DeltaT:         15,
	}
}

// Simple validates in and runs the volumetric estimate.
func Simple(in SimpleInput) (SimpleResult, error) {
	if err := in.Validate(); err != nil {
		return SimpleResult{}, err
	}
	volume := in.FloorArea * in.RoomHeight
	kw := SimpleHeatLoad(volume, in.HeatLossFactor, in.DeltaT)
	if err := checkFinite(volume, kw, kw*1000, kw/in.FloorArea); err != nil {
		return SimpleResult{}, err
	}
	return SimpleResult{
		Volume:       volume,
		PowerKW:      kw,
		PowerW:       kw * 1000,
		PerFloorArea: kw / in.FloorArea,
	}, nil
}
