package heatload

import "math"

// CosPitchEpsilon floors cos(pitch) so a pitch close to 90° stays finite.
const CosPitchEpsilon = 1e-6

// GeometryInput describes a rectangular footprint with a gable roof.
type GeometryInput struct {
	LengthA    float64   `json:"length_a_m" validate:"gt=0"`
	LengthB    float64   `json:"length_b_m" validate:"gt=0"`
	RoomHeight float64   `json:"room_height_m" validate:"gt=0"`
	Floors     int       `json:"floors" validate:"min=1"`
	RoofPitch  float64   `json:"roof_pitch_deg" validate:"gte=0,lt=90"`
	RidgeAxis  RidgeAxis `json:"ridge_axis"`
	WindowArea float64   `json:"window_area_m2" validate:"gte=0"`
}

type Geometry struct {
	FloorAreaSingle float64 `json:"floor_area_single"`
	GrossFloorArea  float64 `json:"gross_floor_area"`
	Volume          float64 `json:"volume"`
	RoofArea        float64 `json:"roof_area"`
	WallAreaGross   float64 `json:"wall_area_gross"`
	WallAreaNet     float64 `json:"wall_area_net"`
	WindowArea      float64 `json:"window_area"`
}

// ComputeGeometry derives areas and volume. Inputs are expected to be
// validated by the caller.
func ComputeGeometry(in GeometryInput) Geometry {
	floors := float64(in.Floors)
	single := in.LengthA * in.LengthB

	// The roof spans the side perpendicular to the ridge.
	cosPitch := math.Max(math.Cos(in.RoofPitch*math.Pi/180), CosPitchEpsilon)
	var roof float64
	if in.RidgeAxis == RidgeAxisA {
		roof = (in.LengthB / cosPitch) * in.LengthA
	} else {
		roof = (in.LengthA / cosPitch) * in.LengthB
	}

	// Perimeter half-sum times height, no factor 2.
	wallGross := (in.LengthA + in.LengthB) * in.RoomHeight * floors

	return Geometry{
		FloorAreaSingle: single,
		GrossFloorArea:  single * floors,
		Volume:          single * in.RoomHeight * floors,
		RoofArea:        roof,
		WallAreaGross:   wallGross,
		WallAreaNet:     math.Max(wallGross-in.WindowArea, 0),
		WindowArea:      in.WindowArea,
	}
}

// WallAreaGross returns the gross wall area without computing the rest of
// the geometry.
func (in GeometryInput) WallAreaGross() float64 {
	return (in.LengthA + in.LengthB) * in.RoomHeight * float64(in.Floors)
}
