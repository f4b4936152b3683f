package building

import (
	"fmt"
	"math"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// Field is a numeric input of the building model.
type Field int

const (
	FieldUnknown Field = iota
	FieldLengthA
	FieldLengthB
	FieldRoomHeight
	FieldFloors
	FieldRoofPitch
	FieldWindowArea
	FieldUWall
	FieldUWindow
	FieldURoof
	FieldUFloor
	FieldDeltaT
	FieldInfiltration
)

// Fields lists all numeric inputs in export order.
var Fields = []Field{
	FieldLengthA,
	FieldLengthB,
	FieldRoomHeight,
	FieldFloors,
	FieldRoofPitch,
	FieldWindowArea,
	FieldUWall,
	FieldUWindow,
	FieldURoof,
	FieldUFloor,
	FieldDeltaT,
	FieldInfiltration,
}

var fieldNames = map[Field]string{
	FieldLengthA:      "length_a_m",
	FieldLengthB:      "length_b_m",
	FieldRoomHeight:   "room_height_m",
	FieldFloors:       "floors",
	FieldRoofPitch:    "roof_pitch_deg",
	FieldWindowArea:   "window_area_m2",
	FieldUWall:        "u_wall_W_m2K",
	FieldUWindow:      "u_window_W_m2K",
	FieldURoof:        "u_roof_W_m2K",
	FieldUFloor:       "u_floor_W_m2K",
	FieldDeltaT:       "delta_t_K",
	FieldInfiltration: "infiltration_W_m3K",
}

func (f Field) Valid() bool {
	_, ok := fieldNames[f]
	return ok
}

// String returns the export key of the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

func ParseField(s string) (Field, error) {
	for f, name := range fieldNames {
		if name == s {
			return f, nil
		}
	}
	return FieldUnknown, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Value reads f from in.
func (f Field) Value(in heatload.DetailedInput) float64 {
	switch f {
	case FieldLengthA:
		return in.LengthA
	case FieldLengthB:
		return in.LengthB
	case FieldRoomHeight:
		return in.RoomHeight
	case FieldFloors:
		return float64(in.Floors)
	case FieldRoofPitch:
		return in.RoofPitch
	case FieldWindowArea:
		return in.WindowArea
	case FieldUWall:
		return in.UWall
	case FieldUWindow:
		return in.UWindow
	case FieldURoof:
		return in.URoof
	case FieldUFloor:
		return in.UFloor
	case FieldDeltaT:
		return in.DeltaT
	case FieldInfiltration:
		return in.Infiltration
	default:
		return 0
	}
}

// Apply writes v into field f of in without validating the result.
func (f Field) Apply(in *heatload.DetailedInput, v float64) error {
	switch f {
	case FieldLengthA:
		in.LengthA = v
	case FieldLengthB:
		in.LengthB = v
	case FieldRoomHeight:
		in.RoomHeight = v
	case FieldFloors:
		if v != math.Trunc(v) || v < 1 || v > math.MaxInt32 {
			return heatload.ErrInvalidFloors
		}
		in.Floors = int(v)
	case FieldRoofPitch:
		in.RoofPitch = v
	case FieldWindowArea:
		in.WindowArea = v
	case FieldUWall:
		in.UWall = v
	case FieldUWindow:
		in.UWindow = v
	case FieldURoof:
		in.URoof = v
	case FieldUFloor:
		in.UFloor = v
	case FieldDeltaT:
		in.DeltaT = v
	case FieldInfiltration:
		in.Infiltration = v
	default:
		return ErrUnknownField
	}
	return nil
}
