package modbusctrl

import (
	"math"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// Register scales. A raw register holds round(value * scale) as int16.
const (
	LengthScale       = 100
	AreaScale         = 10
	VolumeScale       = 1
	AngleScale        = 100
	UValueScale       = 100
	TemperatureScale  = 100
	InfiltrationScale = 1000
	PowerScale        = 100
)

// RidgeAxisRegister is the holding register carrying the ridge axis as
// its enum value (1 = A, 2 = B).
const RidgeAxisRegister = 12

type holdingRegister struct {
	field building.Field
	scale int
}

// holdingRegisters 0..11 follow building.Fields.
var holdingRegisters = []holdingRegister{
	{building.FieldLengthA, LengthScale},
	{building.FieldLengthB, LengthScale},
	{building.FieldRoomHeight, LengthScale},
	{building.FieldFloors, 1},
	{building.FieldRoofPitch, AngleScale},
	{building.FieldWindowArea, AreaScale},
	{building.FieldUWall, UValueScale},
	{building.FieldUWindow, UValueScale},
	{building.FieldURoof, UValueScale},
	{building.FieldUFloor, UValueScale},
	{building.FieldDeltaT, TemperatureScale},
	{building.FieldInfiltration, InfiltrationScale},
}

const holdingCount = RidgeAxisRegister + 1

type inputRegister struct {
	value func(heatload.DetailedResult) float64
	scale int
}

// inputRegisters 0..6 are geometry, 7..13 the breakdown in kW.
var inputRegisters = []inputRegister{
	{func(r heatload.DetailedResult) float64 { return r.Geometry.FloorAreaSingle }, AreaScale},
	{func(r heatload.DetailedResult) float64 { return r.Geometry.GrossFloorArea }, AreaScale},
	{func(r heatload.DetailedResult) float64 { return r.Geometry.Volume }, VolumeScale},
	{func(r heatload.DetailedResult) float64 { return r.Geometry.RoofArea }, AreaScale},
	{func(r heatload.DetailedResult) float64 { return r.Geometry.WallAreaGross }, AreaScale},
	{func(r heatload.DetailedResult) float64 { return r.Geometry.WallAreaNet }, AreaScale},
	{func(r heatload.DetailedResult) float64 { return r.Geometry.WindowArea }, AreaScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Wall }, PowerScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Roof }, PowerScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Floor }, PowerScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Window }, PowerScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Infiltration }, PowerScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Hull }, PowerScale},
	{func(r heatload.DetailedResult) float64 { return r.Breakdown.Total }, PowerScale},
}

// encode saturates at the int16 range.
func encode(v float64, scale int) uint16 {
	r := min(max(int(math.Round(v*float64(scale))), math.MinInt16), math.MaxInt16)
	return uint16(int16(r))
}

func decode(u uint16, scale int) float64 {
	return float64(int16(u)) / float64(scale)
}
