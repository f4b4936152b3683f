package heatload

import (
	"fmt"
	"math"
)

const (
	// EnvelopeAdvisoryKW is the hull loss above which a renovation hint is given.
	EnvelopeAdvisoryKW = 1.0
	// AirtightnessAdvisory is the infiltration coefficient above which an
	// airtightness hint is given.
	AirtightnessAdvisory = 0.3
)

type Advisory string

const (
	AdvisoryEnvelope     Advisory = "envelope"
	AdvisoryAirtightness Advisory = "airtightness"
)

func (a Advisory) Message() string {
	switch a {
	case AdvisoryEnvelope:
		return "Hohe Wärmeverluste über die Gebäudehülle, eine energetische Sanierung prüfen."
	case AdvisoryAirtightness:
		return "Hoher Infiltrationskoeffizient, die Luftdichtheit des Gebäudes prüfen."
	default:
		return string(a)
	}
}

// AdvisoryMessages returns the display text of each advisory.
func AdvisoryMessages(as []Advisory) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Message())
	}
	return out
}

// DetailedInput is the flat input set of the envelope estimate. Its JSON
// form matches the "inputs" object of an export.
type DetailedInput struct {
	GeometryInput
	ThermalInput
}

type DetailedResult struct {
	Geometry     Geometry
	Breakdown    Breakdown
	PerFloorArea float64 // kW per m² gross floor area
	Advisories   []Advisory
}

// DefaultDetailedInput mirrors the defaults of the interactive form.
func DefaultDetailedInput() DetailedInput {
	return DetailedInput{
		GeometryInput: GeometryInput{
			LengthA:    10,
			LengthB:    5,
			RoomHeight: 3,
			Floors:     1,
			RoofPitch:  30,
			RidgeAxis:  RidgeAxisA,
			WindowArea: 25,
		},
		ThermalInput: ThermalInput{
			UWall:        2.0,
			UWindow:      6.0,
			URoof:        2.0,
			UFloor:       2.0,
			DeltaT:       20,
			Infiltration: 0.25,
		},
	}
}

// Detailed runs geometry and transmission for in. Only the window invariant
// and finite results are checked here; range validation belongs to the
// caller (see Validate).
func Detailed(in DetailedInput) (DetailedResult, error) {
	if err := CheckWindowArea(in.GeometryInput); err != nil {
		return DetailedResult{}, err
	}
	g := ComputeGeometry(in.GeometryInput)
	b := ComputeBreakdown(g, in.ThermalInput)
	if err := checkFinite(
		g.FloorAreaSingle, g.GrossFloorArea, g.Volume, g.RoofArea, g.WallAreaGross, g.WallAreaNet,
		b.Wall, b.Roof, b.Floor, b.Window, b.Infiltration, b.Total,
	); err != nil {
		return DetailedResult{}, err
	}

	res := DetailedResult{Geometry: g, Breakdown: b}
	if g.GrossFloorArea > 0 {
		res.PerFloorArea = b.Total / g.GrossFloorArea
	}
	if err := checkFinite(res.PerFloorArea); err != nil {
		return DetailedResult{}, err
	}
	if b.Hull > EnvelopeAdvisoryKW {
		res.Advisories = append(res.Advisories, AdvisoryEnvelope)
	}
	if in.Infiltration > AirtightnessAdvisory {
		res.Advisories = append(res.Advisories, AdvisoryAirtightness)
	}
	return res, nil
}

// checkFinite rejects results that overflowed; they cannot be encoded as JSON.
func checkFinite(vs ...float64) error {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: result out of range", ErrInvalidInput)
		}
	}
	return nil
}
