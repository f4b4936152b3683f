package heatload

import (
	"fmt"
	"strings"
)

// RidgeAxis names the footprint side the gable ridge runs along.
type RidgeAxis int

const (
	RidgeAxisUnknown RidgeAxis = iota
	RidgeAxisA
	RidgeAxisB
)

func (r RidgeAxis) Valid() bool {
	return r == RidgeAxisA || r == RidgeAxisB
}

func (r RidgeAxis) String() string {
	switch r {
	case RidgeAxisA:
		return "A"
	case RidgeAxisB:
		return "B"
	default:
		return "unknown"
	}
}

func ParseRidgeAxis(s string) (RidgeAxis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return RidgeAxisA, nil
	case "B":
		return RidgeAxisB, nil
	default:
		return RidgeAxisUnknown, fmt.Errorf("%w: %q", ErrInvalidRidgeAxis, s)
	}
}

func (r RidgeAxis) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RidgeAxis) UnmarshalText(b []byte) error {
	v, err := ParseRidgeAxis(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Component is one term of the heat-loss breakdown.
type Component int

const (
	ComponentWall Component = iota
	ComponentRoof
	ComponentFloor
	ComponentWindow
	ComponentInfiltration
)

// Components lists the breakdown terms in report order.
var Components = []Component{
	ComponentWall,
	ComponentRoof,
	ComponentFloor,
	ComponentWindow,
	ComponentInfiltration,
}

func (c Component) String() string {
	switch c {
	case ComponentWall:
		return "wall"
	case ComponentRoof:
		return "roof"
	case ComponentFloor:
		return "floor"
	case ComponentWindow:
		return "window"
	case ComponentInfiltration:
		return "infiltration"
	default:
		return "unknown"
	}
}

// Label is the German name used in exports.
func (c Component) Label() string {
	switch c {
	case ComponentWall:
		return "Wand"
	case ComponentRoof:
		return "Dach"
	case ComponentFloor:
		return "Boden"
	case ComponentWindow:
		return "Fenster"
	case ComponentInfiltration:
		return "Infiltration"
	default:
		return "Unbekannt"
	}
}
