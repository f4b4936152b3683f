package ports

import (
	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// BuildingService is the control-plane port used by controllers (HTTP/MQTT/etc).
type BuildingService interface {
	Get() building.Snapshot
	Set(f building.Field, v float64) error
	Update(fn func(in *heatload.DetailedInput) error) error
	SetRidgeAxis(heatload.RidgeAxis) error
	ApplyPreset(name string) heatload.Preset
}
