package testutil

import (
	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// FakeBuildingService is a reusable fake implementing ports.BuildingService.
// Put ONLY what multiple test packages need here.
type FakeBuildingService struct {
	S building.Snapshot

	SetCalled bool
	SetField  building.Field
	SetValue  float64
	SetErr    error

	UpdateCalled bool
	UpdateErr    error

	SetRidgeAxisCalled bool
	SetRidgeAxisArg    heatload.RidgeAxis
	SetRidgeAxisErr    error

	ApplyPresetCalled bool
	ApplyPresetArg    string
}

func NewFakeBuildingService() *FakeBuildingService {
	in := heatload.DefaultDetailedInput()
	res, _ := heatload.Detailed(in)
	return &FakeBuildingService{
		S: building.Snapshot{ID: "default", Input: in, Result: res},
	}
}

func (f *FakeBuildingService) Get() building.Snapshot { return f.S }

func (f *FakeBuildingService) Set(field building.Field, v float64) error {
	f.SetCalled = true
	f.SetField = field
	f.SetValue = v
	if f.SetErr != nil {
		return f.SetErr
	}
	if field == building.FieldDeltaT {
		f.S.Input.DeltaT = v
		f.recompute()
	}
	return nil
}

func (f *FakeBuildingService) Update(fn func(in *heatload.DetailedInput) error) error {
	f.UpdateCalled = true
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	in := f.S.Input
	if err := fn(&in); err != nil {
		return err
	}
	f.S.Input = in
	f.recompute()
	return nil
}

func (f *FakeBuildingService) SetRidgeAxis(r heatload.RidgeAxis) error {
	f.SetRidgeAxisCalled = true
	f.SetRidgeAxisArg = r
	if f.SetRidgeAxisErr != nil {
		return f.SetRidgeAxisErr
	}
	f.S.Input.RidgeAxis = r
	f.recompute()
	return nil
}

func (f *FakeBuildingService) ApplyPreset(name string) heatload.Preset {
	f.ApplyPresetCalled = true
	f.ApplyPresetArg = name
	p := heatload.LookupPreset(name)
	f.S.Preset = p.Name
	f.S.Input.ThermalInput = p.Apply(f.S.Input.ThermalInput)
	f.recompute()
	return p
}

func (f *FakeBuildingService) recompute() {
	f.S.Result, _ = heatload.Detailed(f.S.Input)
}
