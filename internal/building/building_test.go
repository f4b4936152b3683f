package building

import (
	"errors"
	"sync"
	"testing"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

func assertError(t *testing.T, err error, expected error) {
	t.Helper()
	if !errors.Is(err, expected) {
		t.Fatalf("expected %v, got %v", expected, err)
	}
}

func assertEqual[T comparable](t *testing.T, name string, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %v, want %v", name, got, want)
	}
}

func newTestBuilding(t *testing.T, opts ...func(*heatload.DetailedInput)) *Building {
	t.Helper()
	in := heatload.DefaultDetailedInput()
	for _, opt := range opts {
		opt(&in)
	}
	b, err := New("test", in)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return b
}

func TestNewRejectsInvalidInput(t *testing.T) {
	in := heatload.DefaultDetailedInput()
	in.WindowArea = 80
	_, err := New("x", in)
	assertError(t, err, heatload.ErrWindowAreaExceedsWall)

	in = heatload.DefaultDetailedInput()
	in.RidgeAxis = heatload.RidgeAxisUnknown
	_, err = New("x", in)
	assertError(t, err, heatload.ErrInvalidRidgeAxis)
}

func TestGetComputesResult(t *testing.T) {
	b := newTestBuilding(t)
	s := b.Get()
	assertEqual(t, "id", s.ID, "test")
	assertEqual(t, "volume", s.Result.Geometry.Volume, 150.0)
	if s.Result.Breakdown.Total <= 0 {
		t.Fatalf("expected positive total, got %v", s.Result.Breakdown.Total)
	}
}

func TestSetUpdatesResult(t *testing.T) {
	b := newTestBuilding(t)
	before := b.Get().Result.Breakdown.Total

	assertError(t, b.Set(FieldDeltaT, 40), nil)
	s := b.Get()
	assertEqual(t, "delta_t", s.Input.DeltaT, 40.0)
	if !(s.Result.Breakdown.Total > before) {
		t.Fatalf("total should grow with delta t: before=%v after=%v", before, s.Result.Breakdown.Total)
	}
}

func TestSetEveryField(t *testing.T) {
	values := map[Field]float64{
		FieldLengthA:      12,
		FieldLengthB:      6,
		FieldRoomHeight:   2.8,
		FieldFloors:       2,
		FieldRoofPitch:    45,
		FieldWindowArea:   20,
		FieldUWall:        0.3,
		FieldUWindow:      1.1,
		FieldURoof:        0.25,
		FieldUFloor:       0.4,
		FieldDeltaT:       25,
		FieldInfiltration: 0.05,
	}
	for _, f := range Fields {
		t.Run(f.String(), func(t *testing.T) {
			b := newTestBuilding(t)
			assertError(t, b.Set(f, values[f]), nil)
			assertEqual(t, f.String(), f.Value(b.Get().Input), values[f])
		})
	}
}

func TestSetRejectsInvalidAndKeepsState(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value float64
		want  error
	}{
		{"negative length", FieldLengthA, -1, heatload.ErrInvalidInput},
		{"fractional floors", FieldFloors, 1.5, heatload.ErrInvalidFloors},
		{"zero floors", FieldFloors, 0, heatload.ErrInvalidFloors},
		{"window too large", FieldWindowArea, 46, heatload.ErrWindowAreaExceedsWall},
		{"shrinking walls below window", FieldRoomHeight, 1, heatload.ErrWindowAreaExceedsWall},
		{"unknown field", FieldUnknown, 1, ErrUnknownField},
		{"overflowing length", FieldLengthA, 1e308, heatload.ErrInvalidInput},
		{"overflowing delta t", FieldDeltaT, 1e308, heatload.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilding(t)
			before := b.Get()
			assertError(t, b.Set(tt.field, tt.value), tt.want)
			after := b.Get()
			if after.Input != before.Input || after.Result.Breakdown != before.Result.Breakdown {
				t.Fatalf("state changed after rejected Set")
			}
		})
	}
}

func TestSetRidgeAxis(t *testing.T) {
	b := newTestBuilding(t)
	roofA := b.Get().Result.Geometry.RoofArea

	assertError(t, b.SetRidgeAxis(heatload.RidgeAxisB), nil)
	s := b.Get()
	assertEqual(t, "ridge", s.Input.RidgeAxis, heatload.RidgeAxisB)
	if s.Result.Geometry.RoofArea == roofA {
		t.Fatalf("roof area should change with ridge axis")
	}

	assertError(t, b.SetRidgeAxis(heatload.RidgeAxisUnknown), heatload.ErrInvalidRidgeAxis)
}

func TestApplyPreset(t *testing.T) {
	b := newTestBuilding(t)

	p := b.ApplyPreset("Neubau")
	assertEqual(t, "name", p.Name, "Neubau")
	s := b.Get()
	assertEqual(t, "preset", s.Preset, "Neubau")
	assertEqual(t, "u_wall", s.Input.UWall, p.UWall)
	assertEqual(t, "delta_t", s.Input.DeltaT, 20.0)

	// manual U-value edits detach the preset label
	assertError(t, b.Set(FieldUWall, 0.5), nil)
	assertEqual(t, "preset", b.Get().Preset, "")

	p = b.ApplyPreset("does-not-exist")
	assertEqual(t, "fallback", p.Name, heatload.DefaultPresetName)
	assertEqual(t, "preset", b.Get().Preset, heatload.DefaultPresetName)
}

func TestSetInput(t *testing.T) {
	b := newTestBuilding(t)
	in := heatload.DefaultDetailedInput()
	in.Floors = 3

	assertError(t, b.SetInput(in), nil)
	assertEqual(t, "floors", b.Get().Input.Floors, 3)

	in.LengthB = 0
	assertError(t, b.SetInput(in), heatload.ErrInvalidInput)
	assertEqual(t, "length_b", b.Get().Input.LengthB, 5.0)
}

func TestUpdateCommitsOnce(t *testing.T) {
	b := newTestBuilding(t)

	// Lowering the height first would leave the window larger than the walls.
	err := b.Update(func(in *heatload.DetailedInput) error {
		if err := FieldRoomHeight.Apply(in, 1.5); err != nil {
			return err
		}
		return FieldWindowArea.Apply(in, 20)
	})
	assertError(t, err, nil)
	s := b.Get()
	assertEqual(t, "room_height", s.Input.RoomHeight, 1.5)
	assertEqual(t, "window_area", s.Input.WindowArea, 20.0)
	assertEqual(t, "wall_area_net", s.Result.Geometry.WallAreaNet, 2.5)
}

func TestUpdateRejectsAndKeepsState(t *testing.T) {
	b := newTestBuilding(t)
	b.ApplyPreset("Neubau")
	before := b.Get()

	err := b.Update(func(in *heatload.DetailedInput) error {
		if err := FieldLengthA.Apply(in, 20); err != nil {
			return err
		}
		return FieldFloors.Apply(in, 0)
	})
	assertError(t, err, heatload.ErrInvalidFloors)

	err = b.Update(func(in *heatload.DetailedInput) error {
		return FieldWindowArea.Apply(in, 500)
	})
	assertError(t, err, heatload.ErrWindowAreaExceedsWall)

	after := b.Get()
	if after.Input != before.Input {
		t.Fatalf("input changed after rejected Update: %+v", after.Input)
	}
	assertEqual(t, "preset", after.Preset, "Neubau")
}

func TestUpdateDetachesPresetOnThermalChange(t *testing.T) {
	b := newTestBuilding(t)
	b.ApplyPreset("Altbau")

	assertError(t, b.Update(func(in *heatload.DetailedInput) error { return FieldLengthA.Apply(in, 11) }), nil)
	assertEqual(t, "preset after geometry change", b.Get().Preset, "Altbau")

	assertError(t, b.Update(func(in *heatload.DetailedInput) error { return FieldURoof.Apply(in, 0.9) }), nil)
	assertEqual(t, "preset after thermal change", b.Get().Preset, "")
}

func TestSnapshotDocument(t *testing.T) {
	b := newTestBuilding(t)
	b.ApplyPreset("Altbau")

	doc := b.Get().Document()
	assertEqual(t, "device_id", doc.DeviceID, "test")
	assertEqual(t, "preset", doc.Preset, "Altbau")
	assertEqual(t, "total", doc.Results.Total, b.Get().Result.Breakdown.Total)
	if len(doc.Advisories) != len(b.Get().Result.Advisories) {
		t.Fatalf("advisories = %v", doc.Advisories)
	}
}

func TestConcurrentAccess(t *testing.T) {
	b := newTestBuilding(t)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = b.Set(FieldDeltaT, float64(10+i))
		}()
		go func() {
			defer wg.Done()
			s := b.Get()
			if s.Result.Breakdown.Hull+s.Result.Breakdown.Infiltration != s.Result.Breakdown.Total {
				t.Errorf("inconsistent snapshot")
			}
		}()
	}
	wg.Wait()
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Fatalf("ParseField(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseField("fan_speed"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if FieldUnknown.Valid() {
		t.Fatal("FieldUnknown must not be valid")
	}
}
