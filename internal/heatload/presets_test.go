package heatload

import "testing"

func TestLookupPresetKnown(t *testing.T) {
	for _, name := range []string{"Altbau", "Teilsaniert", "Neubau", "Passivhaus"} {
		t.Run(name, func(t *testing.T) {
			p := LookupPreset(name)
			if p.Name != name {
				t.Fatalf("LookupPreset(%q).Name = %q", name, p.Name)
			}
			if p.UWall <= 0 || p.UWindow <= 0 || p.URoof <= 0 || p.UFloor <= 0 || p.Infiltration < 0 {
				t.Fatalf("preset %q has invalid values: %+v", name, p)
			}
		})
	}
}

func TestLookupPresetFallsBackToDefault(t *testing.T) {
	want := LookupPreset("Teilsaniert")
	for _, name := range []string{"Unknown", "", "Plattenbau"} {
		if got := LookupPreset(name); got != want {
			t.Fatalf("LookupPreset(%q) = %+v, want %+v", name, got, want)
		}
	}
}

func TestLookupPresetIgnoresCaseAndSpace(t *testing.T) {
	if got := LookupPreset("  neubau "); got.Name != "Neubau" {
		t.Fatalf("got %q, want Neubau", got.Name)
	}
	if !HasPreset("PASSIVHAUS") {
		t.Fatal("expected HasPreset(PASSIVHAUS)")
	}
	if HasPreset("Unknown") {
		t.Fatal("expected HasPreset(Unknown) false")
	}
}

func TestPresetsOrderedFromWorstToBest(t *testing.T) {
	ps := Presets()
	if len(ps) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(ps))
	}
	for i := 1; i < len(ps); i++ {
		if ps[i].UWall >= ps[i-1].UWall {
			t.Fatalf("%s u_wall %v not below %s u_wall %v", ps[i].Name, ps[i].UWall, ps[i-1].Name, ps[i-1].UWall)
		}
	}

	ps[0].UWall = 99
	if LookupPreset(ps[0].Name).UWall == 99 {
		t.Fatal("Presets() must return a copy")
	}
}

func TestPresetApplyKeepsDeltaT(t *testing.T) {
	th := ThermalInput{UWall: 3, UWindow: 3, URoof: 3, UFloor: 3, Infiltration: 1, DeltaT: 27}
	got := LookupPreset("Neubau").Apply(th)
	if got.DeltaT != 27 {
		t.Fatalf("delta_t = %v, want 27", got.DeltaT)
	}
	if got.UWall != 0.24 || got.Infiltration != 0.04 {
		t.Fatalf("preset not applied: %+v", got)
	}
}
