package heatload

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRidgeAxisValid(t *testing.T) {
	cases := []struct {
		r    RidgeAxis
		want bool
	}{
		{RidgeAxisUnknown, false},
		{RidgeAxisA, true},
		{RidgeAxisB, true},
		{RidgeAxis(99), false},
	}

	for _, tc := range cases {
		if got := tc.r.Valid(); got != tc.want {
			t.Fatalf("RidgeAxis(%d).Valid()=%v want %v", tc.r, got, tc.want)
		}
	}
}

func TestParseRidgeAxis_Table(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    RidgeAxis
		wantErr bool
	}{
		{"upper A", "A", RidgeAxisA, false},
		{"lower b", "b", RidgeAxisB, false},
		{"padded", " A ", RidgeAxisA, false},
		{"invalid", "C", RidgeAxisUnknown, true},
		{"empty", "", RidgeAxisUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRidgeAxis(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRidgeAxis) {
					t.Fatalf("ParseRidgeAxis(%q) expected ErrInvalidRidgeAxis, got %v", tc.in, err)
				}
			} else if err != nil {
				t.Fatalf("ParseRidgeAxis(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseRidgeAxis(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestComponentLabels(t *testing.T) {
	want := []string{"Wand", "Dach", "Boden", "Fenster", "Infiltration"}
	for i, c := range Components {
		if c.Label() != want[i] {
			t.Fatalf("%s label = %q, want %q", c, c.Label(), want[i])
		}
	}
}

func TestDetailedInputJSONUsesExportKeys(t *testing.T) {
	b, err := json.Marshal(DefaultDetailedInput())
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	keys := []string{
		"length_a_m", "length_b_m", "room_height_m", "floors", "roof_pitch_deg",
		"ridge_axis", "window_area_m2", "u_wall_W_m2K", "u_window_W_m2K",
		"u_roof_W_m2K", "u_floor_W_m2K", "delta_t_K", "infiltration_W_m3K",
	}
	if len(got) != len(keys) {
		t.Fatalf("expected %d keys, got %d: %v", len(keys), len(got), got)
	}
	for _, k := range keys {
		if _, ok := got[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}
	if got["ridge_axis"] != "A" {
		t.Fatalf("ridge_axis = %v, want A", got["ridge_axis"])
	}

	var back DetailedInput
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("json.Unmarshal into DetailedInput: %v", err)
	}
	if back != DefaultDetailedInput() {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
