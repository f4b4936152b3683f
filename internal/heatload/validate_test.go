package heatload

import (
	"errors"
	"strings"
	"testing"
)

func TestDetailedInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*DetailedInput)
		want    error
		message string
	}{
		{"defaults", func(*DetailedInput) {}, nil, ""},
		{"zero length", func(in *DetailedInput) { in.LengthA = 0 }, ErrInvalidInput, "length_a_m"},
		{"no floors", func(in *DetailedInput) { in.Floors = 0 }, ErrInvalidInput, "floors"},
		{"vertical roof", func(in *DetailedInput) { in.RoofPitch = 90 }, ErrInvalidInput, "roof_pitch_deg"},
		{"negative window", func(in *DetailedInput) { in.WindowArea = -1 }, ErrInvalidInput, "window_area_m2"},
		{"zero u-value", func(in *DetailedInput) { in.UWindow = 0 }, ErrInvalidInput, "u_window_W_m2K"},
		{"negative infiltration", func(in *DetailedInput) { in.Infiltration = -0.1 }, ErrInvalidInput, "infiltration_W_m3K"},
		{"negative delta t is allowed", func(in *DetailedInput) { in.DeltaT = -5 }, nil, ""},
		{"missing ridge axis", func(in *DetailedInput) { in.RidgeAxis = RidgeAxisUnknown }, ErrInvalidRidgeAxis, ""},
		{"window larger than wall", func(in *DetailedInput) { in.WindowArea = 100 }, ErrWindowAreaExceedsWall, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultDetailedInput()
			tt.modify(&in)
			err := in.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("error %q does not name %q", err, tt.message)
			}
		})
	}
}

func TestCheckWindowArea(t *testing.T) {
	in := DefaultDetailedInput().GeometryInput
	in.WindowArea = in.WallAreaGross()
	if err := CheckWindowArea(in); err != nil {
		t.Fatalf("window equal to wall must pass: %v", err)
	}
	in.WindowArea += 0.01
	if err := CheckWindowArea(in); !errors.Is(err, ErrWindowAreaExceedsWall) {
		t.Fatalf("expected ErrWindowAreaExceedsWall, got %v", err)
	}
}
