package heatload

import (
	"encoding/json"
	"testing"
)

func TestNewExport(t *testing.T) {
	in := DefaultDetailedInput()
	res, err := Detailed(in)
	if err != nil {
		t.Fatalf("Detailed() failed: %v", err)
	}
	exp := NewExport(in, res)

	b, err := json.Marshal(exp)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var got struct {
		Inputs   map[string]any     `json:"inputs"`
		Geometry map[string]float64 `json:"geometry"`
		Results  struct {
			Total        float64            `json:"total"`
			Hull         float64            `json:"hull"`
			Infiltration float64            `json:"infiltration"`
			Parts        map[string]float64 `json:"parts"`
		} `json:"results_kW"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	if len(got.Inputs) != 13 {
		t.Fatalf("expected 13 inputs, got %d", len(got.Inputs))
	}
	for _, k := range []string{"floor_area_single", "gross_floor_area", "volume", "roof_area", "wall_area_gross", "wall_area_net", "window_area"} {
		if _, ok := got.Geometry[k]; !ok {
			t.Fatalf("geometry missing %q", k)
		}
	}
	if got.Results.Total != res.Breakdown.Total || got.Results.Hull != res.Breakdown.Hull {
		t.Fatalf("results mismatch: %+v", got.Results)
	}
	if got.Results.Parts["Fenster"] != res.Breakdown.Window || got.Results.Parts["Infiltration"] != res.Breakdown.Infiltration {
		t.Fatalf("parts mismatch: %v", got.Results.Parts)
	}
	if len(got.Results.Parts) != 5 {
		t.Fatalf("expected 5 parts, got %v", got.Results.Parts)
	}
}

func TestNewDocumentFlattensExport(t *testing.T) {
	in := DefaultDetailedInput()
	res, err := Detailed(in)
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(NewDocument(in, res))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"per_floor_area_kW_m2", "advisories", "inputs", "geometry", "results_kW"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing key %q in %s", key, b)
		}
	}
}
