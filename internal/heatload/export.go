package heatload

// Export is the serialised form of one detailed calculation.
type Export struct {
	Inputs   DetailedInput `json:"inputs"`
	Geometry Geometry      `json:"geometry"`
	Results  ExportResults `json:"results_kW"`
}

type ExportResults struct {
	Total        float64            `json:"total"`
	Hull         float64            `json:"hull"`
	Infiltration float64            `json:"infiltration"`
	Parts        map[string]float64 `json:"parts"`
}

func NewExport(in DetailedInput, res DetailedResult) Export {
	parts := make(map[string]float64, len(Components))
	for _, c := range Components {
		parts[c.Label()] = res.Breakdown.Part(c)
	}
	return Export{
		Inputs:   in,
		Geometry: res.Geometry,
		Results: ExportResults{
			Total:        res.Breakdown.Total,
			Hull:         res.Breakdown.Hull,
			Infiltration: res.Breakdown.Infiltration,
			Parts:        parts,
		},
	}
}

// Document is an export together with the per-area figure and advisory
// texts, as returned by the calculation endpoints.
type Document struct {
	PerFloorArea float64  `json:"per_floor_area_kW_m2"`
	Advisories   []string `json:"advisories"`
	Export
}

func NewDocument(in DetailedInput, res DetailedResult) Document {
	return Document{
		PerFloorArea: res.PerFloorArea,
		Advisories:   AdvisoryMessages(res.Advisories),
		Export:       NewExport(in, res),
	}
}
