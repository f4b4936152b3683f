package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

var ErrEmptySheet = errors.New("sheet has no data rows")

const (
	columnName      = "name"
	columnPreset    = "preset"
	columnRidgeAxis = "ridge_axis"
)

// BatchItem is one row of a batch sheet and the outcome of its calculation.
type BatchItem struct {
	Row    int
	Name   string
	Input  heatload.DetailedInput
	Result heatload.DetailedResult
	Err    error
}

// ReadBatch parses a sheet whose header row uses the export input keys,
// plus the optional "name" and "preset" columns. Missing columns keep the
// form defaults; a preset is applied before explicit U-value columns.
// Rows that fail to parse or validate are returned with Err set.
func ReadBatch(r io.Reader, f Format) ([]BatchItem, error) {
	var (
		rows [][]string
		err  error
	)
	switch f {
	case FormatCSV:
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err = cr.ReadAll()
	case FormatXLSX:
		rows, err = readXLSXRows(r)
	default:
		return nil, fmt.Errorf("%w for batch input: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f, err)
	}
	return parseBatch(rows)
}

func readXLSXRows(r io.Reader) ([][]string, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	return x.GetRows(x.GetSheetName(0))
}

func parseBatch(rows [][]string) ([]BatchItem, error) {
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
		if err := checkColumn(header[i]); err != nil {
			return nil, err
		}
	}

	items := make([]BatchItem, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		item := BatchItem{Row: i + 2}
		item.Name, item.Input, item.Err = parseRow(header, cells)
		if item.Err == nil {
			item.Err = item.Input.Validate()
		}
		if item.Err == nil {
			item.Result, item.Err = heatload.Detailed(item.Input)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, ErrEmptySheet
	}
	return items, nil
}

// checkColumn rejects header cells that name no input, so a misspelt
// column cannot silently fall back to the default value.
func checkColumn(h string) error {
	switch h {
	case "", columnName, columnPreset, columnRidgeAxis:
		return nil
	}
	if _, err := building.ParseField(h); err != nil {
		return fmt.Errorf("column %w", err)
	}
	return nil
}

func parseRow(header, cells []string) (string, heatload.DetailedInput, error) {
	in := heatload.DefaultDetailedInput()
	values := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(cells) {
			if v := strings.TrimSpace(cells[i]); v != "" {
				values[h] = v
			}
		}
	}

	if p, ok := values[columnPreset]; ok {
		in.ThermalInput = heatload.LookupPreset(p).Apply(in.ThermalInput)
	}
	if v, ok := values[columnRidgeAxis]; ok {
		axis, err := heatload.ParseRidgeAxis(v)
		if err != nil {
			return "", in, err
		}
		in.RidgeAxis = axis
	}

	var errs []error
	for _, f := range building.Fields {
		v, ok := values[f.String()]
		if !ok {
			continue
		}
		num, err := parseNumber(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		if err := f.Apply(&in, num); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	return values[columnName], in, errors.Join(errs...)
}

// parseNumber accepts a decimal comma as written by German spreadsheets.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var batchHeader = []string{
	"row", "name", "total_kW", "hull_kW", "infiltration_kW",
	"wall_kW", "roof_kW", "floor_kW", "window_kW",
	"gross_floor_area", "volume", "error",
}

func batchRecord(it BatchItem) []any {
	errText := ""
	if it.Err != nil {
		errText = it.Err.Error()
		return []any{it.Row, it.Name, "", "", "", "", "", "", "", "", "", errText}
	}
	b, g := it.Result.Breakdown, it.Result.Geometry
	return []any{
		it.Row, it.Name, b.Total, b.Hull, b.Infiltration,
		b.Wall, b.Roof, b.Floor, b.Window,
		g.GrossFloorArea, g.Volume, errText,
	}
}

// WriteBatch renders batch results as CSV, XLSX or JSON.
func WriteBatch(w io.Writer, f Format, items []BatchItem) error {
	switch f {
	case FormatCSV:
		return writeBatchCSV(w, items)
	case FormatXLSX:
		return writeBatchXLSX(w, items)
	case FormatJSON:
		return writeBatchJSON(w, items)
	default:
		return fmt.Errorf("%w for batch output: %v", ErrUnsupportedFormat, f)
	}
}

func writeBatchCSV(w io.Writer, items []BatchItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchHeader); err != nil {
		return err
	}
	for _, it := range items {
		rec := batchRecord(it)
		line := make([]string, len(rec))
		for i, v := range rec {
			line[i] = formatValue(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeBatchXLSX(w io.Writer, items []BatchItem) error {
	x := excelize.NewFile()
	defer x.Close()
	sheet := x.GetSheetName(0)

	header := make([]any, len(batchHeader))
	for i, h := range batchHeader {
		header[i] = h
	}
	if err := x.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		rec := batchRecord(it)
		if err := x.SetSheetRow(sheet, cell, &rec); err != nil {
			return err
		}
	}
	return x.Write(w)
}

type batchJSON struct {
	Row        int                 `json:"row"`
	Name       string              `json:"name,omitempty"`
	Export     *heatload.Export    `json:"export,omitempty"`
	Advisories []heatload.Advisory `json:"advisories,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func writeBatchJSON(w io.Writer, items []BatchItem) error {
	out := make([]batchJSON, 0, len(items))
	for _, it := range items {
		j := batchJSON{Row: it.Row, Name: it.Name}
		if it.Err != nil {
			j.Error = it.Err.Error()
		} else {
			exp := heatload.NewExport(it.Input, it.Result)
			j.Export = &exp
			j.Advisories = it.Result.Advisories
		}
		out = append(out, j)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
