// Package report renders heat-load exports as JSON, CSV, PDF or XLSX and
// reads batch input sheets.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatCSV
	FormatPDF
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatPDF:
		return "pdf"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Filename returns a download name for the given base.
func (f Format) Filename(base string) string {
	return base + "." + f.String()
}

// Write renders exp in format f.
func Write(w io.Writer, f Format, exp heatload.Export, meta Meta) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, exp)
	case FormatCSV:
		return WriteCSV(w, exp)
	case FormatPDF:
		return WritePDF(w, exp, meta)
	case FormatXLSX:
		return WriteXLSX(w, exp)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// Meta decorates human-readable reports.
type Meta struct {
	Title      string
	BuildingID string
	Preset     string
	Advisories []heatload.Advisory
}
