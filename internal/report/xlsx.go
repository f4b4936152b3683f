package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

const exportSheet = "Heizlast"

// WriteXLSX writes the export as a single sheet with section/key/value/unit columns.
func WriteXLSX(w io.Writer, exp heatload.Export) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &[]any{"section", "key", "value", "unit"}); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i, r := range exportRows(exp) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &[]any{r.Section, r.Key, r.Value, r.Unit}); err != nil {
			return fmt.Errorf("xlsx row %s: %w", r.Key, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
