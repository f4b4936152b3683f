package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

// WriteCSV writes one "section,key,value,unit" line per export value.
func WriteCSV(w io.Writer, exp heatload.Export) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "key", "value", "unit"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range exportRows(exp) {
		if err := cw.Write([]string{r.Section, r.Key, formatValue(r.Value), r.Unit}); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
