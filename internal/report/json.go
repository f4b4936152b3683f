package report

import (
	"encoding/json"
	"io"

	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

func WriteJSON(w io.Writer, exp heatload.Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}
