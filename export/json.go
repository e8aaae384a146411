package export

import (
	"encoding/json"
	"io"

	"github.com/ftahirops/mtop/model"
)

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
