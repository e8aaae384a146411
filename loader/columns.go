package loader

import (
	"github.com/ftahirops/mtop/model"
	"github.com/ftahirops/mtop/util"
)

// canonicalColumns are matched against headers in this order.
var canonicalColumns = []string{
	model.ColStart, model.ColEnd, model.ColStatus, model.ColDowntime,
	model.ColLocation, model.ColEquipment, model.ColCause,
}

// resolveColumns maps canonical column names to header indexes. A header
// equal to the canonical name always matches; aliases add alternatives.
// The first matching header wins.
func resolveColumns(headers []string, aliases map[string][]string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := util.NormalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	cols := make(map[string]int)
	for _, canon := range canonicalColumns {
		names := append([]string{canon}, aliases[canon]...)
		for _, name := range names {
			if idx, ok := index[util.NormalizeHeader(name)]; ok {
				cols[canon] = idx
				break
			}
		}
	}
	return cols
}
