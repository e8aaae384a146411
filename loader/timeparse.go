package loader

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/ftahirops/mtop/util"
)

// layouts are tried before falling back to dateparse.
var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime coerces a cell to a timestamp. Times without a zone are UTC.
func parseTime(s string, serialDates bool) (time.Time, bool) {
	if serialDates {
		if v, ok := util.ParseFloat64(s); ok {
			return util.ExcelSerialTime(v)
		}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
