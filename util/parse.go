package util

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// excelEpoch is day zero of the 1900 date system as Excel counts it
// (including the fictitious 1900-02-29).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseFloat64 parses a cell to float64. Accepts a decimal comma when the
// cell has no dot. Returns false for empty, non-numeric, NaN and Inf cells.
func ParseFloat64(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ExcelSerialTime converts an Excel serial day number to a UTC time.
// Returns false for values outside a plausible range (years 1900-9999).
func ExcelSerialTime(serial float64) (time.Time, bool) {
	if serial < 1 || serial > 2958465 {
		return time.Time{}, false
	}
	days := math.Floor(serial)
	frac := serial - days
	t := excelEpoch.AddDate(0, 0, int(days))
	// Round to the nearest second; serials carry float noise.
	t = t.Add(time.Duration(math.Round(frac*86400)) * time.Second)
	return t, true
}

// NormalizeHeader lowercases a header and collapses inner whitespace.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Words splits text into lowercase words on any non-letter, non-digit rune.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Hours returns d in fractional hours.
func Hours(d time.Duration) float64 {
	return d.Seconds() / 3600
}
