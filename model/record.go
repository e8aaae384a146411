package model

import "time"

// Canonical column names. Source headers are mapped onto these by the loader.
const (
	ColStart     = "Start Time"
	ColEnd       = "End Time"
	ColStatus    = "Status"
	ColDowntime  = "Downtime Hours"
	ColLocation  = "Location"
	ColEquipment = "Equipment"
	ColCause     = "Cause"
)

// Record is one downtime event. Pointer fields are nil when the value is
// absent or could not be parsed.
type Record struct {
	Row           int        `json:"row"` // 1-based data row in the source sheet
	Start         *time.Time `json:"start_time,omitempty"`
	End           *time.Time `json:"end_time,omitempty"`
	Status        string     `json:"status"`
	DowntimeHours *float64   `json:"downtime_hours,omitempty"`
	Location      string     `json:"location,omitempty"`
	Equipment     string     `json:"equipment,omitempty"`
	Cause         string     `json:"cause,omitempty"`

	// Cells holds the raw source cells, aligned with Dataset.Headers.
	Cells []string `json:"-"`
}

// HasDowntime reports whether the record carries a usable duration.
func (r Record) HasDowntime() bool {
	return r.DowntimeHours != nil
}

// Schema records which optional columns the source provided.
type Schema struct {
	HasEnd       bool `json:"has_end"`
	HasDowntime  bool `json:"has_downtime"` // supplied or derived
	DerivedHours bool `json:"derived_hours"`
	HasLocation  bool `json:"has_location"`
	HasEquipment bool `json:"has_equipment"`
	HasCause     bool `json:"has_cause"`
}

// LoadStats counts the coercions applied while loading.
type LoadStats struct {
	Rows              int `json:"rows"`
	UnparsedStart     int `json:"unparsed_start"`
	UnparsedEnd       int `json:"unparsed_end"`
	UnparsedDowntime  int `json:"unparsed_downtime"`
	NegativeDurations int `json:"negative_durations"`
}

// Dataset is a loaded spreadsheet. It is never mutated after loading.
type Dataset struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Headers  []string  `json:"headers"`
	Schema   Schema    `json:"schema"`
	Records  []Record  `json:"-"`
	Stats    LoadStats `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`

	// Columns maps canonical column names to indexes into Headers.
	Columns map[string]int `json:"-"`
}

// DatasetInfo summarizes a dataset for display.
type DatasetInfo struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Total     int        `json:"total"`
	FirstDate *time.Time `json:"first_date,omitempty"`
	LastDate  *time.Time `json:"last_date,omitempty"`
	Columns   []string   `json:"columns"`
	Preview   []Record   `json:"preview"`
	Stats     LoadStats  `json:"stats"`
}
