package model

import "time"

// Selection narrows a dataset. Empty slices mean "all values". From and To
// are calendar days; both ends are inclusive.
type Selection struct {
	Locations []string   `json:"locations,omitempty"`
	Equipment []string   `json:"equipment,omitempty"`
	Statuses  []string   `json:"statuses,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
}

// Warning represents an informational or warning message for the user.
type Warning struct {
	Severity string `json:"severity"` // "info", "warn", "crit"
	Signal   string `json:"signal"`   // short label
	Detail   string `json:"detail"`   // explanation
	Value    string `json:"value,omitempty"`
}

// Count is one bar or pie slice.
type Count struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthPoint is one point of the monthly trend.
type MonthPoint struct {
	Month string  `json:"month"` // YYYY-MM
	Value float64 `json:"value"`
}

// Charts holds the aggregated series behind every chart. A nil series means
// the column it depends on is absent.
type Charts struct {
	ByLocation       []Count      `json:"by_location,omitempty"`
	ByEquipment      []Count      `json:"by_equipment,omitempty"`
	MonthlyTrend     []MonthPoint `json:"monthly_trend,omitempty"`
	TrendIsDowntime  bool         `json:"trend_is_downtime"` // false: trend counts stops
	MaintenanceTypes []Count      `json:"maintenance_types,omitempty"`
	CauseKeywords    []Count      `json:"cause_keywords,omitempty"`
}

// PyramidLevel is one tier of the fixed safety-event ratio.
type PyramidLevel struct {
	Level       string `json:"level"`
	Count       int    `json:"count"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// RecommendationGroup is a priority bucket of recommendations.
type RecommendationGroup struct {
	Priority string   `json:"priority"`
	Items    []string `json:"items"`
}

// Report is everything the presentation layer renders for one selection.
type Report struct {
	GeneratedAt     time.Time             `json:"generated_at"`
	Info            DatasetInfo           `json:"dataset"`
	Schema          Schema                `json:"schema"`
	Selection       Selection             `json:"selection"`
	Filtered        int                   `json:"filtered"`
	KPI             KPIResult             `json:"kpi"`
	Charts          Charts                `json:"charts"`
	Pyramid         []PyramidLevel        `json:"pyramid"`
	Recommendations []RecommendationGroup `json:"recommendations"`
	Warnings        []Warning             `json:"warnings,omitempty"`
}
