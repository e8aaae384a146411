package model

// KPIPhase is the state of the KPI computation, keyed by the number of
// closed events.
type KPIPhase int

const (
	PhaseNone   KPIPhase = 0 // no closed events
	PhaseSingle KPIPhase = 1 // exactly one closed event
	PhaseMulti  KPIPhase = 2 // two or more closed events
)

func (p KPIPhase) String() string {
	switch p {
	case PhaseNone:
		return "NONE"
	case PhaseSingle:
		return "SINGLE"
	case PhaseMulti:
		return "MULTI"
	}
	return "UNKNOWN"
}

// KPIResult holds the reliability metrics for one filtered dataset.
type KPIResult struct {
	ClosedCount int `json:"closed_count"`
	OpenCount   int `json:"open_count"`
	TotalCount  int `json:"total_count"`

	// ExcludedClosed counts closed events left out of MTTR and downtime
	// sums because their duration is unknown.
	ExcludedClosed int `json:"excluded_closed"`

	Phase          KPIPhase `json:"phase"`
	SufficientData bool     `json:"sufficient_data"`
	// DegenerateWindow is set when two or more closed events do not span a
	// measurable period of time.
	DegenerateWindow bool `json:"degenerate_window,omitempty"`

	MTTR             float64 `json:"mttr"`
	TotalDowntime    float64 `json:"total_downtime"`
	PeriodSpanHours  float64 `json:"period_span_hours"`
	OperationalHours float64 `json:"operational_hours"`
	MTBF             float64 `json:"mtbf"`
	AvailabilityPct  float64 `json:"availability_pct"`

	MaintenanceEfficiencyPct float64 `json:"maintenance_efficiency_pct"`
	FailureRate              float64 `json:"failure_rate"`
	ReliabilityPct           float64 `json:"reliability_pct"`
}
