package engine

import "github.com/ftahirops/mtop/model"

// Recommendations returns the fixed strategic recommendations by priority.
func Recommendations() []model.RecommendationGroup {
	return []model.RecommendationGroup{
		{Priority: "High", Items: []string{
			"Implement a preventive maintenance program based on MTBF",
			"Train operators to identify failures early",
			"Keep strategic spare parts for frequent failures",
		}},
		{Priority: "Medium", Items: []string{
			"Daily equipment inspection checklist",
			"Near-miss reporting system",
			"Monthly review of maintenance indicators",
		}},
		{Priority: "Low", Items: []string{
			"Standardize maintenance procedures",
			"Continuous improvement program",
			"Benchmark against industry best practices",
		}},
	}
}

// SafetyActions are the decision-making recommendations shown next to the
// pyramid.
var SafetyActions = []string{
	"Implement a daily safety checklist",
	"Continuous training in safe procedures",
	"Behavior observation program",
	"Root cause analysis for every incident",
	"Reduction targets at the base of the pyramid",
}
