package engine

import "strings"

// Maintenance types.
const (
	TypePreventive  = "Preventive"
	TypeCorrective  = "Corrective"
	TypeUnspecified = "Unspecified"
)

// DefaultPreventiveKeywords match English and Portuguese maintenance logs.
var DefaultPreventiveKeywords = []string{"preventiv", "scheduled", "programad", "wash", "flush", "lavagem"}

// ClassifyMaintenance labels a free-text cause as preventive when it
// contains any keyword (case-insensitive), corrective otherwise, and
// unspecified when blank.
func ClassifyMaintenance(cause string, keywords []string) string {
	text := strings.ToLower(strings.TrimSpace(cause))
	if text == "" {
		return TypeUnspecified
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return TypePreventive
		}
	}
	return TypeCorrective
}
