package engine

import "testing"

func TestClassifyMaintenance(t *testing.T) {
	tests := []struct {
		cause string
		want  string
	}{
		{"Preventive wash cycle", TypePreventive},
		{"Brake failure", TypeCorrective},
		{"", TypeUnspecified},
		{"   ", TypeUnspecified},
		{"Manutenção programada", TypePreventive},
		{"LAVAGEM do tanque", TypePreventive},
		{"Scheduled inspection", TypePreventive},
		{"Hydraulic flush", TypePreventive},
		{"Motor overheating", TypeCorrective},
	}
	for _, tt := range tests {
		if got := ClassifyMaintenance(tt.cause, DefaultPreventiveKeywords); got != tt.want {
			t.Errorf("ClassifyMaintenance(%q) = %s, want %s", tt.cause, got, tt.want)
		}
	}
}

func TestClassifyMaintenanceCustomKeywords(t *testing.T) {
	kw := []string{" Inspection "}
	if got := ClassifyMaintenance("Annual inspection", kw); got != TypePreventive {
		t.Errorf("got %s, want %s", got, TypePreventive)
	}
	if got := ClassifyMaintenance("Preventive wash", nil); got != TypeCorrective {
		t.Errorf("no keywords: got %s, want %s", got, TypeCorrective)
	}
}
