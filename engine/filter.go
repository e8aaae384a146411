package engine

import (
	"time"

	"github.com/ftahirops/mtop/model"
)

// Facets lists the distinct filterable values of a dataset, in order of
// first appearance, and the range of start dates.
type Facets struct {
	Locations []string
	Equipment []string
	Statuses  []string
	First     *time.Time
	Last      *time.Time
}

// BuildFacets collects the distinct values of every facet whose column
// exists.
func BuildFacets(ds *model.Dataset) Facets {
	var f Facets
	seenLoc := map[string]bool{}
	seenEq := map[string]bool{}
	seenSt := map[string]bool{}
	for _, r := range ds.Records {
		if ds.Schema.HasLocation && !seenLoc[r.Location] {
			seenLoc[r.Location] = true
			f.Locations = append(f.Locations, r.Location)
		}
		if ds.Schema.HasEquipment && !seenEq[r.Equipment] {
			seenEq[r.Equipment] = true
			f.Equipment = append(f.Equipment, r.Equipment)
		}
		if !seenSt[r.Status] {
			seenSt[r.Status] = true
			f.Statuses = append(f.Statuses, r.Status)
		}
		if r.Start != nil {
			if f.First == nil || r.Start.Before(*f.First) {
				t := *r.Start
				f.First = &t
			}
			if f.Last == nil || r.Start.After(*f.Last) {
				t := *r.Start
				f.Last = &t
			}
		}
	}
	return f
}

// DefaultSelection selects every facet value and the full date range.
func DefaultSelection(ds *model.Dataset) model.Selection {
	f := BuildFacets(ds)
	sel := model.Selection{
		Locations: f.Locations,
		Equipment: f.Equipment,
		Statuses:  f.Statuses,
	}
	if f.First != nil {
		from := startOfDay(*f.First)
		to := startOfDay(*f.Last)
		sel.From, sel.To = &from, &to
	}
	return sel
}

// ApplyFilter returns the records matching sel. The dataset is not
// modified. A facet filters only when its column exists and its list is
// non-empty; an empty list places no restriction on that facet. A record
// passes the date range when From 00:00 <= start < To+1 day 00:00; records
// without a start time fail an active range.
func ApplyFilter(ds *model.Dataset, sel model.Selection) []model.Record {
	loc := toSet(sel.Locations, ds.Schema.HasLocation)
	eq := toSet(sel.Equipment, ds.Schema.HasEquipment)
	st := toSet(sel.Statuses, true)

	var from, until *time.Time
	if sel.From != nil {
		t := startOfDay(*sel.From)
		from = &t
	}
	if sel.To != nil {
		t := startOfDay(*sel.To).AddDate(0, 0, 1)
		until = &t
	}

	out := make([]model.Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if loc != nil && !loc[r.Location] {
			continue
		}
		if eq != nil && !eq[r.Equipment] {
			continue
		}
		if st != nil && !st[r.Status] {
			continue
		}
		if from != nil || until != nil {
			if r.Start == nil {
				continue
			}
			if from != nil && r.Start.Before(*from) {
				continue
			}
			if until != nil && !r.Start.Before(*until) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string, enabled bool) map[string]bool {
	if !enabled || len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
