package astro

import "time"

// ObservationGroup holds every valid record for one observation, split by date.
type ObservationGroup struct {
	Name  string
	Dates []*DateGroup
}

// DateGroup holds the captures taken for an observation on one date.
type DateGroup struct {
	Date     time.Time
	Captures []*CaptureGroup
}

// CaptureGroup is the leaf group: the records of a single capture run, sorted
// by extension and then file name.
type CaptureGroup struct {
	Name  string
	Files Files
}

// Group builds the observation → date → capture hierarchy over valid records.
// Groups appear in the order their first record appears in fs.
func Group(fs Files) []*ObservationGroup {
	var groups []*ObservationGroup
	byObservation := map[string]*ObservationGroup{}
	type dateKey struct {
		observation string
		date        time.Time
	}
	type captureKey struct {
		dateKey
		capture string
	}
	byDate := map[dateKey]*DateGroup{}
	byCapture := map[captureKey]*CaptureGroup{}

	for _, f := range fs {
		if f == nil || !f.Valid {
			continue
		}
		og, ok := byObservation[f.Observation]
		if !ok {
			og = &ObservationGroup{Name: f.Observation}
			byObservation[f.Observation] = og
			groups = append(groups, og)
		}
		dk := dateKey{observation: f.Observation, date: f.ObservationDate}
		dg, ok := byDate[dk]
		if !ok {
			dg = &DateGroup{Date: f.ObservationDate}
			byDate[dk] = dg
			og.Dates = append(og.Dates, dg)
		}
		ck := captureKey{dateKey: dk, capture: f.Capture}
		cg, ok := byCapture[ck]
		if !ok {
			cg = &CaptureGroup{Name: f.Capture}
			byCapture[ck] = cg
			dg.Captures = append(dg.Captures, cg)
		}
		cg.Files = append(cg.Files, f)
	}

	for _, og := range groups {
		for _, dg := range og.Dates {
			for _, cg := range dg.Captures {
				SortByExtensionThenName(cg.Files)
			}
		}
	}
	return groups
}
