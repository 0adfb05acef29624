package workflow

import (
	"time"

	"astrocopy/internal/astro"
	"astrocopy/internal/copier"
	"astrocopy/internal/extract"
	"astrocopy/internal/filter"
	"astrocopy/internal/planner"
)

// StageTiming records how long one stage ran.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// Result describes a finished, or aborted, run.
type Result struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Stages   []StageTiming

	// Files is the full record collection, invalidated records included.
	Files astro.Files

	Scan   extract.Stats
	Filter filter.Stats
	Plan   planner.Stats
	Copy   copier.Summary
}

// ValidCount returns the number of records that survived every stage.
func (r *Result) ValidCount() int {
	if r == nil {
		return 0
	}
	return len(r.Files.Valid())
}

// Observations returns the distinct observation names of valid records in
// first-seen order.
func (r *Result) Observations() []string {
	if r == nil {
		return nil
	}
	var names []string
	for _, og := range astro.Group(r.Files) {
		names = append(names, og.Name)
	}
	return names
}
