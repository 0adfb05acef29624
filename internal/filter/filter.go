package filter

import (
	"fmt"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/stage"
)

// Stats counts the outcome of one Filter call.
type Stats struct {
	Total    int
	Accepted int
	Rejected int
	Filtered int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Total += other.Total
	s.Accepted += other.Accepted
	s.Rejected += other.Rejected
	s.Filtered += other.Filtered
}

func (s Stats) String() string {
	return fmt.Sprintf("processed %d files: %d accepted, %d rejected, %d filtered", s.Total, s.Accepted, s.Rejected, s.Filtered)
}

// Filter updates Rejected and Valid on files in place according to policy.
// files must be sorted by extension then file name.
func Filter(policy config.IgnorePolicy, files astro.Files) (Stats, error) {
	var stats Stats
	if !astro.IsSortedByExtensionThenName(files) {
		return stats, stage.Wrap(stage.ErrPrecondition, "filter", "filter group", "records are not sorted by extension then name", nil)
	}

	names := make(map[string]struct{}, len(files))
	for _, f := range files {
		names[f.FileName] = struct{}{}
	}

	var lastJpeg, lastTiff string
	for _, f := range files {
		stats.Total++
		if f.IsProcessed {
			if dropsFamily(policy, f.FileExtension) {
				f.Valid = false
				stats.Filtered++
				continue
			}
			if policy.KeepOnlyLastProcessed {
				switch {
				case astro.IsJpegFamily(f.FileExtension):
					lastJpeg = f.SourcePath
				case astro.IsTiffFamily(f.FileExtension):
					lastTiff = f.SourcePath
				}
			}
		}

		if f.IsRaw && !f.IsNewFormat && !policy.TreatRejectedAsAccepted {
			_, matched := names[f.FileNameMatch()]
			f.Rejected = !matched
			if !f.Rejected {
				stats.Accepted++
				continue
			}
			stats.Rejected++
			if policy.DropRejected {
				f.Valid = false
				stats.Filtered++
			}
			continue
		}
		stats.Accepted++
	}

	if policy.KeepOnlyLastProcessed {
		for _, f := range files {
			if !f.IsProcessed {
				continue
			}
			if astro.IsJpegFamily(f.FileExtension) && f.SourcePath != lastJpeg ||
				astro.IsTiffFamily(f.FileExtension) && f.SourcePath != lastTiff {
				f.Valid = false
			}
		}
	}
	return stats, nil
}

func dropsFamily(policy config.IgnorePolicy, ext string) bool {
	return policy.DropJpeg && astro.IsJpegFamily(ext) || policy.DropTiff && astro.IsTiffFamily(ext)
}
