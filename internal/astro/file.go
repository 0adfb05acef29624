package astro

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in observation directory names
// and in planned target directories.
const DateLayout = "2006-01-02"

const outputMarker = "-output"

// File is a single capture artifact discovered on the source media.
type File struct {
	SourcePath string

	Observation         string
	ObservationDate     time.Time
	ObservationSequence string
	Capture             string
	FileName            string
	FileExtension       string

	IsNewFormat bool
	IsProcessed bool
	IsRaw       bool
	Rejected    bool
	Valid       bool

	NewFileName string
	TargetPath  string
	Directories []string
}

// FileNameMatch returns the name a processed counterpart of this file would
// carry. Processed files match themselves; raw names drop any trailing "r"
// before the output marker is appended.
func (f *File) FileNameMatch() string {
	if f.IsProcessed {
		return f.FileName
	}
	return strings.TrimRight(f.FileName, "r") + outputMarker
}

// Equal reports whether both records refer to the same source path.
func (f *File) Equal(other *File) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.SourcePath == other.SourcePath
}

// Key returns the grouping key used in log output.
func (f *File) Key() string {
	date := "nodate"
	if !f.ObservationDate.IsZero() {
		date = f.ObservationDate.Format(DateLayout)
	}
	return fmt.Sprintf("%s:%s:%s:%s=>%s.%s", f.Observation, date, f.ObservationSequence, f.Capture, f.FileName, f.FileExtension)
}

// Status returns the accepted/rejected label of the record.
func (f *File) Status() string {
	switch {
	case !f.Valid:
		return "invalid"
	case f.IsProcessed:
		return "processed"
	case f.Rejected:
		return "rejected"
	default:
		return "accepted"
	}
}

func (f *File) String() string {
	valid := "VALID"
	if !f.Valid {
		valid = "INVALID"
	}
	accepted := "ACCEPTED"
	if f.Rejected {
		accepted = "REJECTED"
	}
	base := valid + "\t" + accepted + "\t" + f.Key()
	switch {
	case strings.TrimSpace(f.NewFileName) == "":
		return base
	case strings.TrimSpace(f.TargetPath) == "":
		return base + " => " + f.NewFileName
	default:
		return base + " => " + f.TargetPath
	}
}
