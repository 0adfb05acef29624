package extract

import (
	"fmt"
	"path"
	"strings"
	"time"

	"astrocopy/internal/astro"
	"astrocopy/internal/stage"
)

const (
	captureMarker     = "capture"
	observationMarker = "observation"
	observationSplit  = "-observation-"
	minSegments       = 4
)

// Extract parses a source path into a record. Paths that do not follow the
// capture layout produce an invalid record carrying only its source path. A
// malformed observation segment is an error; it is not recovered per file.
func Extract(sourcePath string) (*astro.File, error) {
	record := &astro.File{SourcePath: sourcePath}

	lower := strings.ToLower(sourcePath)
	segments := strings.Split(strings.ReplaceAll(lower, "\\", "/"), "/")
	if len(segments) < minSegments {
		return record, nil
	}
	n := len(segments)
	captureSegment := segments[n-2]
	observationSegment := segments[n-3]
	if !strings.Contains(captureSegment, captureMarker) || !strings.Contains(observationSegment, observationMarker) {
		return record, nil
	}

	leaf := segments[n-1]
	ext := path.Ext(leaf)
	record.FileName = strings.TrimSuffix(leaf, ext)
	record.FileExtension = strings.TrimPrefix(ext, ".")
	record.Capture = captureSegment
	record.IsRaw = astro.IsRawExtension(record.FileExtension)
	record.IsProcessed = astro.IsProcessedExtension(record.FileExtension) && astro.HasOutputMarker(record.FileName) ||
		astro.IsTiffFamily(record.FileExtension)
	record.Valid = record.IsRaw || astro.IsProcessedExtension(record.FileExtension)

	datePart, namePart, ok := strings.Cut(observationSegment, "_")
	if !ok {
		return nil, malformed(sourcePath, fmt.Sprintf("observation segment %q has no date separator", observationSegment), nil)
	}
	date, err := time.Parse(astro.DateLayout, datePart)
	if err != nil {
		return nil, malformed(sourcePath, fmt.Sprintf("observation date %q", datePart), err)
	}
	sequence, observation, ok := strings.Cut(namePart, observationSplit)
	if !ok {
		return nil, malformed(sourcePath, fmt.Sprintf("observation segment %q has no %q marker", observationSegment, observationSplit), nil)
	}

	record.ObservationDate = date
	record.ObservationSequence = sequence
	record.Observation = observation
	return record, nil
}

func malformed(sourcePath, message string, err error) error {
	return stage.Wrap(stage.ErrMalformed, "extract", "parse "+sourcePath, message, err)
}
