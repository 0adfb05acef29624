package extract_test

import (
	"errors"
	"testing"
	"time"

	"astrocopy/internal/extract"
	"astrocopy/internal/stage"
)

func TestExtractParsesCaptureLayout(t *testing.T) {
	path := "/media/Stellina/2021-01-02_0001-Observation-M31/Capture-01/img-0001r.FITS"
	record, err := extract.Extract(path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.SourcePath != path {
		t.Fatalf("got source %q want %q", record.SourcePath, path)
	}
	if record.Observation != "m31" {
		t.Fatalf("got observation %q want m31", record.Observation)
	}
	if record.ObservationSequence != "0001" {
		t.Fatalf("got sequence %q want 0001", record.ObservationSequence)
	}
	if want := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC); !record.ObservationDate.Equal(want) {
		t.Fatalf("got date %v want %v", record.ObservationDate, want)
	}
	if record.Capture != "capture-01" {
		t.Fatalf("got capture %q want capture-01", record.Capture)
	}
	if record.FileName != "img-0001r" || record.FileExtension != "fits" {
		t.Fatalf("got name %q ext %q", record.FileName, record.FileExtension)
	}
	if !record.IsRaw || record.IsProcessed || !record.Valid || record.IsNewFormat || record.Rejected {
		t.Fatalf("unexpected flags %+v", record)
	}
	if got := record.FileNameMatch(); got != "img-0001-output" {
		t.Fatalf("got match %q want img-0001-output", got)
	}
}

func TestExtractCountsLeadingEmptySegment(t *testing.T) {
	record, err := extract.Extract("/2021-01-02_1-observation-m31/capture-1/f.fits")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !record.Valid || record.Observation != "m31" || record.Capture != "capture-1" {
		t.Fatalf("expected valid m31 record, got %+v", record)
	}
	short, err := extract.Extract("2021-01-02_1-observation-m31/capture-1/f.fits")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if short.Valid {
		t.Fatalf("three segment path must be invalid, got %+v", short)
	}
}

func TestExtractClassifiesExtensions(t *testing.T) {
	base := `D:\stellina\2021-01-02_0001-observation-m42\capture-2\`
	tests := []struct {
		file      string
		raw       bool
		processed bool
		valid     bool
	}{
		{file: "img-output.jpg", processed: true, valid: true},
		{file: "img-output.jpeg", processed: true, valid: true},
		{file: "img.jpg", valid: true},
		{file: "img.tif", processed: true, valid: true},
		{file: "img.tiff", processed: true, valid: true},
		{file: "img.fits", raw: true, valid: true},
		{file: "img.png"},
		{file: "notes.txt"},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			record, err := extract.Extract(base + tc.file)
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if record.IsRaw != tc.raw || record.IsProcessed != tc.processed || record.Valid != tc.valid {
				t.Fatalf("got raw=%v processed=%v valid=%v want raw=%v processed=%v valid=%v",
					record.IsRaw, record.IsProcessed, record.Valid, tc.raw, tc.processed, tc.valid)
			}
			if record.Observation != "m42" {
				t.Fatalf("got observation %q want m42", record.Observation)
			}
		})
	}
}

func TestExtractRejectsForeignLayouts(t *testing.T) {
	paths := []string{
		"img.fits",
		"/a/b.fits",
		"/stellina/2021-01-02_0001-observation-m31/img.fits",
		"/stellina/2021-01-02_0001-observation-m31/raw/img.fits",
		"/stellina/2021-01-02_session/capture-1/img.fits",
	}
	for _, path := range paths {
		record, err := extract.Extract(path)
		if err != nil {
			t.Fatalf("Extract(%q) returned error: %v", path, err)
		}
		if record.Valid {
			t.Fatalf("Extract(%q) unexpectedly valid", path)
		}
		if record.SourcePath != path {
			t.Fatalf("got source %q want %q", record.SourcePath, path)
		}
		if record.FileName != "" || record.FileExtension != "" || record.Observation != "" || record.Capture != "" || !record.ObservationDate.IsZero() {
			t.Fatalf("Extract(%q) populated fields: %+v", path, record)
		}
	}
}

func TestExtractMalformedObservationSegment(t *testing.T) {
	paths := []string{
		"/stellina/2021-13-40_0001-observation-m31/capture-1/img.fits",
		"/stellina/observation-m31/capture-1/img.fits",
		"/stellina/2021-01-02_0001-observationm31/capture-1/img.fits",
	}
	for _, path := range paths {
		if _, err := extract.Extract(path); !errors.Is(err, stage.ErrMalformed) {
			t.Fatalf("Extract(%q): expected ErrMalformed, got %v", path, err)
		}
	}
}
