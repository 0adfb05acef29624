package astro

import (
	"strings"
	"testing"
	"time"
)

func TestFileNameMatch(t *testing.T) {
	tests := []struct {
		name string
		file File
		want string
	}{
		{name: "processed matches itself", file: File{FileName: "img-output", IsProcessed: true}, want: "img-output"},
		{name: "raw without trailing r", file: File{FileName: "img001"}, want: "img001-output"},
		{name: "raw with trailing r", file: File{FileName: "img001r"}, want: "img001-output"},
		{name: "raw with repeated trailing r", file: File{FileName: "imgrr"}, want: "img-output"},
		{name: "processed ending in r", file: File{FileName: "stacker", IsProcessed: true}, want: "stacker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.FileNameMatch(); got != tt.want {
				t.Fatalf("FileNameMatch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileNameMatchIsRecomputed(t *testing.T) {
	f := &File{FileName: "a"}
	if got := f.FileNameMatch(); got != "a-output" {
		t.Fatalf("unexpected match: %q", got)
	}
	f.IsProcessed = true
	if got := f.FileNameMatch(); got != "a" {
		t.Fatalf("match should follow IsProcessed, got %q", got)
	}
}

func TestEqualUsesSourcePathOnly(t *testing.T) {
	a := &File{SourcePath: "/x/y.fits", FileName: "y"}
	b := &File{SourcePath: "/x/y.fits", FileName: "other", Valid: true}
	c := &File{SourcePath: "/x/z.fits", FileName: "y"}
	if !a.Equal(b) {
		t.Fatal("records with the same source path should be equal")
	}
	if a.Equal(c) {
		t.Fatal("records with different source paths should differ")
	}
	var nilFile *File
	if nilFile.Equal(a) {
		t.Fatal("nil should not equal a record")
	}
}

func TestStringIncludesTarget(t *testing.T) {
	f := &File{
		Valid:           true,
		Observation:     "m31",
		ObservationDate: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
		Capture:         "capture-1",
		FileName:        "img",
		FileExtension:   "fits",
	}
	if got := f.String(); !strings.HasPrefix(got, "VALID\tACCEPTED\tm31:2021-03-04") {
		t.Fatalf("unexpected string: %q", got)
	}
	f.NewFileName = "abc-0001"
	if got := f.String(); !strings.HasSuffix(got, "=> abc-0001") {
		t.Fatalf("expected new file name suffix, got %q", got)
	}
	f.TargetPath = "/t/abc-0001.fits"
	f.Rejected = true
	if got := f.String(); !strings.Contains(got, "REJECTED") || !strings.HasSuffix(got, "=> /t/abc-0001.fits") {
		t.Fatalf("unexpected string: %q", got)
	}
}

func TestStatus(t *testing.T) {
	cases := map[string]File{
		"invalid":   {Valid: false},
		"processed": {Valid: true, IsProcessed: true},
		"rejected":  {Valid: true, IsRaw: true, Rejected: true},
		"accepted":  {Valid: true, IsRaw: true},
	}
	for want, f := range cases {
		if got := f.Status(); got != want {
			t.Fatalf("Status() = %q, want %q", got, want)
		}
	}
}
