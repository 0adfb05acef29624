package astro

import (
	"testing"
	"time"
)

func record(obs string, day int, capture, name, ext string) *File {
	return &File{
		SourcePath:      obs + "/" + capture + "/" + name + "." + ext,
		Observation:     obs,
		ObservationDate: time.Date(2021, 1, day, 0, 0, 0, 0, time.UTC),
		Capture:         capture,
		FileName:        name,
		FileExtension:   ext,
		Valid:           true,
	}
}

func TestSortByExtensionThenName(t *testing.T) {
	fs := Files{
		record("m31", 1, "c1", "b", "jpeg"),
		record("m31", 1, "c1", "b", "fits"),
		record("m31", 1, "c1", "a", "jpeg"),
		record("m31", 1, "c1", "a", "fits"),
	}
	if IsSortedByExtensionThenName(fs) {
		t.Fatal("input should not be sorted")
	}
	SortByExtensionThenName(fs)
	if !IsSortedByExtensionThenName(fs) {
		t.Fatal("expected sorted output")
	}
	want := []string{"a.fits", "b.fits", "a.jpeg", "b.jpeg"}
	for i, f := range fs {
		if got := f.FileName + "." + f.FileExtension; got != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got, want[i])
		}
	}
}

func TestValidAndCount(t *testing.T) {
	a := record("m31", 1, "c1", "a", "fits")
	b := record("m31", 1, "c1", "b", "fits")
	b.Valid = false
	fs := Files{a, b, nil}
	if got := len(fs.Valid()); got != 1 {
		t.Fatalf("expected 1 valid record, got %d", got)
	}
	if got := fs.Count(func(f *File) bool { return f.FileExtension == "fits" }); got != 2 {
		t.Fatalf("expected 2 fits records, got %d", got)
	}
}

func TestGroupPreservesFirstSeenOrderAndSortsLeaves(t *testing.T) {
	invalid := record("m42", 1, "c1", "x", "txt")
	invalid.Valid = false
	fs := Files{
		record("m42", 2, "c1", "z", "fits"),
		record("m31", 1, "c2", "b", "jpeg"),
		invalid,
		record("m31", 1, "c1", "a", "fits"),
		record("m31", 1, "c2", "a", "fits"),
		record("m42", 1, "c1", "y", "fits"),
	}
	groups := Group(fs)
	if len(groups) != 2 || groups[0].Name != "m42" || groups[1].Name != "m31" {
		t.Fatalf("unexpected observation order: %+v", groups)
	}
	m42 := groups[0]
	if len(m42.Dates) != 2 || m42.Dates[0].Date.Day() != 2 || m42.Dates[1].Date.Day() != 1 {
		t.Fatalf("unexpected date order for m42")
	}
	if got := len(m42.Dates[1].Captures[0].Files); got != 1 {
		t.Fatalf("invalid records must be excluded, got %d files", got)
	}
	m31 := groups[1]
	if len(m31.Dates) != 1 || len(m31.Dates[0].Captures) != 2 {
		t.Fatalf("unexpected m31 shape")
	}
	c2 := m31.Dates[0].Captures[0]
	if c2.Name != "c2" {
		t.Fatalf("expected c2 first, got %q", c2.Name)
	}
	if c2.Files[0].FileExtension != "fits" || c2.Files[1].FileExtension != "jpeg" {
		t.Fatalf("leaf not sorted by extension: %v", c2.Files)
	}
}
