package planner_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/planner"
	"astrocopy/internal/stage"
)

var (
	day1 = time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)
)

func record(obs string, day time.Time, capture, name, ext string) *astro.File {
	f := &astro.File{
		SourcePath:      filepath.Join("/src", obs, day.Format(astro.DateLayout), capture, name+"."+ext),
		Observation:     obs,
		ObservationDate: day,
		Capture:         capture,
		FileName:        name,
		FileExtension:   ext,
		Valid:           true,
	}
	f.IsRaw = astro.IsRawExtension(ext)
	f.IsProcessed = astro.IsProcessedExtension(ext) && astro.HasOutputMarker(name) || astro.IsTiffFamily(ext)
	return f
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPlanByDateRestartsSequence(t *testing.T) {
	a := record("m31", day1, "capture-1", "img001", "fits")
	b := record("m31", day1, "capture-1", "img002", "fits")
	c := record("m31", day2, "capture-1", "img001", "fits")
	opts := planner.Options{Root: "/archive", Group: config.GroupByDate, Naming: config.NameByNew, NewFilename: "m31"}

	stats, err := planner.Plan(opts, astro.Group(astro.Files{a, b, c}))
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	want := map[*astro.File]string{
		a: filepath.Join("/archive", "m31", "2021-01-02", "Accepted", "m31-0001.fits"),
		b: filepath.Join("/archive", "m31", "2021-01-02", "Accepted", "m31-0002.fits"),
		c: filepath.Join("/archive", "m31", "2021-01-03", "Accepted", "m31-0001.fits"),
	}
	for f, target := range want {
		if f.TargetPath != target {
			t.Fatalf("got %q want %q", f.TargetPath, target)
		}
	}
	if stats.Accepted != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	wantDirs := []string{filepath.Join("/archive", "m31"), filepath.Join("/archive", "m31", "2021-01-03")}
	if !reflect.DeepEqual(c.Directories, wantDirs) {
		t.Fatalf("got directories %v want %v", c.Directories, wantDirs)
	}
}

func TestPlanByObservationKeepsSequence(t *testing.T) {
	a := record("m31", day1, "capture-1", "img001", "fits")
	b := record("m31", day2, "capture-2", "img001", "fits")
	opts := planner.Options{Root: "/archive", Group: config.GroupByObservation, Naming: config.NameByNew, NewFilename: "x", IncludeScope: true, ScopeName: "Stellina"}

	if _, err := planner.Plan(opts, astro.Group(astro.Files{a, b})); err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if want := filepath.Join("/archive", "m31", "Accepted", "x-0001.fits"); a.TargetPath != want {
		t.Fatalf("got %q want %q", a.TargetPath, want)
	}
	if want := filepath.Join("/archive", "m31", "Accepted", "x-0002.fits"); b.TargetPath != want {
		t.Fatalf("got %q want %q", b.TargetPath, want)
	}
}

func TestPlanByCaptureWithScope(t *testing.T) {
	a := record("m31", day1, "capture-1", "img001", "fits")
	rej := record("m31", day1, "capture-1", "img002", "fits")
	rej.Rejected = true
	out := record("m31", day1, "capture-1", "img001-output", "jpg")
	b := record("m31", day1, "capture-2", "img001", "fits")
	opts := planner.Options{
		Root:         "/archive",
		Group:        config.GroupByCapture,
		Naming:       config.NameByTicks,
		IncludeScope: true,
		ScopeName:    "Stellina",
		Now:          fixedClock(time.Unix(0, 0).UTC()),
	}

	stats, err := planner.Plan(opts, astro.Group(astro.Files{a, rej, out, b}))
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	base := filepath.Join("/archive", "m31", "Stellina", "2021-01-02")
	want := map[*astro.File]string{
		a:   filepath.Join(base, "capture-1", "Accepted", "621355968000000000-0001.fits"),
		rej: filepath.Join(base, "capture-1", "Rejected", "img002-0001.fits"),
		out: filepath.Join(base, "capture-1", "Processed", "img001-output.jpg"),
		b:   filepath.Join(base, "capture-2", "Accepted", "621355968000000000-0001.fits"),
	}
	for f, target := range want {
		if f.TargetPath != target {
			t.Fatalf("got %q want %q", f.TargetPath, target)
		}
	}
	if stats != (planner.Stats{Accepted: 2, Rejected: 1, Processed: 1}) {
		t.Fatalf("unexpected stats %+v", stats)
	}
	wantDirs := []string{
		filepath.Join("/archive", "m31"),
		filepath.Join("/archive", "m31", "Stellina"),
		base,
		filepath.Join(base, "capture-2"),
	}
	if !reflect.DeepEqual(b.Directories, wantDirs) {
		t.Fatalf("got directories %v want %v", b.Directories, wantDirs)
	}
}

func TestPlanOriginalNamesKeepFileName(t *testing.T) {
	a := record("m31", day1, "capture-1", "img001", "fits")
	rej := record("m31", day1, "capture-1", "img002", "fits")
	rej.Rejected = true
	opts := planner.Options{Root: "/archive", Group: config.GroupByDate, Naming: config.NameByOriginal}

	if _, err := planner.Plan(opts, astro.Group(astro.Files{a, rej})); err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if a.NewFileName != "img001" {
		t.Fatalf("got %q want img001", a.NewFileName)
	}
	if rej.NewFileName != "img002-0001" {
		t.Fatalf("got %q want img002-0001", rej.NewFileName)
	}
}

func TestPlanTicksHexStem(t *testing.T) {
	a := record("m31", day1, "capture-1", "img001", "fits")
	opts := planner.Options{Root: "/archive", Group: config.GroupByDate, Naming: config.NameByTicksHex, Now: fixedClock(time.Unix(0, 0).UTC())}
	if _, err := planner.Plan(opts, astro.Group(astro.Files{a})); err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if a.NewFileName != "89f7ff5f7b58000-0001" {
		t.Fatalf("got %q want 89f7ff5f7b58000-0001", a.NewFileName)
	}
}

func TestPlanIsIdempotentAgainstOrganizedTarget(t *testing.T) {
	first := record("m31", day1, "capture-1", "img001", "fits")
	opts := planner.Options{Root: "/archive", Group: config.GroupByCapture, Naming: config.NameByNew, NewFilename: "m31"}
	if _, err := planner.Plan(opts, astro.Group(astro.Files{first})); err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	for _, root := range []string{
		filepath.Join("/archive", "m31", "2021-01-02", "capture-1"),
		filepath.Join("/archive", "m31", "2021-01-02"),
		filepath.Join("/archive", "m31"),
	} {
		again := record("m31", day1, "capture-1", "img001", "fits")
		opts.Root = root
		if _, err := planner.Plan(opts, astro.Group(astro.Files{again})); err != nil {
			t.Fatalf("Plan returned error: %v", err)
		}
		if again.TargetPath != first.TargetPath {
			t.Fatalf("root %q: got %q want %q", root, again.TargetPath, first.TargetPath)
		}
	}
}

func TestPlanRequiresSortedGroups(t *testing.T) {
	groups := []*astro.ObservationGroup{{
		Name: "m31",
		Dates: []*astro.DateGroup{{
			Date: day1,
			Captures: []*astro.CaptureGroup{{
				Name: "capture-1",
				Files: astro.Files{
					record("m31", day1, "capture-1", "b", "fits"),
					record("m31", day1, "capture-1", "a", "fits"),
				},
			}},
		}},
	}}
	_, err := planner.Plan(planner.Options{Root: "/archive", Group: config.GroupByDate, Naming: config.NameByOriginal}, groups)
	if !errors.Is(err, stage.ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
}

func TestResolveRoot(t *testing.T) {
	chain := []string{"m31", "Stellina", "2021-01-02"}
	tests := []struct {
		root string
		want string
	}{
		{root: "/archive", want: "/archive"},
		{root: "/archive/m31/Stellina/2021-01-02", want: "/archive"},
		{root: "/archive/m31/Stellina", want: "/archive"},
		{root: "/archive/m31", want: "/archive"},
		{root: "/archive/m31/", want: "/archive"},
		{root: "/archive/xm31", want: "/archive/xm31"},
		{root: "/m31", want: "/"},
		{root: "m31", want: ""},
	}
	for _, tc := range tests {
		if got := planner.ResolveRoot(filepath.FromSlash(tc.root), chain); got != filepath.FromSlash(tc.want) {
			t.Fatalf("ResolveRoot(%q) = %q want %q", tc.root, got, tc.want)
		}
	}
}

func TestStageSkipsInvalidRecords(t *testing.T) {
	a := record("m31", day1, "capture-1", "img001", "fits")
	dropped := record("m31", day1, "capture-1", "img002", "fits")
	dropped.Valid = false
	st := planner.NewStage(planner.Options{Root: "/archive", Group: config.GroupByDate, Naming: config.NameByOriginal}, nil, nil)
	files, err := st.Process(context.Background(), astro.Files{a, dropped})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected collection returned intact, got %d", len(files))
	}
	if dropped.TargetPath != "" || dropped.NewFileName != "" {
		t.Fatalf("invalid record was planned: %+v", dropped)
	}
	if st.Stats().Accepted != 1 {
		t.Fatalf("unexpected stats %+v", st.Stats())
	}
}

func TestTicks(t *testing.T) {
	if got := planner.Ticks(time.Unix(1, 500).UTC()); got != 621355968000000000+10_000_000+5 {
		t.Fatalf("got %d", got)
	}
}
