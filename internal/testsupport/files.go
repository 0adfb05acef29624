package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with the given content, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ObservationDir returns the directory name the telescope uses for one
// observation session, e.g. "2021-01-02_0001-observation-M31".
func ObservationDir(date, sequence, name string) string {
	return fmt.Sprintf("%s_%s-observation-%s", date, sequence, name)
}

// Capture describes one file inside a telescope capture tree.
type Capture struct {
	Date        string
	Sequence    string
	Observation string
	Capture     string
	File        string
}

// Path returns the capture file path below root, inside the "stellina"
// media folder.
func (c Capture) Path(root string) string {
	return filepath.Join(root, "stellina", ObservationDir(c.Date, c.Sequence, c.Observation), c.Capture, c.File)
}

// WriteCaptureTree writes every capture below root. Each file's content is
// its own base name so copies can be traced back. It returns the written
// paths in input order.
func WriteCaptureTree(t testing.TB, root string, captures ...Capture) []string {
	t.Helper()
	paths := make([]string, 0, len(captures))
	for _, c := range captures {
		path := c.Path(root)
		WriteFile(t, path, c.File)
		paths = append(paths, path)
	}
	return paths
}
