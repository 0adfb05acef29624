package fsys

import (
	"time"
)

// CopyResult describes a completed copy.
type CopyResult struct {
	// Target is the path actually written. It differs from the requested
	// destination when a collision suffix was applied.
	Target string
	Bytes  int64
}

// FileSystem is the set of filesystem operations used by the pipeline.
type FileSystem interface {
	DirExists(path string) bool
	FileExists(path string) bool
	// Files returns the regular files directly inside dir, sorted by name.
	Files(dir string) ([]string, error)
	// Subdirs returns the directories directly inside dir, sorted by name.
	Subdirs(dir string) ([]string, error)
	MkdirAll(dir string) error
	// CopyFile copies src to dst without ever overwriting an existing file.
	CopyFile(src, dst string) (CopyResult, error)
	SetModTime(path string, t time.Time) error
}
