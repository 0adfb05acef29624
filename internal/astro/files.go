package astro

import (
	"cmp"
	"slices"
)

// Files is the record collection handed from stage to stage.
type Files []*File

// Valid returns the records that are still valid, preserving order.
func (fs Files) Valid() Files {
	out := make(Files, 0, len(fs))
	for _, f := range fs {
		if f != nil && f.Valid {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of records matching pred.
func (fs Files) Count(pred func(*File) bool) int {
	n := 0
	for _, f := range fs {
		if f != nil && pred(f) {
			n++
		}
	}
	return n
}

// CompareByExtensionThenName orders records by extension, then by file name.
func CompareByExtensionThenName(a, b *File) int {
	if c := cmp.Compare(a.FileExtension, b.FileExtension); c != 0 {
		return c
	}
	return cmp.Compare(a.FileName, b.FileName)
}

// SortByExtensionThenName sorts records in place, keeping equal keys stable.
func SortByExtensionThenName(fs Files) {
	slices.SortStableFunc(fs, CompareByExtensionThenName)
}

// IsSortedByExtensionThenName reports whether fs is already in extension-then-name order.
func IsSortedByExtensionThenName(fs Files) bool {
	return slices.IsSortedFunc(fs, CompareByExtensionThenName)
}
