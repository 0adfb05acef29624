// Package fsys is the filesystem capability the pipeline runs against.
//
// FileSystem covers the handful of operations the stages need: existence
// checks, single-level enumeration, directory creation, collision-safe copies,
// and directory timestamp refresh. OS implements it on the local disk; tests
// use OS against t.TempDir() trees. Lock guards a target root against two
// concurrent runs writing into the same archive.
package fsys
