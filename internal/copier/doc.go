// Package copier writes planned records into the archive tree.
//
// Records are copied in target path order so each output directory is
// created once. Copies never overwrite: an existing target gets a " (NN)"
// suffix. After copying, every directory the records were planned into has
// its modification time set to the moment the run first reached it. In
// scan-only mode nothing is written and each planned copy is logged
// instead.
package copier
