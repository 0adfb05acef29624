// Package preflight checks the source and target roots before any record is
// read or written.
//
// The pipeline runs Stage between extraction setup and filtering: a missing
// source root aborts the run with stage.ErrNotFound, an unreadable source or
// an unwritable target aborts it with stage.ErrPrecondition. Scan-only runs
// skip the target check because they never write.
package preflight
