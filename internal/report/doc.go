// Package report renders a finished run as a YAML manifest: the run id, the
// effective organize settings, stage counts, and one entry per record with
// its source, planned target, and status.
package report
