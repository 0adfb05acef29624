// Package extract turns capture paths into astro.File records.
//
// Extract parses a single path against the telescope's directory convention
// ".../{date}_{sequence}-observation-{name}/{...capture...}/{file}.{ext}".
// Scanner is the first pipeline stage: it enumerates the source root through
// the fsys capability, keeps files whose path carries the source marker, and
// extracts each one.
package extract
