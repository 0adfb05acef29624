// Package filter applies the ignore policy to capture groups.
//
// Filter runs over one capture group at a time. It drops processed files by
// family, correlates every raw file with its expected processed counterpart
// to flag rejections, and optionally keeps only the last processed file of
// each family. Groups must arrive sorted by extension then file name: both
// the correlation and "last" selection depend on that order, so unsorted
// input is refused instead of silently producing a different result.
package filter
