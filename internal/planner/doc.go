// Package planner assigns new names and target paths to filtered records.
//
// Records are walked observation → date → capture. The configured grouping
// strategy decides which level opens a new directory and restarts naming:
// at that point a fresh stem is generated and the accepted and rejected
// sequences restart at 0001. Raw files land under Accepted or Rejected,
// processed files under Processed with their original name.
//
// The relative directory chain is appended to the target root after
// ResolveRoot strips any part of the chain the root already ends with, so
// pointing a re-run at an organised subfolder does not nest it twice.
package planner
