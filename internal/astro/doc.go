// Package astro defines the file record that flows through every pipeline
// stage, along with the extension families, ordering rules, and grouping
// helpers the stages share.
//
// A File is identified solely by its source path. Stages mutate records in
// place while they own the collection: the filter toggles Rejected and Valid,
// the planner assigns NewFileName, TargetPath, and Directories. Invalid records
// are never revalidated and never removed; consumers skip them.
package astro
