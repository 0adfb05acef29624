// Package workflow runs the organizer pipeline end to end.
//
// The Manager builds one handler per stage from the configuration and runs
// them strictly in order: extract, preflight, filter, plan, copy. The record
// collection is handed from stage to stage; no stage keeps a reference after
// it returns. Each run gets a uuid that tags every log line, and every stage
// logs start and completion events with its duration.
//
// The first error aborts the run. Files already copied are left in place.
package workflow
