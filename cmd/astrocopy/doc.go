// Command astrocopy copies telescope capture media into an organised archive.
//
// Usage:
//
//	astrocopy [flags] SOURCE TARGET
//
// SOURCE is the folder of the telescope's USB drive, TARGET the archive root.
// Both may instead come from the [paths] section of the configuration file.
// Flags override the file; run "astrocopy config show" to print the
// effective settings and "astrocopy config init" to write a commented sample.
package main
