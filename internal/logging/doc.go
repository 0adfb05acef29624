// Package logging assembles structured slog loggers and formatting helpers used
// across astrocopy stages.
//
// It owns the console and JSON handlers, the optional log-file fan-out, the
// quiet-mode level override, and context helpers that tag every line with the
// run id and active stage. Loggers are always passed explicitly; nothing here
// installs a global default.
package logging
