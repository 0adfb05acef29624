package extract

import (
	"context"
	"log/slog"
	"strings"

	"astrocopy/internal/astro"
	"astrocopy/internal/fsys"
	"astrocopy/internal/logging"
	"astrocopy/internal/stage"
)

// Options controls source enumeration.
type Options struct {
	Root    string
	Recurse bool
	// Marker must appear (case-insensitively) in a path for it to be
	// extracted. Empty accepts every file.
	Marker string
}

// Stats summarises a scan.
type Stats struct {
	Directories int
	Files       int
	Valid       int
	Processed   int
}

// Scanner enumerates and extracts every candidate file below the source root.
type Scanner struct {
	fs      fsys.FileSystem
	opts    Options
	logger  *slog.Logger
	perFile *slog.Logger
	stats   Stats
}

// NewScanner builds the enumeration stage. perFile receives the routine
// per-directory messages and is typically quieted by the caller.
func NewScanner(fs fsys.FileSystem, opts Options, logger, perFile *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if perFile == nil {
		perFile = logger
	}
	opts.Marker = strings.ToLower(strings.TrimSpace(opts.Marker))
	return &Scanner{fs: fs, opts: opts, logger: logger, perFile: perFile}
}

// Name implements stage.Handler.
func (s *Scanner) Name() string { return "extract" }

// Stats returns the counts of the last Process call.
func (s *Scanner) Stats() Stats { return s.stats }

// Process discards its input and returns the records found under the root.
func (s *Scanner) Process(ctx context.Context, _ astro.Files) (astro.Files, error) {
	s.stats = Stats{}
	s.logger.Info("processing input files", logging.String("source", s.opts.Root))
	if !s.fs.DirExists(s.opts.Root) {
		return nil, stage.Wrap(stage.ErrNotFound, s.Name(), "open source", "unable to find source directory "+s.opts.Root, nil)
	}

	dirs := []string{s.opts.Root}
	if s.opts.Recurse {
		var err error
		dirs, err = s.walk(ctx)
		if err != nil {
			return nil, err
		}
	}
	s.stats.Directories = len(dirs)

	var files astro.Files
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := s.fs.Files(dir)
		if err != nil {
			return nil, stage.Wrap(stage.ErrIO, s.Name(), "list files", dir, err)
		}
		for _, entry := range entries {
			if s.opts.Marker != "" && !strings.Contains(strings.ToLower(entry), s.opts.Marker) {
				continue
			}
			record, err := Extract(entry)
			if err != nil {
				return nil, err
			}
			files = append(files, record)
		}
	}

	s.stats.Files = len(files)
	s.stats.Valid = files.Count(func(f *astro.File) bool { return f.Valid })
	s.stats.Processed = files.Count(func(f *astro.File) bool { return f.IsProcessed })
	s.logger.Info("parsed files",
		logging.Int("files", s.stats.Files),
		logging.Int("valid", s.stats.Valid),
		logging.Int("processed", s.stats.Processed),
		logging.Int("directories", s.stats.Directories),
	)
	return files, nil
}

// walk returns the root and every directory below it, depth first. Children
// are pushed in reverse so they are visited in name order.
func (s *Scanner) walk(ctx context.Context) ([]string, error) {
	stack := []string{s.opts.Root}
	var visited []string
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.perFile.Info("visiting directory", logging.String("dir", dir))
		visited = append(visited, dir)

		subdirs, err := s.fs.Subdirs(dir)
		if err != nil {
			return nil, stage.Wrap(stage.ErrIO, s.Name(), "list directories", dir, err)
		}
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	s.logger.Debug("directory walk complete", logging.Int("directories", len(visited)))
	return visited, nil
}
