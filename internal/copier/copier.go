package copier

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"astrocopy/internal/astro"
	"astrocopy/internal/fsys"
	"astrocopy/internal/logging"
	"astrocopy/internal/stage"
)

// Options controls the copy stage.
type Options struct {
	// Root is the configured target root. It is locked while copying.
	Root     string
	ScanOnly bool
	Quiet    bool
}

// Summary reports what the copy stage did.
type Summary struct {
	Directories int
	Files       int
	Bytes       int64
	Touched     int
	Skipped     bool
}

// Stage copies valid records to their planned targets.
type Stage struct {
	fs       fsys.FileSystem
	opts     Options
	logger   *slog.Logger
	perFile  *slog.Logger
	progress Progress
	now      func() time.Time
	summary  Summary
}

// NewStage builds the copy stage. A nil progress logs sampled progress lines.
func NewStage(fs fsys.FileSystem, opts Options, logger, perFile *slog.Logger, progress Progress) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	if perFile == nil {
		perFile = logger
	}
	if progress == nil {
		progress = newLogProgress(logger)
	}
	return &Stage{fs: fs, opts: opts, logger: logger, perFile: perFile, progress: progress, now: time.Now}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return "copy" }

// Summary returns the result of the last Process call.
func (s *Stage) Summary() Summary { return s.summary }

// Process copies, or lists in scan-only mode, every valid record. Files copied
// before a failure are left in place.
func (s *Stage) Process(ctx context.Context, files astro.Files) (astro.Files, error) {
	s.summary = Summary{}
	if s.opts.ScanOnly && s.opts.Quiet {
		s.summary.Skipped = true
		s.logger.Debug("scan-only quiet run, nothing to list")
		return files, nil
	}

	if !s.opts.ScanOnly && strings.TrimSpace(s.opts.Root) != "" {
		lock, err := fsys.AcquireLock(s.opts.Root)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("target locked", logging.String("lock", lock.Path()))
		defer func() {
			if err := lock.Release(); err != nil {
				s.logger.Warn("failed to release target lock", logging.Error(err))
			}
		}()
	}

	valid := slices.Clone(files.Valid())
	slices.SortStableFunc(valid, func(a, b *astro.File) int { return strings.Compare(a.TargetPath, b.TargetPath) })

	var dirOrder []string
	firstSeen := map[string]time.Time{}

	s.progress.Start(len(valid))
	defer s.progress.Finish()

	current := ""
	for _, f := range valid {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, dir := range f.Directories {
			if _, ok := firstSeen[dir]; !ok {
				firstSeen[dir] = s.now()
				dirOrder = append(dirOrder, dir)
			}
		}

		if s.opts.ScanOnly {
			s.logger.Info("planned copy", logging.String("source", f.SourcePath), logging.String("target", f.TargetPath))
			s.summary.Files++
			s.progress.Increment()
			continue
		}

		dir := filepath.Dir(f.TargetPath)
		if dir != current {
			current = dir
			if !s.fs.DirExists(dir) {
				if err := s.fs.MkdirAll(dir); err != nil {
					return nil, stage.Wrap(stage.ErrIO, s.Name(), "create directory", dir, err)
				}
				s.perFile.Info("created directory", logging.String("dir", dir))
				s.summary.Directories++
			}
		}

		result, err := s.fs.CopyFile(f.SourcePath, f.TargetPath)
		if err != nil {
			if errors.Is(err, stage.ErrCollision) {
				return nil, err
			}
			return nil, stage.Wrap(stage.ErrIO, s.Name(), "copy file", f.SourcePath, err)
		}
		if result.Target != f.TargetPath {
			s.logger.Warn("target exists, copied under new name",
				logging.String("planned", f.TargetPath),
				logging.String("target", result.Target),
			)
			f.TargetPath = result.Target
		}
		s.summary.Files++
		s.summary.Bytes += result.Bytes
		s.progress.Increment()
		s.perFile.Info("copied file", logging.String("source", f.SourcePath), logging.String("target", f.TargetPath))
	}

	if s.opts.ScanOnly {
		s.logger.Info("scan complete", logging.Int("files", s.summary.Files))
		return files, nil
	}

	for _, dir := range dirOrder {
		if !s.fs.DirExists(dir) {
			continue
		}
		if err := s.fs.SetModTime(dir, firstSeen[dir]); err != nil {
			return nil, stage.Wrap(stage.ErrIO, s.Name(), "refresh directory time", dir, err)
		}
		s.summary.Touched++
	}

	s.logger.Info("copy complete",
		logging.Int("directories", s.summary.Directories),
		logging.Int("files", s.summary.Files),
		logging.String("size", humanize.Bytes(uint64(s.summary.Bytes))),
	)
	return files, nil
}
