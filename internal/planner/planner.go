package planner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/logging"
	"astrocopy/internal/stage"
)

// Subdirectories created under every planned directory.
const (
	AcceptedDir  = "Accepted"
	RejectedDir  = "Rejected"
	ProcessedDir = "Processed"
)

// Options configures path planning.
type Options struct {
	Root         string
	Group        config.GroupStrategy
	Naming       config.NamingStrategy
	NewFilename  string
	IncludeScope bool
	ScopeName    string
	// Now is consulted once per naming generation point. Defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig maps the organize section of cfg to planner options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Root:         cfg.Paths.Target,
		Group:        cfg.Organize.GroupStrategy,
		Naming:       cfg.Organize.NamingStrategy,
		NewFilename:  cfg.Organize.NewFilename,
		IncludeScope: cfg.Organize.IncludeScope,
		ScopeName:    cfg.Organize.ScopeName,
	}
}

// Stats counts planned records by destination.
type Stats struct {
	Accepted  int
	Rejected  int
	Processed int
}

// Plan assigns NewFileName, TargetPath, and Directories to every valid record
// in groups. Each capture group must be sorted by extension then file name.
func Plan(opts Options, groups []*astro.ObservationGroup) (Stats, error) {
	var stats Stats
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	source, err := newStemSource(opts.Naming, opts.NewFilename, now)
	if err != nil {
		return stats, stage.Wrap(stage.ErrConfiguration, "plan", "naming", err.Error(), nil)
	}
	seq := &sequence{source: source}

	for _, og := range groups {
		observationChain := []string{og.Name}
		if opts.Group == config.GroupByObservation {
			seq.reset()
		}
		for _, dg := range og.Dates {
			dateChain := observationChain
			if opts.Group != config.GroupByObservation {
				dateChain = appendChain(observationChain, opts.scopeSegment(), dg.Date.Format(astro.DateLayout))
			}
			if opts.Group == config.GroupByDate {
				seq.reset()
			}
			for _, cg := range dg.Captures {
				chain := dateChain
				if opts.Group == config.GroupByCapture {
					chain = appendChain(dateChain, cg.Name)
					seq.reset()
				}
				if !astro.IsSortedByExtensionThenName(cg.Files) {
					return stats, stage.Wrap(stage.ErrPrecondition, "plan", "plan group",
						fmt.Sprintf("capture %s of %s is not sorted by extension then name", cg.Name, og.Name), nil)
				}
				root := ResolveRoot(opts.Root, chain)
				directories := chainDirectories(root, chain)
				for _, f := range cg.Files {
					if !f.Valid {
						continue
					}
					subdir := assign(f, seq)
					switch subdir {
					case ProcessedDir:
						stats.Processed++
					case RejectedDir:
						stats.Rejected++
					default:
						stats.Accepted++
					}
					parts := append([]string{root}, chain...)
					parts = append(parts, subdir, f.NewFileName+"."+f.FileExtension)
					f.TargetPath = filepath.Join(parts...)
					f.Directories = append([]string(nil), directories...)
				}
			}
		}
	}
	return stats, nil
}

func (o Options) scopeSegment() string {
	if !o.IncludeScope {
		return ""
	}
	return o.ScopeName
}

// assign sets NewFileName and returns the subdirectory the record goes to.
func assign(f *astro.File, seq *sequence) string {
	switch {
	case f.IsProcessed:
		f.NewFileName = f.FileName
		return ProcessedDir
	case f.Rejected:
		f.NewFileName = seq.nextRejected(f.FileName)
		return RejectedDir
	default:
		f.NewFileName = seq.nextAccepted(f.FileName)
		return AcceptedDir
	}
}

func appendChain(chain []string, segments ...string) []string {
	out := append([]string(nil), chain...)
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func chainDirectories(root string, chain []string) []string {
	dirs := make([]string, 0, len(chain))
	for k := 1; k <= len(chain); k++ {
		dirs = append(dirs, filepath.Join(append([]string{root}, chain[:k]...)...))
	}
	return dirs
}

// Stage plans every valid record of the collection.
type Stage struct {
	opts    Options
	logger  *slog.Logger
	perFile *slog.Logger
	stats   Stats
}

// NewStage builds the planning stage.
func NewStage(opts Options, logger, perFile *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	if perFile == nil {
		perFile = logger
	}
	return &Stage{opts: opts, logger: logger, perFile: perFile}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return "plan" }

// Stats returns the counts of the last Process call.
func (s *Stage) Stats() Stats { return s.stats }

// Process groups the valid records and plans them in place.
func (s *Stage) Process(ctx context.Context, files astro.Files) (astro.Files, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Info("assigning target paths",
		logging.String("target", s.opts.Root),
		logging.String("group_strategy", string(s.opts.Group)),
		logging.String("naming_strategy", string(s.opts.Naming)),
	)
	stats, err := Plan(s.opts, astro.Group(files))
	if err != nil {
		return nil, err
	}
	s.stats = stats
	for _, f := range files {
		if f.Valid {
			s.perFile.Debug("planned file", logging.String("source", f.SourcePath), logging.String("target", f.TargetPath))
		}
	}
	s.logger.Info("finished assigning files",
		logging.Int("accepted", stats.Accepted),
		logging.Int("rejected", stats.Rejected),
		logging.Int("processed", stats.Processed),
	)
	return files, nil
}
