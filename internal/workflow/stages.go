package workflow

import (
	"log/slog"
	"os"
	"time"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/copier"
	"astrocopy/internal/extract"
	"astrocopy/internal/filter"
	"astrocopy/internal/fsys"
	"astrocopy/internal/logging"
	"astrocopy/internal/planner"
	"astrocopy/internal/preflight"
	"astrocopy/internal/stage"
)

// stageSet bundles the concrete handlers of one run.
type stageSet struct {
	extract   *extract.Scanner
	preflight *preflight.Stage
	filter    *filter.Stage
	plan      *planner.Stage
	copy      *copier.Stage
}

func newStageSet(cfg *config.Config, fs fsys.FileSystem, logger *slog.Logger, progress copier.Progress, now func() time.Time) *stageSet {
	component := func(name string) (*slog.Logger, *slog.Logger) {
		l := logging.NewComponentLogger(logger, name)
		return l, logging.Quiet(l, cfg.Logging.Quiet)
	}

	extractLog, extractFiles := component("extract")
	preflightLog, _ := component("preflight")
	filterLog, filterFiles := component("filter")
	planLog, planFiles := component("plan")
	copyLog, copyFiles := component("copy")

	planOpts := planner.OptionsFromConfig(cfg)
	planOpts.Now = now

	if progress == nil {
		progress = copier.NewProgress(copyLog, os.Stderr, cfg.Logging.Quiet, copier.IsInteractive(os.Stderr))
	}

	return &stageSet{
		extract: extract.NewScanner(fs, extract.Options{
			Root:    cfg.Paths.Source,
			Recurse: cfg.Scan.Recurse,
			Marker:  cfg.Scan.SourceMarker,
		}, extractLog, extractFiles),
		preflight: preflight.NewStage(cfg.Paths.Source, cfg.Paths.Target, cfg.Copy.ScanOnly, preflightLog),
		filter:    filter.NewStage(cfg.IgnorePolicy(), filterLog, filterFiles),
		plan:      planner.NewStage(planOpts, planLog, planFiles),
		copy: copier.NewStage(fs, copier.Options{
			Root:     cfg.Paths.Target,
			ScanOnly: cfg.Copy.ScanOnly,
			Quiet:    cfg.Logging.Quiet,
		}, copyLog, copyFiles, progress),
	}
}

func (s *stageSet) handlers() []stage.Handler {
	return []stage.Handler{s.extract, s.preflight, s.filter, s.plan, s.copy}
}

func (s *stageSet) collect(result *Result, files astro.Files) {
	result.Files = files
	result.Scan = s.extract.Stats()
	result.Filter = s.filter.Stats()
	result.Plan = s.plan.Stats()
	result.Copy = s.copy.Summary()
}
