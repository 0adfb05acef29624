package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/copier"
	"astrocopy/internal/fsys"
	"astrocopy/internal/logging"
	"astrocopy/internal/stage"
)

// Manager coordinates one pipeline run.
type Manager struct {
	cfg      *config.Config
	logger   *slog.Logger
	fs       fsys.FileSystem
	progress copier.Progress
	now      func() time.Time
	newRunID func() string
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithFileSystem replaces the local filesystem.
func WithFileSystem(fs fsys.FileSystem) ManagerOption {
	return func(m *Manager) { m.fs = fs }
}

// WithProgress sets the copy progress reporter.
func WithProgress(p copier.Progress) ManagerOption {
	return func(m *Manager) { m.progress = p }
}

// WithClock sets the clock used for naming stems and timings.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithRunID fixes the run identifier generator.
func WithRunID(fn func() string) ManagerOption {
	return func(m *Manager) { m.newRunID = fn }
}

// NewManager constructs a workflow manager for cfg.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fs == nil {
		m.fs = fsys.NewOS(cfg.Copy.Verify, cfg.Copy.PreserveTimes)
	}
	return m
}

// Run executes every stage in order and returns what each produced.
func (m *Manager) Run(ctx context.Context) (*Result, error) {
	if err := m.cfg.ValidatePaths(); err != nil {
		return nil, err
	}

	runID := m.newRunID()
	ctx = stage.WithRunID(ctx, runID)
	runLogger := m.logger.With(logging.String(logging.FieldRunID, runID))
	set := newStageSet(m.cfg, m.fs, runLogger, m.progress, m.now)

	result := &Result{RunID: runID, Started: m.now()}
	runLogger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("source", m.cfg.Paths.Source),
		logging.String("target", m.cfg.Paths.Target),
		logging.String("group_strategy", string(m.cfg.Organize.GroupStrategy)),
		logging.String("naming_strategy", string(m.cfg.Organize.NamingStrategy)),
		logging.String("ignore", m.cfg.IgnorePolicy().String()),
		logging.Bool("recurse", m.cfg.Scan.Recurse),
		logging.Bool("include_scope", m.cfg.Organize.IncludeScope),
		logging.Bool("scan_only", m.cfg.Copy.ScanOnly),
		logging.Bool("quiet", m.cfg.Logging.Quiet),
	)

	var files astro.Files
	for _, handler := range set.handlers() {
		var timing StageTiming
		var err error
		files, timing, err = m.executeStage(stage.WithStage(ctx, handler.Name()), handler, files)
		result.Stages = append(result.Stages, timing)
		if err != nil {
			result.Duration = m.now().Sub(result.Started)
			set.collect(result, files)
			return result, err
		}
	}

	result.Duration = m.now().Sub(result.Started)
	set.collect(result, files)
	runLogger.Info("run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("files", len(result.Files)),
		logging.Int("valid", result.ValidCount()),
		logging.Duration("run_duration", result.Duration),
	)
	return result, nil
}

func (m *Manager) executeStage(ctx context.Context, handler stage.Handler, files astro.Files) (astro.Files, StageTiming, error) {
	stageLogger := logging.NewComponentLogger(logging.WithContext(ctx, m.logger), "workflow")
	stageStart := m.now()
	stageLogger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.Int("files", len(files)),
	)

	out, err := handler.Process(ctx, files)
	timing := StageTiming{Name: handler.Name(), Duration: m.now().Sub(stageStart)}
	if err != nil {
		stageLogger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.String("error_kind", stage.Kind(err)),
			logging.Duration("stage_duration", timing.Duration),
			logging.Error(err),
		)
		return files, timing, err
	}

	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Int("files", len(out)),
		logging.Int("valid", len(out.Valid())),
		logging.Duration("stage_duration", timing.Duration),
	)
	return out, timing, nil
}
