package testsupport

import (
	"path/filepath"
	"testing"

	"astrocopy/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	ignore  []string
}

// NewConfig produces a loaded config whose source and target roots live in
// a fresh temp directory. Options run before normalization, so they behave
// like CLI overrides.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	builder := &configBuilder{t: t, baseDir: base}

	override := func(cfg *config.Config) {
		cfg.Paths.Source = filepath.Join(base, "source")
		cfg.Paths.Target = filepath.Join(base, "archive")
		cfg.Logging.Level = "debug"
		builder.cfg = cfg
		for _, opt := range opts {
			opt(builder)
		}
	}

	cfg, _, _, err := config.Load(filepath.Join(base, "missing.toml"), override)
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}
	return cfg
}

// WithGroupStrategy selects the grouping strategy.
func WithGroupStrategy(strategy config.GroupStrategy) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.GroupStrategy = strategy
	}
}

// WithNaming selects the naming strategy and, for "new", the stem.
func WithNaming(strategy config.NamingStrategy, newFilename string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.NamingStrategy = strategy
		b.cfg.Organize.NewFilename = newFilename
	}
}

// WithIgnore sets the ignore tokens.
func WithIgnore(tokens ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Ignore = tokens
	}
}

// WithScope enables the scope path segment.
func WithScope() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.IncludeScope = true
	}
}

// WithScanOnly disables writing.
func WithScanOnly() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Copy.ScanOnly = true
	}
}

// WithQuiet enables quiet mode.
func WithQuiet() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Quiet = true
	}
}

// WithTarget replaces the target root.
func WithTarget(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.Target = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Source)
}
