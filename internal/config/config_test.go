package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"astrocopy/internal/config"
	"astrocopy/internal/stage"
)

func TestLoadDefaultsWhenConfigMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantPath := filepath.Join(tempHome, ".config", "astrocopy", "config.toml")
	if resolved != wantPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, wantPath)
	}
	if !cfg.Scan.Recurse {
		t.Fatal("expected recursion enabled by default")
	}
	if cfg.Scan.SourceMarker != "stellina" {
		t.Fatalf("unexpected source marker: %q", cfg.Scan.SourceMarker)
	}
	if cfg.Organize.GroupStrategy != config.GroupByDate {
		t.Fatalf("unexpected group strategy: %q", cfg.Organize.GroupStrategy)
	}
	if cfg.Organize.NamingStrategy != config.NameByTicksHex {
		t.Fatalf("unexpected naming strategy: %q", cfg.Organize.NamingStrategy)
	}
	if cfg.IgnorePolicy() != (config.IgnorePolicy{}) {
		t.Fatalf("expected empty ignore policy, got %+v", cfg.IgnorePolicy())
	}
	if cfg.Organize.ScopeName != "Stellina" {
		t.Fatalf("unexpected scope name: %q", cfg.Organize.ScopeName)
	}
	if err := cfg.ValidatePaths(); !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected missing paths to be a configuration error, got %v", err)
	}
}

func TestLoadCustomPathAndOverrides(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "astrocopy.toml")

	type payload struct {
		Paths struct {
			Source string `toml:"source"`
			Target string `toml:"target"`
		} `toml:"paths"`
		Organize struct {
			GroupStrategy  string   `toml:"group_strategy"`
			NamingStrategy string   `toml:"naming_strategy"`
			NewFilename    string   `toml:"new_filename"`
			Ignore         []string `toml:"ignore"`
		} `toml:"organize"`
	}
	custom := payload{}
	custom.Paths.Source = filepath.Join(tempDir, "usb")
	custom.Paths.Target = filepath.Join(tempDir, "archive")
	custom.Organize.GroupStrategy = "Capture"
	custom.Organize.NamingStrategy = "new"
	custom.Organize.NewFilename = "andromeda"
	custom.Organize.Ignore = []string{"jpeg,tiff", "all-but-last"}

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath, func(c *config.Config) {
		c.Copy.ScanOnly = true
		c.Logging.Quiet = true
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Organize.GroupStrategy != config.GroupByCapture {
		t.Fatalf("expected canonical capture strategy, got %q", cfg.Organize.GroupStrategy)
	}
	if cfg.Organize.NewFilename != "andromeda" {
		t.Fatalf("unexpected new filename: %q", cfg.Organize.NewFilename)
	}
	want := config.IgnorePolicy{DropJpeg: true, DropTiff: true, KeepOnlyLastProcessed: true}
	if cfg.IgnorePolicy() != want {
		t.Fatalf("unexpected policy: got %+v want %+v", cfg.IgnorePolicy(), want)
	}
	if !cfg.Copy.ScanOnly || !cfg.Logging.Quiet {
		t.Fatal("expected overrides to apply")
	}
	if err := cfg.ValidatePaths(); err != nil {
		t.Fatalf("ValidatePaths: %v", err)
	}
}

func TestLoadRejectsNamingMismatch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]config.Override{
		"new without filename": func(c *config.Config) {
			c.Organize.NamingStrategy = config.NameByNew
		},
		"filename without new": func(c *config.Config) {
			c.Organize.NamingStrategy = config.NameByTicks
			c.Organize.NewFilename = "m31"
		},
		"unknown group": func(c *config.Config) {
			c.Organize.GroupStrategy = "weekly"
		},
		"nothing combined": func(c *config.Config) {
			c.Organize.Ignore = []string{"nothing", "jpeg"}
		},
		"rejection with rejected": func(c *config.Config) {
			c.Organize.Ignore = []string{"rejection,rejected"}
		},
		"bad log format": func(c *config.Config) {
			c.Logging.Format = "xml"
		},
	}
	for name, override := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"), override)
			if !errors.Is(err, stage.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[paths\nsource = "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := config.Load(path)
	if !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestParseIgnorePolicy(t *testing.T) {
	policy, err := config.ParseIgnorePolicy([]string{" Rejected ", "TIF"})
	if err != nil {
		t.Fatalf("ParseIgnorePolicy: %v", err)
	}
	if !policy.DropRejected || !policy.DropTiff || policy.DropJpeg {
		t.Fatalf("unexpected policy: %+v", policy)
	}
	if got := policy.String(); got != "rejected, tiff" {
		t.Fatalf("unexpected string: %q", got)
	}

	nothing, err := config.ParseIgnorePolicy([]string{"nothing"})
	if err != nil {
		t.Fatalf("nothing alone should be valid: %v", err)
	}
	if nothing.String() != "nothing" {
		t.Fatalf("unexpected string: %q", nothing.String())
	}

	if _, err := config.ParseIgnorePolicy([]string{"everything"}); err == nil || !strings.Contains(err.Error(), "everything") {
		t.Fatalf("expected unknown token error, got %v", err)
	}
}

func TestValidatePathsRejectsSameRoot(t *testing.T) {
	dir := t.TempDir()
	cfg, _, _, err := config.Load(filepath.Join(dir, "none.toml"), func(c *config.Config) {
		c.Paths.Source = dir
		c.Paths.Target = dir + string(filepath.Separator)
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.ValidatePaths(); !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "astrocopy.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(encoded, "group_strategy") || !strings.Contains(encoded, "tickshex") {
		t.Fatalf("expected encoded strategy, got:\n%s", encoded)
	}
}
