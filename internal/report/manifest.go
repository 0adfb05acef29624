package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/workflow"
)

// Manifest is the YAML document written for a run.
type Manifest struct {
	RunID    string       `yaml:"run_id"`
	Started  time.Time    `yaml:"started"`
	Duration string       `yaml:"duration"`
	Source   string       `yaml:"source"`
	Target   string       `yaml:"target"`
	Settings Settings     `yaml:"settings"`
	Counts   Counts       `yaml:"counts"`
	Stages   []StageEntry `yaml:"stages,omitempty"`
	Files    []FileEntry  `yaml:"files"`
}

// Settings captures the organize options that shaped the plan.
type Settings struct {
	GroupStrategy  string   `yaml:"group_strategy"`
	NamingStrategy string   `yaml:"naming_strategy"`
	NewFilename    string   `yaml:"new_filename,omitempty"`
	IncludeScope   bool     `yaml:"include_scope"`
	Ignore         []string `yaml:"ignore,omitempty"`
	ScanOnly       bool     `yaml:"scan_only"`
}

// Counts aggregates stage statistics.
type Counts struct {
	Scanned     int   `yaml:"scanned"`
	Valid       int   `yaml:"valid"`
	Accepted    int   `yaml:"accepted"`
	Rejected    int   `yaml:"rejected"`
	Filtered    int   `yaml:"filtered"`
	Processed   int   `yaml:"processed"`
	Copied      int   `yaml:"copied"`
	Directories int   `yaml:"directories"`
	Bytes       int64 `yaml:"bytes"`
}

// StageEntry is the duration of one stage.
type StageEntry struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

// FileEntry describes one record.
type FileEntry struct {
	Source      string `yaml:"source"`
	Status      string `yaml:"status"`
	Observation string `yaml:"observation,omitempty"`
	Date        string `yaml:"date,omitempty"`
	Capture     string `yaml:"capture,omitempty"`
	Target      string `yaml:"target,omitempty"`
}

// Build assembles the manifest for result.
func Build(cfg *config.Config, result *workflow.Result) Manifest {
	m := Manifest{
		Source: cfg.Paths.Source,
		Target: cfg.Paths.Target,
		Settings: Settings{
			GroupStrategy:  string(cfg.Organize.GroupStrategy),
			NamingStrategy: string(cfg.Organize.NamingStrategy),
			NewFilename:    cfg.Organize.NewFilename,
			IncludeScope:   cfg.Organize.IncludeScope,
			Ignore:         cfg.IgnorePolicy().Tokens(),
			ScanOnly:       cfg.Copy.ScanOnly,
		},
	}
	if result == nil {
		return m
	}

	m.RunID = result.RunID
	m.Started = result.Started.UTC()
	m.Duration = result.Duration.String()
	m.Counts = Counts{
		Scanned:     result.Scan.Files,
		Valid:       result.ValidCount(),
		Accepted:    result.Plan.Accepted,
		Rejected:    result.Plan.Rejected,
		Filtered:    result.Filter.Filtered,
		Processed:   result.Plan.Processed,
		Copied:      result.Copy.Files,
		Directories: result.Copy.Directories,
		Bytes:       result.Copy.Bytes,
	}
	for _, st := range result.Stages {
		m.Stages = append(m.Stages, StageEntry{Name: st.Name, Duration: st.Duration.String()})
	}
	for _, f := range result.Files {
		m.Files = append(m.Files, fileEntry(f))
	}
	return m
}

func fileEntry(f *astro.File) FileEntry {
	entry := FileEntry{Source: f.SourcePath, Status: f.Status()}
	if f.Observation != "" {
		entry.Observation = f.Observation
		entry.Date = f.ObservationDate.Format(astro.DateLayout)
		entry.Capture = f.Capture
	}
	if f.Valid {
		entry.Target = f.TargetPath
	}
	return entry
}

// Encode renders m as YAML.
func (m Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores m at path, creating parent directories.
func Write(path string, m Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read loads a manifest written by Write.
func Read(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read report: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode report: %w", err)
	}
	return m, nil
}
