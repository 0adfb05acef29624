package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"astrocopy/internal/astro"
	"astrocopy/internal/logging"
	"astrocopy/internal/stage"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckSourceRoot verifies that path is a directory the run can list and read.
func CheckSourceRoot(path string) Result {
	const name = "Source directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckTargetRoot verifies that the run can write below path. When path does
// not exist yet, its closest existing ancestor must be writable.
func CheckTargetRoot(path string) Result {
	const name = "Target directory"
	probe := path
	for {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, probe)}
			}
			break
		}
		if !os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing ancestor)", path)}
		}
		probe = parent
	}
	if err := unix.Access(probe, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s not writable: %v)", path, probe, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
}

// Stage validates the roots and passes the collection through unchanged.
type Stage struct {
	source   string
	target   string
	scanOnly bool
	logger   *slog.Logger
}

// NewStage builds the preflight stage.
func NewStage(source, target string, scanOnly bool, logger *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stage{source: source, target: target, scanOnly: scanOnly, logger: logger}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return "preflight" }

// Process runs the checks. files is returned untouched.
func (s *Stage) Process(_ context.Context, files astro.Files) (astro.Files, error) {
	results := []Result{CheckSourceRoot(s.source)}
	if !s.scanOnly {
		results = append(results, CheckTargetRoot(s.target))
	}
	var errs []error
	for _, r := range results {
		if r.Passed {
			s.logger.Debug("preflight check passed", logging.String("check", r.Name), logging.String("detail", r.Detail))
			continue
		}
		s.logger.Error("preflight check failed", logging.String("check", r.Name), logging.String("detail", r.Detail))
		errs = append(errs, errors.New(r.Detail))
	}
	if len(errs) == 0 {
		return files, nil
	}
	if _, err := os.Stat(s.source); os.IsNotExist(err) {
		return nil, stage.Wrap(stage.ErrNotFound, s.Name(), "check source", "unable to find source directory "+s.source, nil)
	}
	return nil, stage.Wrap(stage.ErrPrecondition, s.Name(), "check roots", "", errors.Join(errs...))
}
