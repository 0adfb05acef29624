package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"astrocopy/internal/config"
	"astrocopy/internal/copier"
	"astrocopy/internal/logging"
	"astrocopy/internal/report"
	"astrocopy/internal/stage"
	"astrocopy/internal/workflow"
)

func runOrganize(cmd *cobra.Command, cfg *config.Config, reportPath string) error {
	out := cmd.OutOrStdout()
	logger, err := logging.NewFromConfig(cfg, out)
	if err != nil {
		return err
	}

	interactive := false
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		interactive = copier.IsInteractive(f)
	}
	progress := copier.NewProgress(logging.NewComponentLogger(logger, "copy"), cmd.ErrOrStderr(), cfg.Logging.Quiet, interactive)

	manager := workflow.NewManager(cfg, logger, workflow.WithProgress(progress))
	result, runErr := manager.Run(cmd.Context())

	if reportPath != "" && result != nil {
		expanded, err := config.ExpandPath(reportPath)
		if err != nil {
			return err
		}
		if err := report.Write(expanded, report.Build(cfg, result)); err != nil {
			if runErr != nil {
				return runErr
			}
			return err
		}
		logger.Info("report written", logging.String("path", expanded))
	}
	if runErr != nil {
		if !stage.Fatal(runErr) && result != nil {
			logger.Warn("run stopped; files already copied are left in place",
				logging.Int("copied", result.Copy.Files),
				logging.String("error_kind", stage.Kind(runErr)),
			)
		}
		return runErr
	}

	if cfg.Copy.ScanOnly && !cfg.Logging.Quiet {
		fmt.Fprintln(out, renderPlan(result.Files))
	}
	fmt.Fprintln(out, renderSummary(result))
	switch {
	case result.Copy.Skipped:
	case cfg.Copy.ScanOnly:
		fmt.Fprintf(out, "Scan only: %d files would be copied to %s\n", result.Copy.Files, cfg.Paths.Target)
	default:
		fmt.Fprintf(out, "Created %d directories and copied %d files (%s)\n",
			result.Copy.Directories, result.Copy.Files, humanize.Bytes(uint64(result.Copy.Bytes)))
	}
	return nil
}
