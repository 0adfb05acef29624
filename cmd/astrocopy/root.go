package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"astrocopy/internal/config"
)

type runFlags struct {
	directoryOnly bool
	quiet         bool
	scanOnly      bool
	includeScope  bool
	verify        bool
	ignore        []string
	group         string
	naming        string
	newFilename   string
	report        string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &runFlags{}
	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "astrocopy [flags] SOURCE TARGET",
		Short: "Organise telescope capture media into an archive",
		Long: "astrocopy scans the telescope's capture folders, flags raw frames without a\n" +
			"processed counterpart as rejected, and copies everything into an archive\n" +
			"grouped by observation, date, or capture.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected SOURCE and TARGET, got %d argument(s)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := ctx.loadConfig(flags.override(cmd, args))
			if err != nil {
				return err
			}
			return runOrganize(cmd, cfg, flags.report)
		},
	}

	f := rootCmd.Flags()
	f.BoolVarP(&flags.directoryOnly, "directory-only", "d", false, "Directory only, do not recurse subdirectories")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Quiet mode (don't report all file actions)")
	f.BoolVarP(&flags.scanOnly, "scan-only", "s", false, "Scan only (don't actually copy)")
	f.BoolVarP(&flags.includeScope, "include-scope", "c", false, "Include scope name in destination path")
	f.BoolVar(&flags.verify, "verify", false, "Verify every copy with SHA-256")
	f.StringSliceVarP(&flags.ignore, "ignore", "i", nil, "What to ignore: nothing, rejection, rejected, jpeg, tiff, allbutlast (comma separated)")
	f.StringVarP(&flags.group, "group-strategy", "g", "", "Grouping strategy: observation, date, capture")
	f.StringVarP(&flags.naming, "target-filename-strategy", "t", "", "Naming strategy: original, new, ticks, tickshex")
	f.StringVarP(&flags.newFilename, "new-filename", "n", "", "Stem for accepted files when the naming strategy is new")
	f.StringVar(&flags.report, "report", "", "Write a YAML manifest of the run to this file")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// override applies explicitly set flags and positional roots on top of the
// configuration file.
func (f *runFlags) override(cmd *cobra.Command, args []string) config.Override {
	return func(cfg *config.Config) {
		set := cmd.Flags().Changed
		if set("directory-only") {
			cfg.Scan.Recurse = !f.directoryOnly
		}
		if set("quiet") {
			cfg.Logging.Quiet = f.quiet
		}
		if set("scan-only") {
			cfg.Copy.ScanOnly = f.scanOnly
		}
		if set("include-scope") {
			cfg.Organize.IncludeScope = f.includeScope
		}
		if set("verify") {
			cfg.Copy.Verify = f.verify
		}
		if set("ignore") {
			cfg.Organize.Ignore = f.ignore
		}
		if set("group-strategy") {
			cfg.Organize.GroupStrategy = config.GroupStrategy(f.group)
		}
		if set("target-filename-strategy") {
			cfg.Organize.NamingStrategy = config.NamingStrategy(f.naming)
			if !set("new-filename") {
				cfg.Organize.NewFilename = ""
			}
		}
		if set("new-filename") {
			cfg.Organize.NewFilename = f.newFilename
		}
		if len(args) == 2 {
			cfg.Paths.Source = args[0]
			cfg.Paths.Target = args[1]
		}
	}
}
