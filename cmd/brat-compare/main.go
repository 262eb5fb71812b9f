package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/annoeval/brat-compare/internal/brat"
	"github.com/annoeval/brat-compare/internal/config"
	"github.com/annoeval/brat-compare/internal/evaluation"
	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
	"github.com/annoeval/brat-compare/internal/pkg/logger"
	"github.com/annoeval/brat-compare/internal/report"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(apperrors.ExitCodeOf(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brat-compare",
		Short: "Score agreement between two BRAT annotation corpora",
		Long: `brat-compare compares a system's BRAT annotations against a reference
set over the same documents and reports per-type precision, recall and F1
together with the exact spans that disagree.

Run 'brat-compare compare SYSTEM_DIR REFERENCE_DIR' to score a corpus pair.
Run 'brat-compare --help' for available commands.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		compareCmd(),
		versionCmd(),
	)

	return rootCmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [SYSTEM_DIR REFERENCE_DIR]",
		Short: "Compare system annotations against reference annotations",
		Long: `Read two directories of NAME.txt/NAME.ann files and match the system
spans against the reference spans document by document.

Matching modes:
- strict: spans match only when start and end offsets are both equal
- relax:  spans of the same type match when they overlap at all

Directories may also come from the config file or BRAT_SYSTEM_DIR and
BRAT_REFERENCE_DIR.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runCompare,
	}

	cmd.Flags().StringP("mode", "m", "", "matching mode (strict, relax)")
	cmd.Flags().StringP("format", "f", "", "report format (text, json)")
	cmd.Flags().BoolP("evidence", "e", false, "list false positive and false negative spans")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, args, cfg); err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format).WithRun(runID)

	reader := brat.NewReader(log).WithFileDigests(cfg.IsDevelopment())
	sys, err := reader.Read(cfg.Compare.SystemDir)
	if err != nil {
		log.WithError(err).Error("reading system corpus failed")
		return err
	}
	ref, err := reader.Read(cfg.Compare.ReferenceDir)
	if err != nil {
		log.WithError(err).Error("reading reference corpus failed")
		return err
	}

	mode := evaluation.ParseMode(cfg.Compare.Mode)
	result, err := evaluation.NewComparer(log).Compare(sys.Corpus, ref.Corpus, mode)
	if err != nil {
		log.WithError(err).Error("comparison failed")
		return err
	}

	run := report.RunInfo{
		RunID:                runID,
		Mode:                 mode.String(),
		Documents:            sys.Corpus.Len(),
		SystemDir:            sys.Dir,
		ReferenceDir:         ref.Dir,
		SystemFingerprint:    sys.Fingerprint,
		ReferenceFingerprint: ref.Fingerprint,
	}
	err = report.Render(cmd.OutOrStdout(), run, result, report.Options{
		Format:   cfg.Report.Format,
		Evidence: cfg.Report.ShowEvidence,
	})
	if err != nil && apperrors.CodeOf(err) == "" {
		err = apperrors.InternalError("rendering report", err)
	}
	if err != nil {
		log.WithError(err).Error("rendering report failed")
	}
	return err
}

// applyFlags lets positional arguments and explicitly set flags override
// configuration, then validates the result once.
func applyFlags(cmd *cobra.Command, args []string, cfg *config.Config) error {
	if len(args) > 0 {
		cfg.Compare.SystemDir = args[0]
	}
	if len(args) > 1 {
		cfg.Compare.ReferenceDir = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Compare.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("format") {
		cfg.Report.Format, _ = flags.GetString("format")
	}
	if flags.Changed("evidence") {
		cfg.Report.ShowEvidence, _ = flags.GetBool("evidence")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}

	if cfg.Compare.SystemDir == "" || cfg.Compare.ReferenceDir == "" {
		return apperrors.ValidationError("both SYSTEM_DIR and REFERENCE_DIR are required")
	}
	return cfg.Validate()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "brat-compare %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
