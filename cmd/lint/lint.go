package lint

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/lintmux/cmd/version"
	"github.com/scan-io-git/lintmux/internal/aggregator"
	"github.com/scan-io-git/lintmux/internal/infile"
	"github.com/scan-io-git/lintmux/internal/process"
	"github.com/scan-io-git/lintmux/internal/report"
	"github.com/scan-io-git/lintmux/pkg/shared/config"
	"github.com/scan-io-git/lintmux/pkg/shared/errors"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
	"github.com/scan-io-git/lintmux/pkg/shared/logger"
)

// ExitUnitFailed is returned when at least one lint unit did not complete.
const ExitUnitFailed = 2

// RunOptionsLint holds the arguments for the lint command.
type RunOptionsLint struct {
	Format         string
	OutputPath     string
	PerFile        bool
	Changed        bool
	NoFlake8       bool
	Jobs           int
	Files          []string
	AdditionalArgs []string
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	lintOptions      RunOptionsLint
	exampleLintUsage = `  # Linting a couple of files with flake8 and pylint
  lintmux lint main.py utils.py

  # Linting every file separately with 4 concurrent jobs
  lintmux lint --per-file -j 4 src/*.py

  # Linting files changed in the working tree and writing a SARIF report
  lintmux lint --changed --format sarif --output results/lint.sarif

  # Linting with pylint only and passing additional arguments to pylint
  lintmux lint --no-flake8 main.py -- --disable=C0114`
)

// LintCmd represents the lint command.
var LintCmd = &cobra.Command{
	Use:                   "lint [--format/-f FORMAT] [--output/-o PATH] [--per-file] [-j JOBS] [--no-flake8] {--changed | FILE...} -- [pylint args...]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleLintUsage,
	Short:                 "Runs flake8 and pylint and reports their merged diagnostics",
	Long: `Runs flake8 and pylint on the given files, drops diagnostics reported twice by both tools,
applies the configured tweaks and prints one list ordered by file, line and column.`,
	RunE: runLintCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runLintCommand executes the lint command.
func runLintCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !hasFlags(cmd.Flags()) {
		return cmd.Help()
	}
	if AppConfig == nil {
		AppConfig = config.Default()
	}

	runID := uuid.New()
	logger := logger.NewLogger(AppConfig, "core-lint").With("run_id", runID.String())

	if err := validateLintArgs(&lintOptions, args, cmd.ArgsLenAtDash()); err != nil {
		logger.Error("invalid lint arguments", "error", err)
		return err
	}

	filenames, err := collectFiles(&lintOptions)
	if err != nil {
		logger.Error("failed to collect files", "error", err)
		return err
	}

	cfg := lintConfig(AppConfig.Lint, &lintOptions)
	units := buildUnits(filenames, cfg, lintOptions.PerFile)

	runner := process.New(AppConfig.Runner.Timeout, os.Stderr, logger.Named("runner"))
	agg := aggregator.New(
		runner,
		infile.NewChecker(afero.NewOsFs(), logger.Named("infile")),
		aggregator.DefaultTables(),
		aggregator.Options{
			Interpreter: AppConfig.Runner.Interpreter,
			Jobs:        resolveJobs(lintOptions.Jobs, AppConfig.Runner.Jobs),
		},
		logger,
	)

	result, err := agg.AggregateMany(cmd.Context(), units)
	if err != nil {
		logger.Error("lint command failed", "error", err)
		return err
	}

	meta := report.Meta{RunID: runID.String(), Version: version.CoreVersion, Launches: result.Launches}
	if err := writeReport(lintOptions.OutputPath, lintOptions.Format, result, meta); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}

	if failed := result.Failed(); failed > 0 {
		err := fmt.Errorf("%d of %d lint units failed", failed, len(units))
		logger.Error("lint command completed with failures", "error", err)
		return errors.NewCommandError(err, ExitUnitFailed)
	}

	logger.Info("lint command completed successfully", "diagnostics", len(result.Diagnostics))
	return nil
}

// writeReport renders the result to the output path or to stdout.
func writeReport(path, format string, result aggregator.Result, meta report.Meta) error {
	w, closeFn, err := files.OpenOutput(path)
	if err != nil {
		return err
	}
	if err := report.Write(w, format, result.Diagnostics, meta); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

// Initialize flags for the lint command.
func init() {
	LintCmd.Flags().StringVarP(&lintOptions.Format, "format", "f", report.FormatText, "Format of the report: text, json or sarif.")
	LintCmd.Flags().StringVarP(&lintOptions.OutputPath, "output", "o", "", "Path to the output file. The report is printed to stdout by default.")
	LintCmd.Flags().BoolVar(&lintOptions.PerFile, "per-file", false, "Lint every file as a separate unit.")
	LintCmd.Flags().BoolVar(&lintOptions.Changed, "changed", false, "Lint Python files changed in the working tree of the current git repository.")
	LintCmd.Flags().BoolVar(&lintOptions.NoFlake8, "no-flake8", false, "Do not run flake8.")
	LintCmd.Flags().IntVarP(&lintOptions.Jobs, "jobs", "j", 0, "Number of units linted concurrently. Defaults to runner.jobs from the config.")
	LintCmd.Flags().BoolP("help", "h", false, "Show help for the lint command.")
}
