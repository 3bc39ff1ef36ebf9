package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/linters"
	"github.com/scan-io-git/lintmux/internal/process"
	"github.com/scan-io-git/lintmux/pkg/shared/config"
	"github.com/scan-io-git/lintmux/pkg/shared/logger"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = runtime.Version()
	BuildTime     = "unknown"
)

// ToolVersion holds the version reported by an external linter.
type ToolVersion struct {
	Tool    string
	Version string
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application and the linters it runs",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := AppConfig
			if cfg == nil {
				cfg = config.Default()
			}
			logger := logger.NewLogger(cfg, "core-version")
			runner := process.New(cfg.Runner.Timeout, io.Discard, logger)

			tools := toolVersions(cmd.Context(), runner, cfg.Runner.Interpreter)
			printVersionInfo(os.Stdout, tools)
		},
	}
}

// toolVersions asks every supported linter for its version. Failures are reported as unknown.
func toolVersions(ctx context.Context, runner linters.CommandRunner, interpreter string) []ToolVersion {
	sources := []diagnostic.Source{diagnostic.SourceFlake8, diagnostic.SourcePylint}
	versions := make([]ToolVersion, 0, len(sources))
	for _, src := range sources {
		versions = append(versions, ToolVersion{Tool: src.String(), Version: toolVersion(ctx, runner, interpreter, src)})
	}
	return versions
}

func toolVersion(ctx context.Context, runner linters.CommandRunner, interpreter string, src diagnostic.Source) string {
	res, err := runner.Run(ctx, []string{interpreter, "-m", src.String(), "--version"})
	if err != nil || res.ExitCode != 0 {
		return "unknown"
	}
	out := strings.TrimSpace(string(res.Stdout))
	if out == "" {
		return "unknown"
	}
	// pylint prints one line per component; the first one names pylint itself.
	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first)
}

// printVersionInfo prints the version information for the core application and the linters.
func printVersionInfo(w io.Writer, tools []ToolVersion) {
	fmt.Fprintf(w, "Core Version: v%s\n", CoreVersion)
	fmt.Fprintln(w, "Linter Versions:")
	for _, tool := range tools {
		fmt.Fprintf(w, "  %s: %s\n", tool.Tool, tool.Version)
	}
	fmt.Fprintf(w, "Go Version: %s\n", GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", BuildTime)
}
