package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/lintmux/cmd/lint"
	"github.com/scan-io-git/lintmux/cmd/version"
	"github.com/scan-io-git/lintmux/pkg/shared/config"
	"github.com/scan-io-git/lintmux/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "lintmux [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Lintmux runs Python linters and merges their diagnostics.",
		Long: `Lintmux runs flake8 and pylint as external processes, normalizes their output,
	removes diagnostics reported by both tools and prints one deterministically ordered list.
	`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the lintmux YAML config file.")
	rootCmd.AddCommand(lint.LintCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return 0
}

func initConfig() error {
	var err error

	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return err
	}

	lint.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
