package lint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scan-io-git/lintmux/internal/report"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
)

// validateLintArgs validates the arguments provided to the lint command and splits
// positional arguments into files and additional pylint arguments.
func validateLintArgs(opts *RunOptionsLint, args []string, argsLenAtDash int) error {
	opts.Files = args
	opts.AdditionalArgs = nil
	if argsLenAtDash > -1 {
		opts.Files = args[:argsLenAtDash]
		opts.AdditionalArgs = args[argsLenAtDash:]
	}

	if !slices.Contains(report.Formats, strings.ToLower(opts.Format)) {
		return fmt.Errorf("unsupported 'format' %q, expected one of %s", opts.Format, strings.Join(report.Formats, ", "))
	}

	if opts.Jobs < 0 {
		return fmt.Errorf("the 'jobs' flag must be a positive integer")
	}

	if opts.Changed {
		if len(opts.Files) > 0 {
			return fmt.Errorf("you cannot use the 'changed' flag and target files at the same time")
		}
		return nil
	}

	if len(opts.Files) == 0 {
		return fmt.Errorf("either the 'changed' flag or at least one target file must be specified")
	}

	for _, f := range opts.Files {
		if err := files.ValidatePath(f); err != nil {
			return fmt.Errorf("invalid target: %w", err)
		}
	}

	return nil
}
