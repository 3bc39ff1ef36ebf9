// Package tweaks conditionally drops or rewords individual diagnostics.
package tweaks

import (
	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
)

// Key selects the rule for a diagnostic.
type Key struct {
	Source diagnostic.Source
	Code   string
}

// Rule decides whether a diagnostic is kept and what its message becomes.
// ShouldKeep only sees the options listed in UsedOptions. A nil ShouldKeep keeps
// every diagnostic and a nil Reword keeps the message unchanged.
type Rule struct {
	UsedOptions []options.Option
	ShouldKeep  func(d diagnostic.Diagnostic, relevant []options.Arg) bool
	Reword      func(d diagnostic.Diagnostic) string
}

// Table holds the rules by key. It is read-only once built.
type Table map[Key]Rule

// Apply returns the kept diagnostics, reworded, in their original order.
func Apply(diags []diagnostic.Diagnostic, table Table, cfg *options.Config) []diagnostic.Diagnostic {
	result := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, d := range diags {
		rule, ok := table[Key{Source: d.Source, Code: d.Code}]
		if !ok {
			result = append(result, d)
			continue
		}
		if rule.ShouldKeep != nil && !rule.ShouldKeep(d, cfg.Subset(rule.UsedOptions)) {
			continue
		}
		message := d.Message
		if rule.Reword != nil {
			message = rule.Reword(d)
		}
		result = append(result, d.WithMessage(message))
	}
	return result
}
