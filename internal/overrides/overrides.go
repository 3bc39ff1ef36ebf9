// Package overrides drops diagnostics that are dominated by another diagnostic on the same line.
package overrides

import (
	"sync"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
)

// Table maps a code to the codes that suppress it when reported on the same line.
type Table map[string][]string

// Resolve returns the diagnostics that are not suppressed, in their original order.
// Codes are grouped by line number alone, across every file in diags; callers that
// need per-file scoping must partition first.
func Resolve(diags []diagnostic.Diagnostic, table Table) []diagnostic.Diagnostic {
	codesOnLines := make(map[int]map[string]struct{})
	for _, d := range diags {
		codes, ok := codesOnLines[d.Line]
		if !ok {
			codes = make(map[string]struct{})
			codesOnLines[d.Line] = codes
		}
		codes[d.Code] = struct{}{}
	}

	result := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if !suppressed(table[d.Code], codesOnLines[d.Line]) {
			result = append(result, d)
		}
	}
	return result
}

func suppressed(suppressors []string, present map[string]struct{}) bool {
	for _, code := range suppressors {
		if _, ok := present[code]; ok {
			return true
		}
	}
	return false
}

// Default returns the built-in table of flake8 and pylint checks that report the same problem.
// The table is built on first use and must not be modified.
var Default = sync.OnceValue(func() Table {
	return Table{
		// flake8 code suppressed by its pylint twin
		"F401": {"W0611"}, // unused import
		"F841": {"W0612"}, // unused local variable
		"E711": {"C0121"}, // comparison to None
		"E712": {"C0121"}, // comparison to True/False
		"F811": {"E0102"}, // redefinition
		"E999": {"E0001"}, // syntax error
		"F821": {"E0602"}, // undefined name

		// pylint code suppressed by its flake8 twin
		"C0301": {"E501"},         // line too long
		"C0303": {"W291", "W293"}, // trailing whitespace
		"C0304": {"W292"},         // missing final newline
		"C0305": {"W391"},         // trailing newlines
		"W0702": {"E722"},         // bare except
		"W1401": {"W605"},         // anomalous backslash
		"C0321": {"E701", "E702"}, // multiple statements
	}
})
