package linters

import (
	"sort"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
	"github.com/scan-io-git/lintmux/pkg/shared/errors"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
)

// Flake8 drives `flake8 --format=json`, which prints an object mapping each filename to its records.
type Flake8 struct{}

func (Flake8) Source() diagnostic.Source {
	return diagnostic.SourceFlake8
}

func (Flake8) Args(cfg *options.Config) []string {
	return append([]string{"--format=json"}, cfg.Strings(options.Flake8)...)
}

// Allowed accepts 0 (clean) and 1 (issues found).
func (Flake8) Allowed(exitCode int) bool {
	return exitCode == 0 || exitCode == 1
}

func (f Flake8) Parse(filenames []string, out []byte) ([]diagnostic.Diagnostic, error) {
	tool := f.Source().String()
	raw, err := decodeJSON(tool, out)
	if err != nil {
		return nil, err
	}
	byFile, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewMalformedRecordError(tool, "output", jsonType(raw))
	}

	type group struct {
		used    string
		index   int
		key     string
		records []any
	}
	index := make(map[string]int, len(filenames))
	for i, fn := range filenames {
		if _, seen := index[fn]; !seen {
			index[fn] = i
		}
	}

	groups := make([]group, 0, len(byFile))
	for key, v := range byFile {
		records, ok := v.([]any)
		if !ok {
			return nil, errors.NewMalformedRecordError(tool, key, jsonType(v))
		}
		if len(records) == 0 {
			continue
		}
		used := usedFilename(tool, filenames, key)
		groups = append(groups, group{used: used, index: index[used], key: key, records: records})
	}
	// Map iteration is random; restore the order in which files were submitted.
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].index != groups[j].index {
			return groups[i].index < groups[j].index
		}
		return groups[i].key < groups[j].key
	})

	var diags []diagnostic.Diagnostic
	for _, g := range groups {
		for _, v := range g.records {
			d, err := f.toDiagnostic(filenames, v)
			if err != nil {
				return nil, err
			}
			diags = append(diags, d)
		}
	}
	return diags, nil
}

func (f Flake8) toDiagnostic(filenames []string, v any) (diagnostic.Diagnostic, error) {
	tool := f.Source().String()
	rec, err := asRecord(tool, v)
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}

	filename, err := rec.str("filename")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	line, err := rec.integer("line_number")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	column, err := rec.integer("column_number")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	code, err := rec.str("code")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	text, err := rec.str("text")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}

	return diagnostic.Diagnostic{
		Source:  diagnostic.SourceFlake8,
		Path:    files.ProperPath(usedFilename(tool, filenames, filename)),
		Line:    line,
		Column:  column,
		Code:    code,
		Message: text,
	}, nil
}
