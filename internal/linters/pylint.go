package linters

import (
	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
	"github.com/scan-io-git/lintmux/pkg/shared/errors"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
)

// pylintUsageError is the exit bit pylint sets when it could not run at all.
const pylintUsageError = 32

// Pylint drives `pylint --output-format=json`, which prints a flat list of records.
type Pylint struct{}

func (Pylint) Source() diagnostic.Source {
	return diagnostic.SourcePylint
}

func (Pylint) Args(cfg *options.Config) []string {
	return append([]string{"--output-format=json"}, cfg.Strings(options.Pylint)...)
}

// Allowed rejects only the usage-error code; other codes are bit flags for message categories.
func (Pylint) Allowed(exitCode int) bool {
	return exitCode != pylintUsageError
}

func (p Pylint) Parse(filenames []string, out []byte) ([]diagnostic.Diagnostic, error) {
	tool := p.Source().String()
	raw, err := decodeJSON(tool, out)
	if err != nil {
		return nil, err
	}
	records, ok := raw.([]any)
	if !ok {
		return nil, errors.NewMalformedRecordError(tool, "output", jsonType(raw))
	}

	diags := make([]diagnostic.Diagnostic, 0, len(records))
	for _, v := range records {
		d, err := p.toDiagnostic(filenames, v)
		if err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}
	return diags, nil
}

func (p Pylint) toDiagnostic(filenames []string, v any) (diagnostic.Diagnostic, error) {
	tool := p.Source().String()
	rec, err := asRecord(tool, v)
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}

	path, err := rec.str("path")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	line, err := rec.integer("line")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	column, err := rec.integer("column")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	code, err := rec.str("message-id")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	message, err := rec.str("message")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	endLine, err := rec.optionalInt("endLine")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	endColumn, err := rec.optionalInt("endColumn")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}
	symbol, err := rec.str("symbol")
	if err != nil {
		return diagnostic.Diagnostic{}, err
	}

	return diagnostic.Diagnostic{
		Source:    diagnostic.SourcePylint,
		Path:      files.ProperPath(usedFilename(tool, filenames, path)),
		Line:      line,
		Column:    column,
		EndLine:   endLine,
		EndColumn: endColumn,
		Code:      code,
		Message:   message,
		Symbol:    symbol,
	}, nil
}
