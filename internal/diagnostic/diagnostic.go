// Package diagnostic defines the normalized record every linter's output is converted into.
package diagnostic

import (
	"fmt"
)

// Source identifies the tool that produced a diagnostic.
type Source string

const (
	SourceLintmux Source = "lintmux" // in-repository checks
	SourceFlake8  Source = "flake8"
	SourcePylint  Source = "pylint"
)

func (s Source) String() string {
	return string(s)
}

// Diagnostic is one reported issue. All fields except Message are fixed once constructed.
type Diagnostic struct {
	Source    Source `json:"source"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   *int   `json:"end_line,omitempty"`
	EndColumn *int   `json:"end_column,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol,omitempty"`
}

// WithMessage returns a copy of d with its message replaced.
func (d Diagnostic) WithMessage(message string) Diagnostic {
	d.Message = message
	return d
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", d.Path, d.Line, d.Column, d.Code, d.Message)
}

// IntPtr returns a pointer to v, for optional end positions.
func IntPtr(v int) *int {
	return &v
}
