// Package infile reports in-file linter configuration comments that the configuration says to ignore.
package infile

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
)

const (
	Code   = "LM001"
	Symbol = "ignored-infile-config"

	// All matches every tool in the ignored set.
	All = "all"
)

var (
	directiveRe = regexp.MustCompile(`(?i)#\s*(pylint|flake8|lintmux)\s*:`)
	noqaRe      = regexp.MustCompile(`(?i)#\s*noqa\b`)
)

// Checker scans source files for in-file configuration.
type Checker struct {
	fs     afero.Fs
	logger hclog.Logger
}

// NewChecker creates a Checker reading files from fs.
func NewChecker(fs afero.Fs, logger hclog.Logger) *Checker {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Checker{fs: fs, logger: logger}
}

// Check returns one diagnostic per configuration comment that belongs to an ignored tool.
func (c *Checker) Check(filenames []string, ignored []string) ([]diagnostic.Diagnostic, error) {
	tools := make(map[string]struct{}, len(ignored))
	for _, name := range ignored {
		tools[strings.ToLower(name)] = struct{}{}
	}
	_, all := tools[All]

	var diags []diagnostic.Diagnostic
	for _, filename := range filenames {
		found, err := c.checkFile(filename, func(tool string) bool {
			_, ok := tools[tool]
			return all || ok
		})
		if err != nil {
			return nil, err
		}
		diags = append(diags, found...)
	}
	c.logger.Debug("in-file configuration checked", "files", len(filenames), "diagnostics", len(diags))
	return diags, nil
}

func (c *Checker) checkFile(filename string, isIgnored func(tool string) bool) ([]diagnostic.Diagnostic, error) {
	f, err := c.fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", filename, err)
	}
	defer f.Close()

	path := files.ProperPath(filename)
	var diags []diagnostic.Diagnostic

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		for _, found := range findDirectives(text) {
			if !isIgnored(found.tool) {
				continue
			}
			diags = append(diags, diagnostic.Diagnostic{
				Source:  diagnostic.SourceLintmux,
				Path:    path,
				Line:    line,
				Column:  found.offset + 1,
				Code:    Code,
				Message: fmt.Sprintf("in-file configuration for %s is ignored: %q", found.tool, found.text),
				Symbol:  Symbol,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", filename, err)
	}
	return diags, nil
}

type directive struct {
	tool   string
	offset int
	text   string
}

// findDirectives locates configuration comments on a single line, ordered by position.
func findDirectives(line string) []directive {
	var found []directive
	for _, loc := range directiveRe.FindAllStringSubmatchIndex(line, -1) {
		found = append(found, directive{
			tool:   strings.ToLower(line[loc[2]:loc[3]]),
			offset: loc[0],
			text:   commentText(line, loc[0]),
		})
	}
	for _, loc := range noqaRe.FindAllStringIndex(line, -1) {
		found = append(found, directive{
			tool:   "flake8",
			offset: loc[0],
			text:   commentText(line, loc[0]),
		})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })
	return found
}

// commentText returns the comment starting at offset up to the next comment marker.
func commentText(line string, offset int) string {
	rest := line[offset:]
	if next := strings.Index(rest[1:], "#"); next >= 0 {
		rest = rest[:next+1]
	}
	return strings.TrimSpace(rest)
}
