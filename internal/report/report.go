// Package report renders aggregated diagnostics in the supported output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/lintmux/internal/aggregator"
	"github.com/scan-io-git/lintmux/internal/diagnostic"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"

	informationURI = "https://github.com/scan-io-git/lintmux"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatSARIF}

// Meta describes the invocation a report belongs to.
type Meta struct {
	RunID    string              `json:"run_id"`
	Version  string              `json:"version"`
	Launches []aggregator.Launch `json:"launches"`
}

type jsonReport struct {
	Meta
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
}

// Write renders diags to w in the given format.
func Write(w io.Writer, format string, diags []diagnostic.Diagnostic, meta Meta) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, diags)
	case FormatJSON:
		return writeJSON(w, diags, meta)
	case FormatSARIF:
		return writeSARIF(w, diags, meta)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func writeText(w io.Writer, diags []diagnostic.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, diags []diagnostic.Diagnostic, meta Meta) error {
	if diags == nil {
		diags = []diagnostic.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{Meta: meta, Diagnostics: diags}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeSARIF(w io.Writer, diags []diagnostic.Diagnostic, meta Meta) error {
	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("lintmux", informationURI)
	if meta.Version != "" {
		version := meta.Version
		run.Tool.Driver.Version = &version
	}
	if meta.RunID != "" {
		run.Properties = sarif.Properties{"runId": meta.RunID}
	}

	for _, d := range diags {
		level := toSarifLevel(d)
		rule := run.AddRule(RuleID(d)).
			WithDescription(ruleDescription(d)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level})

		region := sarif.NewRegion().WithStartLine(d.Line)
		if d.Column > 0 {
			region = region.WithStartColumn(d.Column)
		}
		if d.EndLine != nil {
			region = region.WithEndLine(*d.EndLine)
		}
		if d.EndColumn != nil {
			region = region.WithEndColumn(*d.EndColumn)
		}
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.Path)).
				WithRegion(region),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(level).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	reportSarif.AddRun(run)

	if err := reportSarif.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

// RuleID is the SARIF rule identifier of a diagnostic.
func RuleID(d diagnostic.Diagnostic) string {
	return d.Source.String() + "/" + d.Code
}

func ruleDescription(d diagnostic.Diagnostic) string {
	if d.Symbol != "" {
		return d.Symbol
	}
	return d.Code
}

// toSarifLevel maps the message category encoded in the code prefix to a SARIF level.
func toSarifLevel(d diagnostic.Diagnostic) string {
	if d.Source == diagnostic.SourceLintmux {
		return "warning"
	}
	if d.Code == "" {
		return "none"
	}
	switch strings.ToUpper(d.Code[:1]) {
	case "E", "F":
		return "error"
	case "W":
		return "warning"
	case "C", "R", "I":
		return "note"
	default:
		return "none"
	}
}
