// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Exit statuses.
const (
	ExitClean  = 0
	ExitFailed = 1
)

// SetupCheck names the issue reported when no corpus root is found.
const SetupCheck = "setup"

// RootNotFoundMessage is the text of the setup issue.
const RootNotFoundMessage = "Cannot find scaffold root. Run from the project root where scaffold/ exists."

var reportRule = strings.Repeat("=", 70)

// ValidateFormat returns an error unless format is a known output format.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
}

// TextOptions controls RenderText.
type TextOptions struct {
	// Color styles the severity tags for a terminal.
	Color bool
}

var (
	errorTag   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningTag = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

func (o TextOptions) tag(sev Severity) string {
	tag := "[" + string(sev) + "]"
	if !o.Color {
		return tag
	}
	switch sev {
	case SeverityError:
		return errorTag.Render(tag)
	case SeverityWarning:
		return warningTag.Render(tag)
	}
	return tag
}

// RenderText renders issues as the human-readable report.
func RenderText(items []Issue, opts TextOptions) string {
	if len(items) == 0 {
		return "All referential integrity checks passed."
	}
	errs, warnings := countSeverities(items)

	var b strings.Builder
	fmt.Fprintf(&b, "Referential Integrity Report: %d error(s), %d warning(s)\n", errs, warnings)
	b.WriteString(reportRule + "\n")
	for _, it := range items {
		loc := ""
		if it.File != "" {
			loc = "  " + it.File
			if it.Line != 0 {
				loc += fmt.Sprintf(":%d", it.Line)
			}
		}
		fmt.Fprintf(&b, "%s (%s)%s\n", opts.tag(it.Severity), it.Check, loc)
		fmt.Fprintf(&b, "  %s\n\n", it.Message)
	}
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Total: %d error(s), %d warning(s)", errs, warnings)
	return b.String()
}

func records(items []Issue) []issueRecord {
	recs := make([]issueRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, it.record())
	}
	return recs
}

// RenderJSON renders issues as an indented JSON array. A clean run
// renders as [].
func RenderJSON(items []Issue) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records(items)); err != nil {
		return "", fmt.Errorf("encoding issues as json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// RenderYAML renders issues as a YAML sequence.
func RenderYAML(items []Issue) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records(items)); err != nil {
		return "", fmt.Errorf("encoding issues as yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding issues as yaml: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Format renders issues in the named format.
func Format(format string, items []Issue, opts TextOptions) (string, error) {
	switch format {
	case FormatText:
		return RenderText(items, opts), nil
	case FormatJSON:
		return RenderJSON(items)
	case FormatYAML:
		return RenderYAML(items)
	}
	return "", ValidateFormat(format)
}

// ExitCode returns ExitFailed when any ERROR issue exists. WARNING-only
// runs are clean.
func ExitCode(items []Issue) int {
	if hasErrors(items) {
		return ExitFailed
	}
	return ExitClean
}

// SetupIssue returns the single issue reported when the corpus root
// cannot be located.
func SetupIssue() Issue {
	return Issue{Check: SetupCheck, Severity: SeverityError, Message: RootNotFoundMessage}
}
