// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import "fmt"

// Severity grades an Issue.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Issue is one diagnostic. An empty File or a zero Line means the issue
// has no such location.
type Issue struct {
	Check    string
	Severity Severity
	Message  string
	File     string
	Line     int
}

// issueRecord is the serialized form of an Issue. Field order is the
// wire key order; absent locations encode as null.
type issueRecord struct {
	Check    string   `json:"check" yaml:"check"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	File     *string  `json:"file" yaml:"file"`
	Line     *int     `json:"line" yaml:"line"`
}

func (i Issue) record() issueRecord {
	rec := issueRecord{Check: i.Check, Severity: i.Severity, Message: i.Message}
	if i.File != "" {
		file := i.File
		rec.File = &file
	}
	if i.Line != 0 {
		line := i.Line
		rec.Line = &line
	}
	return rec
}

// Collector accumulates issues for one run, in emission order.
type Collector struct {
	items []Issue
}

// Add records an issue.
func (c *Collector) Add(check string, severity Severity, message, file string, line int) {
	c.items = append(c.items, Issue{
		Check:    check,
		Severity: severity,
		Message:  message,
		File:     file,
		Line:     line,
	})
}

// Errorf records an ERROR issue with a formatted message.
func (c *Collector) Errorf(check, file string, line int, format string, args ...any) {
	c.Add(check, SeverityError, fmt.Sprintf(format, args...), file, line)
}

// Warnf records a WARNING issue with a formatted message.
func (c *Collector) Warnf(check, file string, line int, format string, args ...any) {
	c.Add(check, SeverityWarning, fmt.Sprintf(format, args...), file, line)
}

// Issues returns the recorded issues in emission order.
func (c *Collector) Issues() []Issue {
	out := make([]Issue, len(c.items))
	copy(out, c.items)
	return out
}

// HasErrors reports whether any ERROR issue was recorded.
func (c *Collector) HasErrors() bool {
	return hasErrors(c.items)
}

// Counts returns the number of ERROR and WARNING issues.
func (c *Collector) Counts() (errs, warnings int) {
	return countSeverities(c.items)
}

func hasErrors(items []Issue) bool {
	for _, it := range items {
		if it.Severity == SeverityError {
			return true
		}
	}
	return false
}

func countSeverities(items []Issue) (errs, warnings int) {
	for _, it := range items {
		switch it.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}
