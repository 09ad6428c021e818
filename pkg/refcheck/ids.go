// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"regexp"
	"sort"
)

// Kind is an identifier kind such as System (SYS-001).
type Kind struct {
	Name   string
	Prefix string
	re     *regexp.Regexp
}

// NewKind returns a Kind matching PREFIX-<digits>. The prefix must not
// follow a letter or digit and the digits are consumed greedily, so
// SYS-0012 is one identifier, SUBSYS-001 is none, and _SYS-001_ is SYS-001.
func NewKind(name, prefix string) Kind {
	return Kind{
		Name:   name,
		Prefix: prefix,
		re:     regexp.MustCompile(`(?:^|[^A-Za-z0-9])(` + regexp.QuoteMeta(prefix) + `-\d+)`),
	}
}

// Identifier kinds used across the corpus.
var (
	System = NewKind("System", "SYS")
	Spec   = NewKind("Spec", "SPEC")
	Slice  = NewKind("Slice", "SLICE")
	Task   = NewKind("Task", "TASK")
)

// FindAll returns every identifier of kind k in s, in order.
func (k Kind) FindAll(s string) []string {
	matches := k.re.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return nil
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m[1]
	}
	return ids
}

// Find returns the first identifier of kind k in s, or "".
func (k Kind) Find(s string) string {
	if m := k.re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// Set is a set of identifier literals.
type Set map[string]struct{}

// NewSet returns a Set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Has reports whether id is a member.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Occurrence is one identifier match and the 1-based line it was on.
type Occurrence struct {
	ID   string
	Line int
}

// ExtractIDs returns the distinct identifiers of kind found in text.
func ExtractIDs(text string, kind Kind) Set {
	return NewSet(kind.FindAll(text)...)
}

// ExtractIDsWithLines returns every identifier of kind in lines with its
// line number. Order and duplicates are preserved.
func ExtractIDsWithLines(lines []string, kind Kind) []Occurrence {
	var out []Occurrence
	for i, line := range lines {
		for _, id := range kind.FindAll(line) {
			out = append(out, Occurrence{ID: id, Line: i + 1})
		}
	}
	return out
}
