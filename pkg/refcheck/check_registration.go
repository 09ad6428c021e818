// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"path"
	"regexp"
	"strings"
)

var shallowHeading = regexp.MustCompile(`^#{1,3}\s`)

// sectionIDs collects the System identifiers on the table lines of one
// document section, keeping the line of each identifier's first
// occurrence. The section starts after any line containing title and
// ends where stop says so.
func sectionIDs(lines []string, title string, stop func(trimmed string) bool) map[string]int {
	ids := make(map[string]int)
	in := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, title) {
			in = true
			continue
		}
		if !in {
			continue
		}
		if isTableLine(trimmed) {
			for _, id := range System.FindAll(trimmed) {
				if _, seen := ids[id]; !seen {
					ids[id] = i + 1
				}
			}
			continue
		}
		if stop(trimmed) {
			break
		}
	}
	return ids
}

// checkBidirectionalRegistration requires the Registered Systems table of
// the system index and the System Design Index section of the design doc
// to list the same systems. Sections are found by their literal titles.
func checkBidirectionalRegistration(c *Corpus, issues *Collector, _ Set) Set {
	l := c.Layout
	index, ok := c.Require(issues, CheckBidirectional, l.SystemIndex)
	if !ok {
		return nil
	}
	design, ok := c.Require(issues, CheckBidirectional, l.DesignDoc)
	if !ok {
		return nil
	}

	indexIDs := sectionIDs(index.Lines, l.RegisteredSystemsHeading, func(s string) bool {
		return strings.HasPrefix(s, "#")
	})
	designIDs := sectionIDs(design.Lines, l.DesignIndexHeading, func(s string) bool {
		return strings.HasPrefix(s, "---") || shallowHeading.MatchString(s)
	})
	logf("bidirectional-registration: index=%d designDoc=%d", len(indexIDs), len(designIDs))

	indexName := strings.TrimPrefix(l.SystemIndex, "design/")
	designName := path.Base(l.DesignDoc)

	for _, id := range sortedKeys(indexIDs) {
		if _, ok := designIDs[id]; ok {
			continue
		}
		issues.Errorf(CheckBidirectional, index.Path, indexIDs[id],
			"%s registered in %s but missing from %s %s", id, indexName, designName, l.DesignIndexHeading)
	}
	for _, id := range sortedKeys(designIDs) {
		if _, ok := indexIDs[id]; ok {
			continue
		}
		issues.Errorf(CheckBidirectional, design.Path, designIDs[id],
			"%s listed in %s %s but missing from %s", id, designName, l.DesignIndexHeading, indexName)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	s := make(Set, len(m))
	for k := range m {
		s.Add(k)
	}
	return s.Sorted()
}
