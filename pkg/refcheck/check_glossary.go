// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	glossaryTermColumn = "Term"
	glossaryNotColumn  = "NOT (do not use)"
	commentPrefix      = "<!--"
)

// forbiddenTerm is one glossary NOT-term and the term to use instead.
type forbiddenTerm struct {
	term      string // lower case
	canonical string
	re        *regexp.Regexp
}

// loadForbiddenTerms reads the NOT column of every glossary table.
func loadForbiddenTerms(lines []string) []forbiddenTerm {
	var terms []forbiddenTerm
	for _, row := range Rows(lines) {
		canonical := row.Get(glossaryTermColumn)
		notCol := row.Get(glossaryNotColumn)
		if notCol == "" || notCol == cellPlaceholder {
			continue
		}
		for _, bad := range strings.Split(notCol, ",") {
			bad = strings.ToLower(strings.TrimSpace(bad))
			if bad == "" {
				continue
			}
			terms = append(terms, forbiddenTerm{
				term:      bad,
				canonical: canonical,
				re:        termPattern(bad),
			})
		}
	}
	return terms
}

// termPattern matches term as a whole word. Word characters are Unicode
// letters, digits and underscore, so a term like café matches on its own.
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(term) + `(?:$|[^\p{L}\p{N}_])`)
}

// checkGlossaryNotTerms flags every use of a glossary NOT-term outside
// the glossary itself. Files are read one at a time.
func checkGlossaryNotTerms(c *Corpus, issues *Collector, _ Set) Set {
	glossary, ok := c.Require(issues, CheckGlossaryNotTerms, c.Layout.Glossary)
	if !ok {
		return nil
	}
	terms := loadForbiddenTerms(glossary.Lines)
	if len(terms) == 0 {
		return nil
	}
	logf("glossary-not-terms: %d forbidden term(s)", len(terms))

	for _, dir := range c.Layout.ScanDirs {
		scanDir := c.Path(dir)
		if !isDir(scanDir) {
			continue
		}
		err := filepath.WalkDir(scanDir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				logf("glossary-not-terms: walking %s: %v", p, err)
				return nil
			}
			if d.IsDir() || filepath.Ext(p) != ".md" || samePath(p, glossary.Path) {
				return nil
			}
			scanForbidden(p, terms, issues)
			return nil
		})
		if err != nil {
			logf("glossary-not-terms: walking %s: %v", scanDir, err)
		}
	}
	return nil
}

func scanForbidden(p string, terms []forbiddenTerm, issues *Collector) {
	doc, ok := readDocument(p)
	if !ok {
		return
	}
	for i, line := range doc.Lines {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			continue
		}
		lower := strings.ToLower(line)
		for _, t := range terms {
			if !t.re.MatchString(lower) {
				continue
			}
			issues.Warnf(CheckGlossaryNotTerms, p, i+1,
				"Glossary NOT-term '%s' found (use '%s' instead)", t.term, t.canonical)
		}
	}
}

// samePath compares two paths after resolving them to absolute form.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
