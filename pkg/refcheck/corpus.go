// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Corpus is the document tree under one project root.
type Corpus struct {
	Root   string
	Layout Layout
}

// NewCorpus returns a Corpus rooted at root. Empty layout fields take
// their defaults.
func NewCorpus(root string, layout Layout) *Corpus {
	layout.applyDefaults()
	return &Corpus{Root: root, Layout: layout}
}

// Path returns the absolute location of rel, a path inside the docs
// directory.
func (c *Corpus) Path(rel string) string {
	return filepath.Join(c.Root, c.Layout.DocsDir, filepath.FromSlash(rel))
}

// Document is one file read whole.
type Document struct {
	Path  string
	Text  string
	Lines []string
}

// Read loads rel. ok is false when the file is missing or unreadable.
func (c *Corpus) Read(rel string) (Document, bool) {
	return readDocument(c.Path(rel))
}

func readDocument(path string) (Document, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logf("readDocument: %s: %v", path, err)
		}
		return Document{}, false
	}
	text := string(data)
	return Document{Path: path, Text: text, Lines: splitLines(text)}, true
}

// splitLines splits text on line breaks without producing a trailing
// empty line for a final newline.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Require loads rel, recording a WARNING for check when it is missing.
func (c *Corpus) Require(issues *Collector, check, rel string) (Document, bool) {
	doc, ok := c.Read(rel)
	if !ok {
		issues.Warnf(check, c.Path(rel), 0, "File not found: %s", rel)
	}
	return doc, ok
}

// Glob returns the files in the docs subdirectory dir whose names match
// pattern, sorted. It does not descend into subdirectories.
func (c *Corpus) Glob(dir, pattern string) []string {
	matches, err := filepath.Glob(filepath.Join(c.Path(dir), pattern))
	if err != nil {
		logf("glob %s/%s: %v", dir, pattern, err)
		return nil
	}
	var files []string
	for _, m := range matches {
		if !isDir(m) {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// IsDir reports whether the docs subdirectory dir exists.
func (c *Corpus) IsDir(dir string) bool {
	return isDir(c.Path(dir))
}
