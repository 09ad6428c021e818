// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"path/filepath"
	"regexp"
	"strings"
)

var implementsField = regexp.MustCompile(`\*\*Implements:\*\*\s*(SPEC-\d+)`)

// specFiles maps each Spec identifier named by a SPEC-*.md file name to
// that file.
func specFiles(c *Corpus) map[string]string {
	files := make(map[string]string)
	for _, f := range c.Glob(c.Layout.SpecsDir, "SPEC-*.md") {
		for _, id := range Spec.FindAll(filepath.Base(f)) {
			if _, seen := files[id]; !seen {
				files[id] = f
			}
		}
	}
	return files
}

// checkSpecSlice warns about specs that no slice includes.
func checkSpecSlice(c *Corpus, issues *Collector, _ Set) Set {
	l := c.Layout
	if !c.IsDir(l.SpecsDir) {
		issues.Warnf(CheckSpecSlice, c.Path(l.SpecsDir), 0, "%s/ directory not found", l.SpecsDir)
		return nil
	}
	if !c.IsDir(l.SlicesDir) {
		issues.Warnf(CheckSpecSlice, c.Path(l.SlicesDir), 0, "%s/ directory not found", l.SlicesDir)
		return nil
	}

	specs := specFiles(c)
	if len(specs) == 0 {
		return nil
	}

	covered := NewSet()
	for _, f := range c.Glob(l.SlicesDir, "SLICE-*.md") {
		doc, ok := readDocument(f)
		if !ok {
			continue
		}
		for _, id := range Spec.FindAll(doc.Text) {
			covered.Add(id)
		}
	}
	logf("spec-slice: %d spec(s), %d referenced by slices", len(specs), len(covered))

	ids := make(Set, len(specs))
	for id := range specs {
		ids.Add(id)
	}
	for _, id := range ids.Sorted() {
		if covered.Has(id) {
			continue
		}
		issues.Warnf(CheckSpecSlice, specs[id], 0,
			"%s defined in %s/ but not listed in any slice's Specs Included table", id, l.SpecsDir)
	}
	return nil
}

// taskSpecRef is the Spec a task implements and where it says so. Line
// is zero when the reference came from the task index.
type taskSpecRef struct {
	Spec string
	Line int
}

// implementsRef returns the first **Implements:** reference in lines.
func implementsRef(lines []string) (taskSpecRef, bool) {
	for i, line := range lines {
		if m := implementsField.FindStringSubmatch(line); m != nil {
			return taskSpecRef{Spec: m[1], Line: i + 1}, true
		}
	}
	return taskSpecRef{}, false
}

// indexSpecRef looks taskID up in the task index rows and returns the
// Spec column of the first row whose ID cell contains it.
func indexSpecRef(rows []Row, taskID string) (taskSpecRef, bool) {
	for _, row := range rows {
		if taskID == "" || !strings.Contains(row.Get("ID"), taskID) {
			continue
		}
		if spec := Spec.Find(row.Get("Spec")); spec != "" {
			return taskSpecRef{Spec: spec}, true
		}
	}
	return taskSpecRef{}, false
}

// checkTaskSpec requires every task to implement a spec, and that spec to
// exist when any spec exists at all.
func checkTaskSpec(c *Corpus, issues *Collector, _ Set) Set {
	l := c.Layout
	if !c.IsDir(l.TasksDir) {
		issues.Warnf(CheckTaskSpec, c.Path(l.TasksDir), 0, "%s/ directory not found", l.TasksDir)
		return nil
	}

	existing := NewSet()
	for id := range specFiles(c) {
		existing.Add(id)
	}
	if doc, ok := c.Read(filepath.ToSlash(filepath.Join(l.SpecsDir, "_index.md"))); ok {
		for id := range ExtractIDs(doc.Text, Spec) {
			existing.Add(id)
		}
	}

	var indexRows []Row
	indexLoaded := false

	for _, f := range c.Glob(l.TasksDir, "TASK-*.md") {
		doc, ok := readDocument(f)
		if !ok {
			continue
		}
		taskID := Task.Find(filepath.Base(f))
		if taskID == "" {
			taskID = filepath.Base(f)
		}

		ref, found := implementsRef(doc.Lines)
		if !found {
			if !indexLoaded {
				indexLoaded = true
				if idx, ok := c.Read(filepath.ToSlash(filepath.Join(l.TasksDir, "_index.md"))); ok {
					indexRows = Rows(idx.Lines)
				}
			}
			ref, found = indexSpecRef(indexRows, taskID)
		}

		switch {
		case !found:
			issues.Warnf(CheckTaskSpec, f, 0,
				"%s does not reference any SPEC-### in its Implements field", taskID)
		case len(existing) > 0 && !existing.Has(ref.Spec):
			issues.Errorf(CheckTaskSpec, f, ref.Line,
				"%s references %s but that spec does not exist", taskID, ref.Spec)
		}
	}
	return nil
}
