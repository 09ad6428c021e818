// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// cleanCorpus returns the documents of a corpus on which every check
// passes. Keys are paths relative to the project root.
func cleanCorpus() map[string]string {
	return map[string]string{
		"scaffold/_index.md": "# Scaffold\n",
		"scaffold/design/systems/_index.md": `# Systems Index

## Registered Systems

| ID | Name | File |
|----|------|------|
| SYS-001 | Combat | SYS-001-combat.md |
| SYS-002 | Inventory | SYS-002-inventory.md |
`,
		"scaffold/design/design-doc.md": `# Design Doc

## System Design Index

| System | Purpose |
|--------|---------|
| SYS-001 | Combat |
| SYS-002 | Inventory |

---

## Open Questions
`,
		"scaffold/design/authority.md": `# Authority

| Variable | Owning System | Readers |
|----------|---------------|---------|
| health | SYS-001 | SYS-002 |
| gold | SYS-002 | — |
`,
		"scaffold/reference/entity-components.md": `# Entities

## Player

| Component | Type | Authority |
|-----------|------|-----------|
| health | int | SYS-001 |
| name | string | Static |
`,
		"scaffold/reference/signal-registry.md": `# Signals

## Signals

| Signal | Emitter | Consumer(s) |
|--------|---------|-------------|
| damaged | SYS-001 | SYS-002 |

## Intent Objects

| Intent | Sender | Receiver |
|--------|--------|----------|
| *None yet* | | |
`,
		"scaffold/design/interfaces.md": `# Interfaces

| Interface | Source System | Target System |
|-----------|---------------|---------------|
| loot | SYS-001 | SYS-002 |
`,
		"scaffold/design/state-transitions.md": `# State Transitions

## Health

**Authority:** SYS-001
`,
		"scaffold/design/glossary.md": `# Glossary

| Term | Definition | NOT (do not use) |
|------|------------|------------------|
| Health | Remaining damage capacity | hp, life total |
`,
		"scaffold/specs/SPEC-001-combat.md":   "# SPEC-001 Combat\n",
		"scaffold/slices/SLICE-001-combat.md": "# SLICE-001\n\n| Spec | Title |\n|------|-------|\n| SPEC-001 | Combat |\n",
		"scaffold/tasks/TASK-001-attack.md":   "# TASK-001 Attack\n\n> **Implements:** SPEC-001\n",
	}
}

// writeCorpus writes files under a fresh temp directory and returns it.
// A value of "" deletes the entry from the written tree.
func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		if content == "" {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// with returns a copy of base with overrides applied.
func with(base map[string]string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// runCheck runs a single check over the corpus at root.
func runCheck(root string, fn CheckFunc, systems Set) []Issue {
	issues := &Collector{}
	fn(NewCorpus(root, Layout{}), issues, systems)
	return issues.Issues()
}

// byCheck keeps the issues raised by check.
func byCheck(items []Issue, check string) []Issue {
	var out []Issue
	for _, it := range items {
		if it.Check == check {
			out = append(out, it)
		}
	}
	return out
}

// docPath returns the absolute path of a docs-relative file under root.
func docPath(root, rel string) string {
	return filepath.Join(root, "scaffold", filepath.FromSlash(rel))
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
