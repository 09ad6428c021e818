// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- spec-slice ---

func TestCheckSpecSlice_UncoveredSpecs(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"scaffold/specs/SPEC-001-combat.md":  "# SPEC-001\n",
		"scaffold/specs/SPEC-003-economy.md": "# SPEC-003\n",
		"scaffold/specs/SPEC-002-loot.md":    "# SPEC-002 mentions SPEC-009\n",
		"scaffold/specs/_index.md":           "| SPEC-010 |\n",
		"scaffold/slices/SLICE-001.md":       "| SPEC-001 | Combat |\n",
		"scaffold/slices/notes.md":           "SPEC-002 is only mentioned outside a slice file\n",
	})
	got := runCheck(root, checkSpecSlice, nil)
	want := []Issue{
		{
			Check:    CheckSpecSlice,
			Severity: SeverityWarning,
			Message:  "SPEC-002 defined in specs/ but not listed in any slice's Specs Included table",
			File:     docPath(root, "specs/SPEC-002-loot.md"),
		},
		{
			Check:    CheckSpecSlice,
			Severity: SeverityWarning,
			Message:  "SPEC-003 defined in specs/ but not listed in any slice's Specs Included table",
			File:     docPath(root, "specs/SPEC-003-economy.md"),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckSpecSlice_MissingDirectories(t *testing.T) {
	cases := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"no specs", map[string]string{"scaffold/slices/SLICE-001.md": "x\n"}, "specs/ directory not found"},
		{"no slices", map[string]string{"scaffold/specs/SPEC-001.md": "x\n"}, "slices/ directory not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runCheck(writeCorpus(t, tc.files), checkSpecSlice, nil)
			if len(got) != 1 || got[0].Message != tc.want || got[0].Severity != SeverityWarning {
				t.Errorf("got %+v, want one %q warning", got, tc.want)
			}
		})
	}
}

func TestCheckSpecSlice_NoSpecs(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"scaffold/specs/README.md":     "nothing yet\n",
		"scaffold/slices/SLICE-001.md": "x\n",
	})
	if got := runCheck(root, checkSpecSlice, nil); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

// --- task-spec ---

func TestCheckTaskSpec(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"scaffold/specs/SPEC-001-combat.md": "# SPEC-001\n",
		"scaffold/specs/_index.md":          "| SPEC-002 | Listed only in the index |\n",
		"scaffold/tasks/_index.md": `| ID | Spec |
|----|------|
| TASK-003 | SPEC-002 |
| TASK-004 | SPEC-404 |
`,
		"scaffold/tasks/TASK-001-attack.md": "# TASK-001\n\n> **Implements:** SPEC-001\n",
		"scaffold/tasks/TASK-002-defend.md": "# TASK-002\n\nIntro\n> **Implements:** SPEC-777\n",
		"scaffold/tasks/TASK-003-loot.md":   "# TASK-003\n",
		"scaffold/tasks/TASK-004-trade.md":  "# TASK-004\n",
		"scaffold/tasks/TASK-005-idle.md":   "# TASK-005\n\nImplements SPEC-001 in prose only.\n",
	})
	got := runCheck(root, checkTaskSpec, nil)
	want := []Issue{
		{
			Check:    CheckTaskSpec,
			Severity: SeverityError,
			Message:  "TASK-002 references SPEC-777 but that spec does not exist",
			File:     docPath(root, "tasks/TASK-002-defend.md"),
			Line:     4,
		},
		{
			Check:    CheckTaskSpec,
			Severity: SeverityError,
			Message:  "TASK-004 references SPEC-404 but that spec does not exist",
			File:     docPath(root, "tasks/TASK-004-trade.md"),
		},
		{
			Check:    CheckTaskSpec,
			Severity: SeverityWarning,
			Message:  "TASK-005 does not reference any SPEC-### in its Implements field",
			File:     docPath(root, "tasks/TASK-005-idle.md"),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckTaskSpec_NoSpecsSkipsExistence(t *testing.T) {
	root := writeCorpus(t, map[string]string{
		"scaffold/tasks/TASK-001.md": "> **Implements:** SPEC-001\n",
	})
	if got := runCheck(root, checkTaskSpec, nil); len(got) != 0 {
		t.Errorf("got %+v, want none when no spec exists", got)
	}
}

func TestCheckTaskSpec_MissingTasksDir(t *testing.T) {
	root := writeCorpus(t, map[string]string{"scaffold/specs/SPEC-001.md": "x\n"})
	got := runCheck(root, checkTaskSpec, nil)
	if len(got) != 1 || got[0].Message != "tasks/ directory not found" {
		t.Errorf("got %+v, want one missing-directory warning", got)
	}
}

func TestImplementsRef(t *testing.T) {
	ref, ok := implementsRef([]string{"x", "**Implements:** SPEC-01 and **Implements:** SPEC-02", "**Implements:** SPEC-03"})
	if !ok || ref.Spec != "SPEC-01" || ref.Line != 2 {
		t.Errorf("got %+v (ok=%v), want SPEC-01 on line 2", ref, ok)
	}
	if _, ok := implementsRef([]string{"Implements: SPEC-01"}); ok {
		t.Error("plain Implements: must not count as the field")
	}
}
