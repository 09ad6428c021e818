// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultChecks_Order(t *testing.T) {
	var got []string
	for _, c := range DefaultChecks() {
		got = append(got, c.Name)
	}
	want := []string{
		"system-ids", "authority-entities", "signals-systems", "interfaces-systems",
		"states-systems", "glossary-not-terms", "bidirectional-registration",
		"spec-slice", "task-spec",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("battery order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CleanCorpus(t *testing.T) {
	root := writeCorpus(t, cleanCorpus())
	got := Run(root, Layout{})
	if len(got) != 0 {
		t.Fatalf("got %d issues, want none:\n%s", len(got), RenderText(got, TextOptions{}))
	}
	if ExitCode(got) != ExitClean {
		t.Errorf("ExitCode: got %d, want %d", ExitCode(got), ExitClean)
	}
	out, err := RenderJSON(got)
	if err != nil || out != "[]" {
		t.Errorf("FormatJSON: got %q (err=%v), want []", out, err)
	}
}

func TestRun_DanglingAuthorityReference(t *testing.T) {
	root := writeCorpus(t, with(cleanCorpus(), map[string]string{
		"scaffold/design/authority.md": `# Authority

| Variable | Owning System | Readers |
|----------|---------------|---------|
| health | SYS-001 | SYS-003 |
`,
	}))
	got := byCheck(Run(root, Layout{}), CheckSystemIDs)
	want := []Issue{{
		Check:    CheckSystemIDs,
		Severity: SeverityError,
		Message:  "SYS-003 referenced in design/authority.md but not registered in design/systems/_index.md",
		File:     docPath(root, "design/authority.md"),
		Line:     5,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MissingIndexCascades(t *testing.T) {
	root := writeCorpus(t, with(cleanCorpus(), map[string]string{
		"scaffold/design/systems/_index.md": "",
	}))
	items := Run(root, Layout{})
	for _, check := range []string{CheckSignalsSystems, CheckInterfacesSystems, CheckStatesSystems} {
		found := byCheck(items, check)
		if len(found) == 0 {
			t.Errorf("%s: expected cascading ERRORs from the empty registered set", check)
		}
		for _, it := range found {
			if it.Severity != SeverityError {
				t.Errorf("%s: got %s, want ERROR", check, it.Severity)
			}
		}
	}
	if ExitCode(items) != ExitFailed {
		t.Error("missing index must fail the run")
	}
}

func TestRun_WarningsOnlyExitZero(t *testing.T) {
	root := writeCorpus(t, with(cleanCorpus(), map[string]string{
		"scaffold/design/combat.md":       "Players lose hp.\n",
		"scaffold/specs/SPEC-002-loot.md": "# SPEC-002\n",
	}))
	items := Run(root, Layout{})
	if len(items) != 2 {
		t.Fatalf("got %d issues, want 2:\n%s", len(items), RenderText(items, TextOptions{}))
	}
	if ExitCode(items) != ExitClean {
		t.Errorf("warnings only: ExitCode = %d, want %d", ExitCode(items), ExitClean)
	}
}

func TestRun_CustomLayout(t *testing.T) {
	files := make(map[string]string)
	for rel, content := range cleanCorpus() {
		files[strings.Replace(rel, "scaffold/", "docs/", 1)] = content
	}
	files["docs/design/glossary.md"] = ""
	files["docs/design/terms.md"] = cleanCorpus()["scaffold/design/glossary.md"]
	root := writeCorpus(t, files)

	got := Run(root, Layout{DocsDir: "docs", Glossary: "design/terms.md"})
	if len(got) != 0 {
		t.Errorf("relocated corpus: got %d issues, want none:\n%s", len(got), RenderText(got, TextOptions{}))
	}
}

func TestEngine_PanicIsolated(t *testing.T) {
	root := writeCorpus(t, cleanCorpus())
	ran := false
	checks := []Check{
		{"boom", func(*Corpus, *Collector, Set) Set { panic("bad table") }},
		{"after", func(_ *Corpus, issues *Collector, _ Set) Set {
			ran = true
			issues.Warnf("after", "", 0, "still running")
			return nil
		}},
	}
	got := NewEngine(NewCorpus(root, Layout{})).WithChecks(checks).Run().Issues()
	if !ran {
		t.Fatal("check after a panic did not run")
	}
	if len(got) != 2 || got[0].Check != "boom" || got[0].Message != "internal error: bad table" || got[0].Severity != SeverityError {
		t.Errorf("got %+v", got)
	}
}

func TestEngine_ThreadsRegisteredSet(t *testing.T) {
	var seen []Set
	checks := []Check{
		{"observe-before", func(_ *Corpus, _ *Collector, s Set) Set { seen = append(seen, s); return nil }},
		{"register", func(*Corpus, *Collector, Set) Set { return NewSet("SYS-042") }},
		{"observe-after", func(_ *Corpus, _ *Collector, s Set) Set { seen = append(seen, s); return nil }},
		{"observe-again", func(_ *Corpus, _ *Collector, s Set) Set { seen = append(seen, s); return nil }},
	}
	NewEngine(NewCorpus(t.TempDir(), Layout{})).WithChecks(checks).Run()
	if seen[0] != nil {
		t.Errorf("set before registration: got %v, want nil", seen[0])
	}
	for i, s := range seen[1:] {
		if !s.Has("SYS-042") {
			t.Errorf("observer %d: got %v, want registered set", i+1, s)
		}
	}
}
