// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import "fmt"

// CheckFunc runs one check over the corpus. systems is the registered
// System set produced by an earlier check, nil before one has run. A
// check that registers identifiers returns them; every other check
// returns nil.
type CheckFunc func(c *Corpus, issues *Collector, systems Set) Set

// Check is one named consistency rule.
type Check struct {
	Name string
	Run  CheckFunc
}

// Check names.
const (
	CheckSystemIDs         = "system-ids"
	CheckAuthorityEntities = "authority-entities"
	CheckSignalsSystems    = "signals-systems"
	CheckInterfacesSystems = "interfaces-systems"
	CheckStatesSystems     = "states-systems"
	CheckGlossaryNotTerms  = "glossary-not-terms"
	CheckBidirectional     = "bidirectional-registration"
	CheckSpecSlice         = "spec-slice"
	CheckTaskSpec          = "task-spec"
)

// DefaultChecks returns the fixed battery in run order. system-ids must
// precede the checks that consume the registered set.
func DefaultChecks() []Check {
	return []Check{
		{CheckSystemIDs, checkSystemIDs},
		{CheckAuthorityEntities, checkAuthorityEntities},
		{CheckSignalsSystems, checkSignalsSystems},
		{CheckInterfacesSystems, checkInterfacesSystems},
		{CheckStatesSystems, checkStatesSystems},
		{CheckGlossaryNotTerms, checkGlossaryNotTerms},
		{CheckBidirectional, checkBidirectionalRegistration},
		{CheckSpecSlice, checkSpecSlice},
		{CheckTaskSpec, checkTaskSpec},
	}
}

// Engine runs a battery of checks over one corpus.
type Engine struct {
	corpus *Corpus
	checks []Check
}

// NewEngine returns an Engine running DefaultChecks over corpus.
func NewEngine(corpus *Corpus) *Engine {
	return &Engine{corpus: corpus, checks: DefaultChecks()}
}

// WithChecks replaces the battery.
func (e *Engine) WithChecks(checks []Check) *Engine {
	e.checks = checks
	return e
}

// Run executes every check in order and returns the collected issues.
func (e *Engine) Run() *Collector {
	issues := &Collector{}
	var systems Set
	for _, chk := range e.checks {
		logf("engine: running %s", chk.Name)
		before := len(issues.items)
		if out := runIsolated(chk, e.corpus, issues, systems); out != nil {
			systems = out
			logf("engine: %s registered %d system(s)", chk.Name, len(out))
		}
		logf("engine: %s raised %d issue(s)", chk.Name, len(issues.items)-before)
	}
	errs, warnings := issues.Counts()
	logf("engine: done errors=%d warnings=%d", errs, warnings)
	return issues
}

// runIsolated runs chk, turning a panic into an ERROR issue so one
// broken check cannot abort the run.
func runIsolated(chk Check, c *Corpus, issues *Collector, systems Set) (out Set) {
	defer func() {
		if r := recover(); r != nil {
			logf("engine: %s panicked: %v", chk.Name, r)
			issues.Add(chk.Name, SeverityError, fmt.Sprintf("internal error: %v", r), "", 0)
			out = nil
		}
	}()
	return chk.Run(c, issues, systems)
}

// Run checks the corpus at root with the default battery and returns the
// issues in emission order. It does not search for root; see FindRoot.
func Run(root string, layout Layout) []Issue {
	return NewEngine(NewCorpus(root, layout)).Run().Issues()
}
