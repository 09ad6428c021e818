// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"path"
	"regexp"
	"strings"
)

// Cell values that never name an owning system.
const (
	cellPlaceholder = "—"
	cellStatic      = "Static"
)

var (
	// signalColumns covers both the Signals table (Emitter, Consumer(s))
	// and the Intent Objects table (Sender, Receiver).
	signalColumns    = []string{"Emitter", "Consumer(s)", "Sender", "Receiver"}
	interfaceColumns = []string{"Source System", "Target System"}

	authorityLine = regexp.MustCompile(`^\*\*Authority:\*\*\s*(.+)`)
)

// checkSystemIDs registers every System identifier in the system index
// and flags unregistered ones in the documents that reference systems.
func checkSystemIDs(c *Corpus, issues *Collector, _ Set) Set {
	index := c.Layout.SystemIndex
	doc, ok := c.Require(issues, CheckSystemIDs, index)
	if !ok {
		return Set{}
	}
	registered := ExtractIDs(doc.Text, System)
	logf("system-ids: %d registered in %s", len(registered), index)

	for _, rel := range c.Layout.SystemRefFiles() {
		ref, ok := c.Require(issues, CheckSystemIDs, rel)
		if !ok {
			continue
		}
		for _, occ := range ExtractIDsWithLines(ref.Lines, System) {
			if registered.Has(occ.ID) {
				continue
			}
			issues.Errorf(CheckSystemIDs, ref.Path, occ.Line,
				"%s referenced in %s but not registered in %s", occ.ID, rel, index)
		}
	}
	return registered
}

// checkAuthorityEntities requires every system-valued Authority cell in
// the entity tables to be an Owning System in the authority table.
func checkAuthorityEntities(c *Corpus, issues *Collector, _ Set) Set {
	auth, ok := c.Require(issues, CheckAuthorityEntities, c.Layout.Authority)
	if !ok {
		return nil
	}
	ent, ok := c.Require(issues, CheckAuthorityEntities, c.Layout.EntityComponents)
	if !ok {
		return nil
	}

	owning := NewSet()
	for _, row := range Rows(auth.Lines) {
		if v := row.Get("Owning System"); v != "" && v != cellPlaceholder {
			owning.Add(v)
		}
	}

	entName := path.Base(c.Layout.EntityComponents)
	authName := path.Base(c.Layout.Authority)
	for table := range Tables(ent.Lines) {
		for _, row := range table.Rows {
			v := row.Get("Authority")
			if v == "" || v == cellPlaceholder || v == cellStatic {
				continue
			}
			if System.Find(v) == "" || owning.Has(v) {
				continue
			}
			issues.Errorf(CheckAuthorityEntities, ent.Path, row.Line,
				"Authority '%s' in %s not found as Owning System in %s", v, entName, authName)
		}
	}
	return nil
}

// checkSignalsSystems requires every system named as a signal emitter,
// consumer, sender or receiver to be registered.
func checkSignalsSystems(c *Corpus, issues *Collector, systems Set) Set {
	doc, ok := c.Require(issues, CheckSignalsSystems, c.Layout.SignalRegistry)
	if !ok {
		return nil
	}
	name := path.Base(c.Layout.SignalRegistry)
	for table := range Tables(doc.Lines) {
		for _, row := range table.Rows {
			for _, col := range signalColumns {
				v := row.Get(col)
				if v == "" || v == cellPlaceholder {
					continue
				}
				for _, entry := range strings.Split(v, ",") {
					for _, id := range System.FindAll(strings.TrimSpace(entry)) {
						if systems.Has(id) {
							continue
						}
						issues.Errorf(CheckSignalsSystems, doc.Path, row.Line,
							"%s in %s column '%s' is not a registered system", id, name, col)
					}
				}
			}
		}
	}
	return nil
}

// checkInterfacesSystems requires both endpoints of every interface to
// be registered systems.
func checkInterfacesSystems(c *Corpus, issues *Collector, systems Set) Set {
	doc, ok := c.Require(issues, CheckInterfacesSystems, c.Layout.Interfaces)
	if !ok {
		return nil
	}
	name := path.Base(c.Layout.Interfaces)
	for table := range Tables(doc.Lines) {
		for _, row := range table.Rows {
			for _, col := range interfaceColumns {
				v := row.Get(col)
				if v == "" || v == cellPlaceholder {
					continue
				}
				for _, id := range System.FindAll(v) {
					if systems.Has(id) {
						continue
					}
					issues.Errorf(CheckInterfacesSystems, doc.Path, row.Line,
						"%s in %s column '%s' is not a registered system", id, name, col)
				}
			}
		}
	}
	return nil
}

// checkStatesSystems requires the **Authority:** line of every state
// machine to name registered systems only.
func checkStatesSystems(c *Corpus, issues *Collector, systems Set) Set {
	doc, ok := c.Require(issues, CheckStatesSystems, c.Layout.StateTransitions)
	if !ok {
		return nil
	}
	name := path.Base(c.Layout.StateTransitions)
	for i, line := range doc.Lines {
		m := authorityLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		for _, id := range System.FindAll(strings.TrimSpace(m[1])) {
			if systems.Has(id) {
				continue
			}
			issues.Errorf(CheckStatesSystems, doc.Path, i+1,
				"%s in %s Authority line is not a registered system", id, name)
		}
	}
	return nil
}
