// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the optional configuration file looked up at the
// corpus root when no explicit path is given.
const DefaultConfigFile = "refcheck.yaml"

// Config holds all refcheck settings. Callers either construct a Config
// in Go code or place a refcheck.yaml next to the docs directory and call
// LoadConfig.
type Config struct {
	// Format is the default output format: "text", "json" or "yaml"
	// (default "text"). The --format flag overrides it.
	Format string `yaml:"format"`

	// Layout locates the documents the checks read.
	Layout Layout `yaml:"layout"`
}

// Layout maps each document role to a path. Document paths are relative
// to DocsDir; DocsDir is relative to the corpus root. Overriding a path
// moves where a check looks, never what it checks.
type Layout struct {
	// DocsDir is the directory holding the whole corpus (default "scaffold").
	DocsDir string `yaml:"docs_dir"`

	// Marker is the file that must exist in DocsDir for the root search
	// to accept a candidate (default "_index.md").
	Marker string `yaml:"marker"`

	// SystemIndex is the canonical system registry
	// (default "design/systems/_index.md").
	SystemIndex string `yaml:"system_index"`

	// Authority holds the Owning System table (default "design/authority.md").
	Authority string `yaml:"authority"`

	// Interfaces holds the Source/Target System table
	// (default "design/interfaces.md").
	Interfaces string `yaml:"interfaces"`

	// StateTransitions holds the state machines with **Authority:** lines
	// (default "design/state-transitions.md").
	StateTransitions string `yaml:"state_transitions"`

	// Glossary holds the Term / NOT table (default "design/glossary.md").
	Glossary string `yaml:"glossary"`

	// DesignDoc holds the System Design Index section
	// (default "design/design-doc.md").
	DesignDoc string `yaml:"design_doc"`

	// SignalRegistry holds the signal and intent tables
	// (default "reference/signal-registry.md").
	SignalRegistry string `yaml:"signal_registry"`

	// EntityComponents holds the entity tables with an Authority column
	// (default "reference/entity-components.md").
	EntityComponents string `yaml:"entity_components"`

	// SpecsDir, SlicesDir and TasksDir hold SPEC-*.md, SLICE-*.md and
	// TASK-*.md files (defaults "specs", "slices", "tasks").
	SpecsDir  string `yaml:"specs_dir"`
	SlicesDir string `yaml:"slices_dir"`
	TasksDir  string `yaml:"tasks_dir"`

	// ScanDirs are searched recursively for glossary NOT-terms.
	ScanDirs []string `yaml:"scan_dirs"`

	// RegisteredSystemsHeading starts the index table read by the
	// bidirectional check (default "Registered Systems").
	RegisteredSystemsHeading string `yaml:"registered_systems_heading"`

	// DesignIndexHeading starts the design doc section read by the
	// bidirectional check (default "System Design Index").
	DesignIndexHeading string `yaml:"design_index_heading"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// SystemRefFiles lists the documents whose System identifiers must all
// be registered in the system index, in check order.
func (l Layout) SystemRefFiles() []string {
	return []string{
		l.Authority,
		l.Interfaces,
		l.SignalRegistry,
		l.EntityComponents,
		l.StateTransitions,
	}
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = FormatText
	}
	c.Layout.applyDefaults()
}

func (l *Layout) applyDefaults() {
	l.DocsDir = orDefault(l.DocsDir, "scaffold")
	l.Marker = orDefault(l.Marker, "_index.md")
	l.SystemIndex = orDefault(l.SystemIndex, "design/systems/_index.md")
	l.Authority = orDefault(l.Authority, "design/authority.md")
	l.Interfaces = orDefault(l.Interfaces, "design/interfaces.md")
	l.StateTransitions = orDefault(l.StateTransitions, "design/state-transitions.md")
	l.Glossary = orDefault(l.Glossary, "design/glossary.md")
	l.DesignDoc = orDefault(l.DesignDoc, "design/design-doc.md")
	l.SignalRegistry = orDefault(l.SignalRegistry, "reference/signal-registry.md")
	l.EntityComponents = orDefault(l.EntityComponents, "reference/entity-components.md")
	l.SpecsDir = orDefault(l.SpecsDir, "specs")
	l.SlicesDir = orDefault(l.SlicesDir, "slices")
	l.TasksDir = orDefault(l.TasksDir, "tasks")
	if len(l.ScanDirs) == 0 {
		// theory/ is deliberately absent.
		l.ScanDirs = []string{
			"design", "reference", "inputs", "phases", "specs",
			"tasks", "slices", "engine", "decisions",
		}
	}
	l.RegisteredSystemsHeading = orDefault(l.RegisteredSystemsHeading, "Registered Systems")
	l.DesignIndexHeading = orDefault(l.DesignIndexHeading, "System Design Index")
}

// orDefault returns val if non-empty, otherwise fallback.
func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

// LoadConfig reads a configuration YAML file and returns a Config with
// defaults applied to every field the file leaves empty.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Format != "" {
		if err := ValidateFormat(cfg.Format); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}
