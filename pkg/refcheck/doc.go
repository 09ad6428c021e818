// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package refcheck checks referential integrity across a scaffold
// document corpus. It locates the corpus root, extracts pipe tables and
// typed identifiers (SYS-001, SPEC-014, ...) from the markdown documents,
// runs a fixed battery of cross-document checks, and renders the
// collected issues as text, JSON or YAML.
//
// The checks only read documents. Every finding is recorded on a
// Collector. Callers decide on the exit status with ExitCode.
package refcheck
