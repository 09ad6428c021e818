// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/mesh-intelligence/refcheck/pkg/refcheck"
)

const (
	binaryDir   = "bin"
	binaryName  = "refcheck"
	mainPackage = "./cmd/refcheck"
)

// Default target runs when mage is invoked without arguments.
var Default = Build

// Build compiles the refcheck binary into bin/.
func Build() error {
	outPath := filepath.Join(binaryDir, binaryName)
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := sh.RunV("go", "build", "-o", outPath, mainPackage); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	return nil
}

// Install runs go install for the refcheck command.
func Install() error {
	return sh.RunV("go", "install", mainPackage)
}

// Lint runs golangci-lint on the project.
func Lint() error {
	if err := sh.RunV("golangci-lint", "run", "./..."); err != nil {
		return fmt.Errorf("golangci-lint: %w", err)
	}
	return nil
}

// Test runs go test on all packages.
func Test() error {
	if err := sh.RunV("go", "test", "./..."); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Clean removes the build artifact directory.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return fmt.Errorf("removing %s: %w", binaryDir, err)
	}
	return nil
}

// Check runs the integrity checks on the scaffold corpus above the
// working directory and fails when any ERROR is found.
func Check() error {
	cfg := refcheck.DefaultConfig()
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	root, err := refcheck.FindRoot(wd, cfg.Layout)
	if err != nil {
		return err
	}
	if p := filepath.Join(root, refcheck.DefaultConfigFile); fileExists(p) {
		if cfg, err = refcheck.LoadConfig(p); err != nil {
			return err
		}
	}

	issues := refcheck.Run(root, cfg.Layout)
	fmt.Println(refcheck.RenderText(issues, refcheck.TextOptions{}))
	if refcheck.ExitCode(issues) != refcheck.ExitClean {
		return mg.Fatal(refcheck.ExitFailed, "referential integrity errors found")
	}
	return nil
}

// All lints, tests, and builds.
func All() {
	mg.SerialDeps(Lint, Test, Build)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
