// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// maxRootDepth bounds the upward search for the docs directory.
const maxRootDepth = 10

// ErrRootNotFound is returned by FindRoot when no corpus root exists
// above the start directory or in the working directory.
var ErrRootNotFound = errors.New("cannot find scaffold root")

// FindRoot returns the project root: the directory that contains
// layout.DocsDir. It walks upward from start looking for a DocsDir that
// holds layout.Marker, then falls back to the working directory, which
// only needs to contain DocsDir.
func FindRoot(start string, layout Layout) (string, error) {
	layout.applyDefaults()

	anchor, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory %s: %w", start, err)
	}
	for range maxRootDepth {
		candidate := filepath.Join(anchor, layout.DocsDir)
		if isDir(candidate) && fileExists(filepath.Join(candidate, layout.Marker)) {
			logf("findRoot: found %s", anchor)
			return anchor, nil
		}
		parent := filepath.Dir(anchor)
		if parent == anchor {
			break
		}
		anchor = parent
	}

	if cwd, err := os.Getwd(); err == nil && isDir(filepath.Join(cwd, layout.DocsDir)) {
		logf("findRoot: falling back to cwd %s", cwd)
		return cwd, nil
	}
	return "", fmt.Errorf("%w from %s", ErrRootNotFound, start)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
