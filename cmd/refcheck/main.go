// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command refcheck checks referential integrity across the scaffold
// documents of a project.
//
// Usage:
//
//	refcheck [--format text|json|yaml] [--config path] [--root dir]
//
// Exit code 0 if no errors, 1 if errors were found or the scaffold root
// is missing.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
