// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refcheck

import (
	"iter"
	"regexp"
	"strings"
)

const (
	cellDelimiter = "|"

	// placeholderMarker marks a row that stands in for an empty table.
	placeholderMarker = "*None yet*"
)

var (
	separatorCell = regexp.MustCompile(`^[-:]+$`)
	dashFiller    = strings.NewReplacer("—", "", "-", "")
)

// Row is one data row of a pipe table.
type Row struct {
	// Cells maps each header to the row's cell under it. Missing
	// trailing cells map to "".
	Cells map[string]string

	// Line is the 1-based line of the row in the scanned document.
	Line int
}

// Get returns the trimmed cell under column, or "" when the table has
// no such column.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Cells[column])
}

// Table is one contiguous block of table lines with at least one data row.
type Table struct {
	Header []string
	Rows   []Row
}

// Tables yields every table in lines, in document order. A document
// without table lines yields nothing. The sequence is lazy and scans the
// lines once per iteration.
func Tables(lines []string) iter.Seq[Table] {
	return func(yield func(Table) bool) {
		i := 0
		for i < len(lines) {
			if !isTableLine(lines[i]) {
				i++
				continue
			}
			start := i
			for i < len(lines) && isTableLine(lines[i]) {
				i++
			}
			t, ok := parseBlock(lines[start:i], start+1)
			if !ok {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Rows returns the data rows of every table in lines, in document order.
func Rows(lines []string) []Row {
	var rows []Row
	for t := range Tables(lines) {
		rows = append(rows, t.Rows...)
	}
	return rows
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), cellDelimiter)
}

// splitCells splits a table line into trimmed cells, dropping the empty
// cells produced by the leading and trailing delimiters.
func splitCells(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), cellDelimiter)
	parts = parts[1:] // leading delimiter
	if n := len(parts); n > 0 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// parseBlock turns one block of table lines into a Table. firstLine is
// the document line number of block[0]. ok is false when the block has
// no data rows.
func parseBlock(block []string, firstLine int) (Table, bool) {
	header := splitCells(block[0])
	t := Table{Header: header}

	for idx, line := range block[1:] {
		cells := splitCells(line)
		if idx == 0 && isSeparatorRow(cells) {
			continue
		}
		if isPlaceholderRow(cells) {
			continue
		}
		row := Row{Cells: make(map[string]string, len(header)), Line: firstLine + idx + 1}
		for col, name := range header {
			if col < len(cells) {
				row.Cells[name] = cells[col]
			} else {
				row.Cells[name] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, len(t.Rows) > 0
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return true
}

// isPlaceholderRow reports rows that carry no content: the *None yet*
// marker, or nothing but dash filler.
func isPlaceholderRow(cells []string) bool {
	joined := strings.Join(cells, " ")
	if strings.Contains(joined, placeholderMarker) {
		return true
	}
	return strings.TrimSpace(dashFiller.Replace(joined)) == ""
}
