// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"fmt"
	"slices"
	"strings"
)

// Table is useful for printing fixed-width tables of facts (spaces, traits,
// implications, proofs) to the terminal.
type Table struct {
	// Maximum width of each column.
	widths []uint
	// Table data stored in row-major format.
	rows [][]FormattedText
}

// NewTable constructs a new table with the given number of columns and rows.
func NewTable(cols uint, rows uint) *Table {
	widths := make([]uint, cols)
	data := make([][]FormattedText, rows)
	//
	for i := range data {
		data[i] = make([]FormattedText, cols)
	}
	//
	return &Table{widths, data}
}

// Set the contents of a given cell in this table.
func (p *Table) Set(col uint, row uint, val FormattedText) {
	p.widths[col] = max(p.widths[col], val.Len())
	p.rows[row][col] = val
}

// Recolour re-applies a format to an already-set cell.
func (p *Table) Recolour(col uint, row uint, escape AnsiEscape) {
	p.rows[row][col] = p.rows[row][col].Format(escape)
}

// Text returns the unformatted text contents of a given cell.
func (p *Table) Text(col uint, row uint) string {
	return p.rows[row][col].String()
}

// Height returns the number of rows in this table.
func (p *Table) Height() uint {
	return uint(len(p.rows))
}

// Sort the rows of this table from the given start row onwards, according to
// a given RowSorter.
func (p *Table) Sort(start uint, sorter RowSorter) {
	slices.SortStableFunc(p.rows[start:], sorter)
}

// SetRow sets the contents of an entire row in this table.
func (p *Table) SetRow(row uint, vals ...FormattedText) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for i, v := range vals {
		p.widths[i] = max(p.widths[i], v.Len())
	}
	//
	p.rows[row] = vals
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *Table) SetMaxWidths(width uint) {
	for i := range p.widths {
		p.SetMaxWidth(uint(i), width)
	}
}

// SetMaxWidth puts an upper bound on the width of a given column.
func (p *Table) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], width)
}

// Print writes the table to stdout, optionally applying ANSI colour escapes.
// Disabling escapes is useful for output being piped somewhere that doesn't
// understand them (redirected to a file, non-tty stdout, etc).
func (p *Table) Print(colour bool) {
	for _, row := range p.rows {
		for j, cell := range row {
			width := p.widths[j]
			clipped := cell.Clip(0, width).Pad(width)
			//
			if colour {
				fmt.Printf(" %s |", clipped.Bytes())
			} else {
				fmt.Printf(" %s |", clipped.String())
			}
		}
		//
		fmt.Println()
	}
}

// ============================================================================
// Row sorting
// ============================================================================

// RowSorter orders two rows of a Table, in the same sense as slices.SortFunc.
type RowSorter func([]FormattedText, []FormattedText) int

// NewRowSorter constructs a sorter which imposes no ordering; further
// criteria are layered on with ByColumn / ByNumericColumn / Reversed.
func NewRowSorter() RowSorter {
	return func(lhs, rhs []FormattedText) int { return 0 }
}

// Reversed inverts the direction of an existing sorter.
func (p RowSorter) Reversed() RowSorter {
	return func(lhs, rhs []FormattedText) int {
		return -p(lhs, rhs)
	}
}

// ByColumn breaks ties in the parent sorter using lexicographic order of the
// given column.
func (p RowSorter) ByColumn(col uint) RowSorter {
	return func(lhs, rhs []FormattedText) int {
		if c := p(lhs, rhs); c != 0 {
			return c
		}
		//
		return strings.Compare(lhs[col].String(), rhs[col].String())
	}
}

// ByNumericColumn breaks ties in the parent sorter by treating the given
// column as a numeric string (shorter is smaller, then lexicographic).
func (p RowSorter) ByNumericColumn(col uint) RowSorter {
	return func(lhs, rhs []FormattedText) int {
		if c := p(lhs, rhs); c != 0 {
			return c
		}
		//
		l, r := lhs[col].String(), rhs[col].String()
		//
		if len(l) != len(r) {
			return len(l) - len(r)
		}
		//
		return strings.Compare(l, r)
	}
}
