// Package textable lays out fixed-width text tables for terminal output.
//
// Every column is as wide as its widest cell, header included, and cells
// are padded with spaces according to the column's alignment.
package textable

import (
	"strings"
	"unicode/utf8"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

type Column struct {
	Header string
	Align  Align
}

// Table accumulates rows and renders them with aligned columns.
type Table struct {
	columns   []Column
	rows      [][]string
	separator string
	rule      rune
}

// New starts a table whose columns are joined by " | " and whose header is
// underlined with dashes.
func New(columns []Column) *Table {
	return &Table{
		columns:   append([]Column(nil), columns...),
		separator: " | ",
		rule:      '-',
	}
}

// AddRow appends a row. Missing cells render empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

// Widths reports the rendered width of every column.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = utf8.RuneCountInString(c.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// Lines renders the header, a rule spanning the full table width and every
// row. Trailing spaces are trimmed.
func (t *Table) Lines() []string {
	widths := t.Widths()

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}

	total := utf8.RuneCountInString(t.separator) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}

	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, t.line(headers, widths), strings.Repeat(string(t.rule), total))
	for _, row := range t.rows {
		lines = append(lines, t.line(row, widths))
	}
	return lines
}

func (t *Table) String() string {
	return strings.Join(t.Lines(), "\n") + "\n"
}

func (t *Table) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(t.separator)
		}
		b.WriteString(Pad(cell, widths[i], t.columns[i].Align))
	}
	return strings.TrimRight(b.String(), " ")
}

// Pad extends s with spaces up to width runes. Longer strings are returned unchanged.
func Pad(s string, width int, align Align) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	fill := strings.Repeat(" ", n)
	if align == AlignRight {
		return fill + s
	}
	return s + fill
}
