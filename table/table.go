package table

import (
	"fmt"
	"io"
	"strings"
)

// Table prints left aligned columns separated by at least two spaces.
type Table struct {
	header            []string
	rows              [][]string
	columnWidths      []int
	columnMarginRight int
}

func New(columns ...string) *Table {
	t := &Table{
		header:            columns,
		columnWidths:      make([]int, len(columns)),
		columnMarginRight: 2,
	}
	t.fit(columns)
	return t
}

// AddRow appends a row. Missing trailing cells are printed empty; extra cells are
// an error.
func (t *Table) AddRow(columns ...string) error {
	if len(columns) > len(t.header) {
		return fmt.Errorf("row has %d columns, table has %d", len(columns), len(t.header))
	}
	t.rows = append(t.rows, columns)
	t.fit(columns)
	return nil
}

// Print writes the table to w. Nothing is written for a table without rows.
func (t *Table) Print(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}

	if err := t.printRow(w, t.header); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := t.printRow(w, row); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) fit(columns []string) {
	for i, col := range columns {
		if t.columnWidths[i] < len(col) {
			t.columnWidths[i] = len(col)
		}
	}
}

func (t *Table) printRow(w io.Writer, row []string) error {
	var b strings.Builder
	for i := range t.header {
		var col string
		if i < len(row) {
			col = row[i]
		}
		if i == len(t.header)-1 {
			b.WriteString(col)
			break
		}
		fmt.Fprintf(&b, "%-*s", t.columnWidths[i]+t.columnMarginRight, col)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
