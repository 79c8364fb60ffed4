package gridlib

import "fmt"

// Column describes one column of a preloaded table.
type Column struct {
	Name string
	Kind Kind
}

// Table is a finite, fully materialized table. Rows are appended
// during construction and immutable afterwards.
type Table struct {
	cols []Column
	rows [][]any
}

func NewTable(cols []Column) *Table {
	return &Table{cols: cols}
}

// Append adds a row; its length must match the column count.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf(
			"%w: row has %d values, table has %d columns",
			ErrInvalidArgument, len(row), len(t.cols))
	}
	t.rows = append(t.rows, row)
	return nil
}

func (t *Table) NumRows() int      { return len(t.rows) }
func (t *Table) NumCols() int      { return len(t.cols) }
func (t *Table) Columns() []Column { return t.cols }

// TableModel adapts a preloaded Table to the Model interface. The row
// count is fixed at construction; column kinds come from the table's
// declared storage kinds, with no sampling-based inference.
type TableModel struct {
	table    *Table
	filename string
}

func NewTableModel(t *Table, filename string) *TableModel {
	return &TableModel{table: t, filename: filename}
}

func (m *TableModel) NumRows() int         { return m.table.NumRows() }
func (m *TableModel) NumCols() int         { return m.table.NumCols() }
func (m *TableModel) TitleLines() []string { return nil }
func (m *TableModel) Filename() string     { return m.filename }
func (m *TableModel) Done() bool           { return true }

func (m *TableModel) Names() []string {
	names := make([]string, len(m.table.cols))
	for i, c := range m.table.cols {
		names[i] = c.Name
	}
	return names
}

func (m *TableModel) Row(idx int) ([]any, error) {
	if idx < 0 || idx >= len(m.table.rows) {
		return nil, fmt.Errorf(
			"%w: row %d of %d", ErrOutOfRange, idx, len(m.table.rows))
	}
	return m.table.rows[idx], nil
}

func (m *TableModel) EnsureRows(idx int) int {
	if idx < m.table.NumRows() {
		return idx
	}
	return m.table.NumRows()
}

func (m *TableModel) Formatters(cfg Config) ([]Formatter, error) {
	formatters := make([]Formatter, len(m.table.cols))
	for c, col := range m.table.cols {
		values := make([]any, len(m.table.rows))
		for i, row := range m.table.rows {
			values[i] = row[c]
		}
		f, err := DefaultFormatter(col.Kind, values, cfg)
		if err != nil {
			return nil, err
		}
		formatters[c] = f
	}
	return formatters, nil
}
