package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/twosigma/ngrid/internal/gridlib"
)

// loadQueryTable runs a read-only query against a SQLite file and
// materializes the full result into a preloaded table.
func loadQueryTable(path, query string) (*gridlib.Table, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	cols := make([]gridlib.Column, len(types))
	for i, t := range types {
		cols[i] = gridlib.Column{
			Name: t.Name(),
			Kind: kindForColumnType(t.DatabaseTypeName()),
		}
	}

	table := gridlib.NewTable(cols)
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]any, len(cols))
		for i, v := range values {
			row[i] = normalizeValue(v, cols[i].Kind)
		}
		if err := table.Append(row); err != nil {
			return nil, err
		}
	}
	return table, rows.Err()
}

// kindForColumnType maps a declared SQLite storage type to a column
// kind. Unknown declarations fall back to text.
func kindForColumnType(name string) gridlib.Kind {
	switch strings.ToUpper(name) {
	case "INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT":
		return gridlib.KindInt
	case "REAL", "FLOAT", "DOUBLE", "NUMERIC", "DECIMAL":
		return gridlib.KindFloat
	case "BOOLEAN", "BOOL":
		return gridlib.KindBool
	case "DATE", "DATETIME", "TIMESTAMP":
		return gridlib.KindTime
	default:
		return gridlib.KindStr
	}
}

// normalizeValue reshapes driver values into the kinds the formatters
// expect. SQLite stores booleans as integers and may hand back text as
// byte slices.
func normalizeValue(v any, kind gridlib.Kind) any {
	switch val := v.(type) {
	case []byte:
		v = string(val)
	case time.Time:
		return val
	}
	if kind == gridlib.KindBool {
		if n, ok := v.(int64); ok {
			return n != 0
		}
	}
	return v
}
