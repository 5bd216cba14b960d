// Package columnar materializes flat rows into row-oriented records,
// untyped column vectors, and typed null-aware columnar batches with
// per-column type inference.
package columnar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/galpin/pluck/api"
)

// ErrLayoutMismatch is returned by FromRows when a row's column layout
// disagrees with the first row's.
var ErrLayoutMismatch = errors.New("column layout mismatch")

// ToRecords converts rows into row-oriented records. Column layout is
// assumed identical across rows and is not validated here; this holds by
// construction for rows produced by the normalization engine from
// structurally uniform inputs.
func ToRecords(rows []api.Row) []map[string]api.Value {
	records := make([]map[string]api.Value, len(rows))
	for i, row := range rows {
		record := make(map[string]api.Value, len(row))
		for _, cell := range row {
			record[cell.Name] = cell.Value
		}
		records[i] = record
	}
	return records
}

// ToColumns converts rows into untyped column vectors. Names are returned
// in first-row order; the same layout assumption as ToRecords applies.
func ToColumns(rows []api.Row) ([]string, map[string][]api.Value) {
	if len(rows) == 0 {
		return nil, map[string][]api.Value{}
	}
	first := rows[0]
	names := make([]string, len(first))
	cols := make(map[string][]api.Value, len(first))
	for i, cell := range first {
		names[i] = cell.Name
		cols[cell.Name] = make([]api.Value, 0, len(rows))
	}
	for _, row := range rows {
		for i, cell := range row {
			name := names[i]
			cols[name] = append(cols[name], cell.Value)
		}
	}
	return names, cols
}

// DetectType scans every row's value at the given column and resolves the
// column type from the exact set of observed non-null kinds:
//
//	one kind only          → that kind
//	int and float          → float
//	nothing non-null       → null
//	any other mixture      → text
//
// The result is independent of row order.
func DetectType(rows []api.Row, col int) api.ColumnType {
	var hasBool, hasInt, hasFloat, hasText bool
	for _, row := range rows {
		switch row[col].Value.Kind() {
		case api.KindNull:
		case api.KindBool:
			hasBool = true
		case api.KindInt:
			hasInt = true
		case api.KindFloat:
			hasFloat = true
		default:
			hasText = true
		}
	}
	switch {
	case hasBool && !hasInt && !hasFloat && !hasText:
		return api.TypeBool
	case hasInt && !hasBool && !hasFloat && !hasText:
		return api.TypeInt
	case hasFloat && !hasBool && !hasInt && !hasText:
		return api.TypeFloat
	case hasText && !hasBool && !hasInt && !hasFloat:
		return api.TypeText
	case hasInt && hasFloat && !hasBool && !hasText:
		return api.TypeFloat
	case !hasBool && !hasInt && !hasFloat && !hasText:
		return api.TypeNull
	default:
		return api.TypeText
	}
}

// BuildColumn materializes one column of the given type. Cells whose kind
// matches the type are appended as-is; nulls become null cells; an int
// flowing into a float column widens losslessly; any other mismatch
// degrades to a null cell rather than failing. Text columns stringify
// every non-null value: booleans as "True"/"False" (the historical
// rendering), numbers in canonical decimal form.
func BuildColumn(rows []api.Row, col int, t api.ColumnType) api.Column {
	c := api.NewColumn(t)
	for _, row := range rows {
		v := row[col].Value
		switch t {
		case api.TypeBool:
			if v.Kind() == api.KindBool {
				c.AppendBool(v.Bool())
			} else {
				c.AppendNull()
			}
		case api.TypeInt:
			if v.Kind() == api.KindInt {
				c.AppendInt(v.Int())
			} else {
				c.AppendNull()
			}
		case api.TypeFloat:
			switch v.Kind() {
			case api.KindFloat:
				c.AppendFloat(v.Float())
			case api.KindInt:
				c.AppendFloat(float64(v.Int()))
			default:
				c.AppendNull()
			}
		case api.TypeText:
			switch v.Kind() {
			case api.KindString:
				c.AppendString(v.Str())
			case api.KindBool:
				if v.Bool() {
					c.AppendString("True")
				} else {
					c.AppendString("False")
				}
			case api.KindInt:
				c.AppendString(strconv.FormatInt(v.Int(), 10))
			case api.KindFloat:
				c.AppendString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
			default:
				c.AppendNull()
			}
		default:
			c.AppendNull()
		}
	}
	return c
}

// FromRows builds a typed columnar batch. The schema is discovered from
// the first row; every subsequent row must present the same column names in
// the same order, otherwise ErrLayoutMismatch is returned. Zero rows yield
// an empty schema.
func FromRows(rows []api.Row) (api.Batch, error) {
	if len(rows) == 0 {
		return api.Batch{}, nil
	}
	first := rows[0]
	for i, row := range rows[1:] {
		if len(row) != len(first) {
			return api.Batch{}, fmt.Errorf(
				"%w: row %d has %d columns, expected %d", ErrLayoutMismatch, i+1, len(row), len(first))
		}
		for j, cell := range row {
			if cell.Name != first[j].Name {
				return api.Batch{}, fmt.Errorf(
					"%w: row %d column %d is %q, expected %q", ErrLayoutMismatch, i+1, j, cell.Name, first[j].Name)
			}
		}
	}

	batch := api.Batch{
		Fields:  make([]api.Field, len(first)),
		Columns: make([]api.Column, len(first)),
		NumRows: len(rows),
	}
	for col := range first {
		t := DetectType(rows, col)
		batch.Fields[col] = api.Field{Name: first[col].Name, Type: t}
		batch.Columns[col] = BuildColumn(rows, col, t)
	}
	return batch, nil
}
