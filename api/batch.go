package api

import "github.com/RoaringBitmap/roaring"

// ColumnType is the detected scalar type of a materialized column.
type ColumnType int

const (
	// TypeNull marks a column with no non-null values.
	TypeNull ColumnType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeText
)

func (t ColumnType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	}
	return "unknown"
}

// Field names and types one column of a Batch schema.
type Field struct {
	Name string
	Type ColumnType
}

// Column is a typed, null-aware buffer. Exactly one of the value slices is
// populated, matching Type; null cells occupy a slot in that slice (holding
// the zero value) and are recorded in the validity bitmap.
type Column struct {
	Type    ColumnType
	Bools   []bool
	Ints    []int64
	Floats  []float64
	Strings []string

	length int
	nulls  *roaring.Bitmap
}

// NewColumn returns an empty Column of the given type.
func NewColumn(t ColumnType) Column {
	return Column{Type: t, nulls: roaring.New()}
}

// AppendBool appends a boolean cell.
func (c *Column) AppendBool(b bool) {
	c.Bools = append(c.Bools, b)
	c.length++
}

// AppendInt appends an integer cell.
func (c *Column) AppendInt(i int64) {
	c.Ints = append(c.Ints, i)
	c.length++
}

// AppendFloat appends a float cell.
func (c *Column) AppendFloat(f float64) {
	c.Floats = append(c.Floats, f)
	c.length++
}

// AppendString appends a text cell.
func (c *Column) AppendString(s string) {
	c.Strings = append(c.Strings, s)
	c.length++
}

// AppendNull appends a null cell of the column's type.
func (c *Column) AppendNull() {
	c.nulls.Add(uint32(c.length))
	switch c.Type {
	case TypeBool:
		c.Bools = append(c.Bools, false)
	case TypeInt:
		c.Ints = append(c.Ints, 0)
	case TypeFloat:
		c.Floats = append(c.Floats, 0)
	case TypeText:
		c.Strings = append(c.Strings, "")
	}
	c.length++
}

// Len returns the number of cells, null cells included.
func (c *Column) Len() int { return c.length }

// IsNull reports whether cell i is null.
func (c *Column) IsNull(i int) bool { return c.nulls.Contains(uint32(i)) }

// NullCount returns the number of null cells.
func (c *Column) NullCount() int { return int(c.nulls.GetCardinality()) }

// Value returns cell i as host-native data (nil for null cells).
func (c *Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch c.Type {
	case TypeBool:
		return c.Bools[i]
	case TypeInt:
		return c.Ints[i]
	case TypeFloat:
		return c.Floats[i]
	case TypeText:
		return c.Strings[i]
	}
	return nil
}

// Batch is a typed columnar table: one Field and one Column per discovered
// name, in discovery order.
type Batch struct {
	Fields  []Field
	Columns []Column
	NumRows int
}
