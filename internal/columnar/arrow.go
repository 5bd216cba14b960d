package columnar

import (
	"fmt"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/galpin/pluck/api"
)

// ArrowRecord converts a typed batch into an Arrow record for zero-copy
// interchange with downstream analytics consumers. All fields are nullable;
// the caller owns the returned record and must Release it.
func ArrowRecord(batch api.Batch) (arrow.Record, error) {
	mem := memory.NewGoAllocator()

	fields := make([]arrow.Field, len(batch.Fields))
	arrays := make([]arrow.Array, len(batch.Fields))
	for i, f := range batch.Fields {
		dt, err := arrowType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
		fields[i] = arrow.Field{Name: f.Name, Type: dt, Nullable: true}
		arrays[i] = arrowArray(mem, &batch.Columns[i])
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrays, int64(batch.NumRows)), nil
}

func arrowType(t api.ColumnType) (arrow.DataType, error) {
	switch t {
	case api.TypeBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case api.TypeInt:
		return arrow.PrimitiveTypes.Int64, nil
	case api.TypeFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case api.TypeText:
		return arrow.BinaryTypes.String, nil
	case api.TypeNull:
		return arrow.Null, nil
	}
	return nil, fmt.Errorf("unsupported column type %v", t)
}

func arrowArray(mem memory.Allocator, c *api.Column) arrow.Array {
	switch c.Type {
	case api.TypeBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for i, v := range c.Bools {
			if c.IsNull(i) {
				b.AppendNull()
			} else {
				b.Append(v)
			}
		}
		return b.NewArray()
	case api.TypeInt:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for i, v := range c.Ints {
			if c.IsNull(i) {
				b.AppendNull()
			} else {
				b.Append(v)
			}
		}
		return b.NewArray()
	case api.TypeFloat:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for i, v := range c.Floats {
			if c.IsNull(i) {
				b.AppendNull()
			} else {
				b.Append(v)
			}
		}
		return b.NewArray()
	case api.TypeText:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for i, v := range c.Strings {
			if c.IsNull(i) {
				b.AppendNull()
			} else {
				b.Append(v)
			}
		}
		return b.NewArray()
	default:
		return array.NewNull(c.Len())
	}
}
