package export

import (
	"io"

	"github.com/nconklindev/journeyload/internal/types"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

var timestampType = &arrow.TimestampType{Unit: arrow.Microsecond}

// arrowType maps a column's tag to its parquet column type. Mixed columns are
// written as text.
func arrowType(tag types.TypeTag) arrow.DataType {
	switch tag {
	case types.TagNumeric:
		return arrow.PrimitiveTypes.Float64
	case types.TagDatetime:
		return timestampType
	default:
		return arrow.BinaryTypes.String
	}
}

func schemaFor(t *types.Table) *arrow.Schema {
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		fields[i] = arrow.Field{Name: c.Name, Type: arrowType(c.Tag()), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func recordFromTable(schema *arrow.Schema, t *types.Table) arrow.Record {
	mem := memory.DefaultAllocator
	cols := make([]arrow.Array, t.NumCols())

	for i, c := range t.Columns() {
		switch schema.Field(i).Type.ID() {
		case arrow.FLOAT64:
			b := array.NewFloat64Builder(mem)
			for _, v := range c.Values {
				if v.IsNumber() {
					b.Append(v.Float())
				} else {
					b.AppendNull()
				}
			}
			cols[i] = b.NewArray()
			b.Release()
		case arrow.TIMESTAMP:
			b := array.NewTimestampBuilder(mem, timestampType)
			for _, v := range c.Values {
				if v.IsTime() {
					b.Append(arrow.Timestamp(v.Timestamp().UnixMicro()))
				} else {
					b.AppendNull()
				}
			}
			cols[i] = b.NewArray()
			b.Release()
		default:
			b := array.NewStringBuilder(mem)
			for _, v := range c.Values {
				if v.IsMissing() {
					b.AppendNull()
				} else {
					b.Append(v.String())
				}
			}
			cols[i] = b.NewArray()
			b.Release()
		}
	}

	record := array.NewRecord(schema, cols, int64(t.NumRows()))
	for _, col := range cols {
		col.Release()
	}
	return record
}

func writeParquet(w io.Writer, t *types.Table) error {
	schema := schemaFor(t)
	record := recordFromTable(schema, t)
	defer record.Release()

	fw, err := pqarrow.NewFileWriter(schema, w, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return err
	}
	if err := fw.Write(record); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}
