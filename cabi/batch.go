package cabi

import (
	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/pkg/errors"

	lberrors "github.com/lance-io/lance-bridge/common/errors"
)

// ImportRecord decodes a record-level array descriptor and its matching
// schema descriptor into one immutable record batch. The descriptor children
// must correspond 1:1, in declared order, to the schema's fields.
//
// Import is all-or-nothing: any per-field failure aborts the whole batch and
// no partial record is ever returned. On success the caller owns the returned
// record and must release it.
func ImportRecord(scDesc *ArrowSchema, arrDesc *ArrowArray, mem memory.Allocator) (arrow.Record, error) {
	if scDesc == nil || arrDesc == nil {
		return nil, lberrors.ErrNilDescriptor
	}

	schema, err := ImportSchema(NewSchemaView(scDesc))
	if err != nil {
		return nil, err
	}

	arrView := NewArrayView(arrDesc)
	rows := arrView.Length()
	if rows <= 0 {
		return nil, lberrors.ErrEmptyArray
	}
	if arrView.NumChildren() != int64(len(schema.Fields())) {
		return nil, errors.Wrapf(lberrors.ErrChildOutOfRange,
			"schema has %d fields but array has %d children", len(schema.Fields()), arrView.NumChildren())
	}

	columns := make([]arrow.Array, 0, len(schema.Fields()))
	defer func() {
		for _, col := range columns {
			col.Release()
		}
	}()

	for i, field := range schema.Fields() {
		child := arrView.Child(i)
		if child.IsNil() {
			return nil, errors.Wrapf(lberrors.ErrChildOutOfRange, "field %q", field.Name)
		}
		col, err := ImportArray(child, field.Type, mem)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", field.Name)
		}
		columns = append(columns, col)
		if int64(col.Len()) != rows {
			return nil, errors.Wrapf(lberrors.ErrChildOutOfRange,
				"field %q has %d rows, record declares %d", field.Name, col.Len(), rows)
		}
	}

	return array.NewRecord(schema, columns, rows), nil
}
