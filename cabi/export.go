package cabi

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/pkg/errors"

	lberrors "github.com/lance-io/lance-bridge/common/errors"
)

// ExportRecord exposes a record batch through borrowed C Data Interface
// descriptors without copying. The descriptors reference memory owned by rec
// and stay valid until rec is released; the producer keeps ownership, so the
// Release callbacks are left unset and the consuming side never invokes them.
func ExportRecord(rec arrow.Record) (*ArrowArray, *ArrowSchema, error) {
	if rec == nil {
		return nil, nil, lberrors.ErrNilDescriptor
	}

	sc, err := exportSchema(rec.Schema())
	if err != nil {
		return nil, nil, err
	}

	children := make([]*ArrowArray, rec.NumCols())
	for i := range children {
		children[i] = exportArray(rec.Column(i))
	}

	// the record itself is a struct array with a single (absent) validity
	// buffer
	buffers := make([]unsafe.Pointer, 1)
	root := &ArrowArray{
		Length:    rec.NumRows(),
		NBuffers:  1,
		NChildren: int64(len(children)),
		Buffers:   &buffers[0],
	}
	if len(children) > 0 {
		root.Children = &children[0]
	}
	return root, sc, nil
}

func exportSchema(schema *arrow.Schema) (*ArrowSchema, error) {
	children := make([]*ArrowSchema, len(schema.Fields()))
	for i, field := range schema.Fields() {
		child, err := exportField(field)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	root := &ArrowSchema{
		Format:    cstr("+s"),
		Name:      cstr(""),
		NChildren: int64(len(children)),
	}
	if len(children) > 0 {
		root.Children = &children[0]
	}
	return root, nil
}

func exportField(field arrow.Field) (*ArrowSchema, error) {
	format, err := formatFromType(field.Type)
	if err != nil {
		return nil, err
	}
	var flags int64
	if field.Nullable {
		flags = flagNullable
	}
	return &ArrowSchema{
		Format: cstr(format),
		Name:   cstr(field.Name),
		Flags:  flags,
	}, nil
}

func exportArray(arr arrow.Array) *ArrowArray {
	data := arr.Data()
	bufs := data.Buffers()
	ptrs := make([]unsafe.Pointer, len(bufs))
	for i, b := range bufs {
		if b != nil && b.Len() > 0 {
			ptrs[i] = unsafe.Pointer(&b.Bytes()[0])
		}
	}
	out := &ArrowArray{
		Length:    int64(arr.Len()),
		NullCount: int64(arr.NullN()),
		Offset:    int64(data.Offset()),
		NBuffers:  int64(len(ptrs)),
	}
	if len(ptrs) > 0 {
		out.Buffers = &ptrs[0]
	}
	return out
}

func formatFromType(dt arrow.DataType) (string, error) {
	switch dt := dt.(type) {
	case *arrow.BooleanType:
		return "b", nil
	case *arrow.Int8Type:
		return "c", nil
	case *arrow.Uint8Type:
		return "C", nil
	case *arrow.Int16Type:
		return "s", nil
	case *arrow.Uint16Type:
		return "S", nil
	case *arrow.Int32Type:
		return "i", nil
	case *arrow.Uint32Type:
		return "I", nil
	case *arrow.Int64Type:
		return "l", nil
	case *arrow.Uint64Type:
		return "L", nil
	case *arrow.Float32Type:
		return "f", nil
	case *arrow.Float64Type:
		return "g", nil
	case *arrow.StringType:
		return "u", nil
	case *arrow.BinaryType:
		return "z", nil
	case *arrow.Date32Type:
		return "tdD", nil
	case *arrow.Date64Type:
		return "tdm", nil
	case *arrow.Time32Type:
		if dt.Unit == arrow.Second {
			return "tts", nil
		}
		return "ttm", nil
	case *arrow.Time64Type:
		if dt.Unit == arrow.Microsecond {
			return "ttu", nil
		}
		return "ttn", nil
	case *arrow.TimestampType:
		switch dt.Unit {
		case arrow.Second:
			return "tss:" + dt.TimeZone, nil
		case arrow.Millisecond:
			return "tsm:" + dt.TimeZone, nil
		case arrow.Microsecond:
			return "tsu:" + dt.TimeZone, nil
		default:
			return "tsn:" + dt.TimeZone, nil
		}
	case *arrow.Decimal128Type:
		return fmt.Sprintf("d:%d,%d", dt.Precision, dt.Scale), nil
	case *arrow.Decimal256Type:
		return fmt.Sprintf("d:%d,%d,256", dt.Precision, dt.Scale), nil
	default:
		return "", errors.Wrapf(lberrors.ErrUnsupportedType, "cannot export type %s", dt)
	}
}

func cstr(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
