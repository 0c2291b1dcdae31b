package cabi

import (
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/pkg/errors"

	lberrors "github.com/lance-io/lance-bridge/common/errors"
)

// Map from C Data Interface format strings to data types, for types that
// carry no parameters.
var formatToSimpleType = map[string]arrow.DataType{
	"b":   arrow.FixedWidthTypes.Boolean,
	"c":   arrow.PrimitiveTypes.Int8,
	"C":   arrow.PrimitiveTypes.Uint8,
	"s":   arrow.PrimitiveTypes.Int16,
	"S":   arrow.PrimitiveTypes.Uint16,
	"i":   arrow.PrimitiveTypes.Int32,
	"I":   arrow.PrimitiveTypes.Uint32,
	"l":   arrow.PrimitiveTypes.Int64,
	"L":   arrow.PrimitiveTypes.Uint64,
	"f":   arrow.PrimitiveTypes.Float32,
	"g":   arrow.PrimitiveTypes.Float64,
	"u":   arrow.BinaryTypes.String,
	"z":   arrow.BinaryTypes.Binary,
	"tdD": arrow.FixedWidthTypes.Date32,
	"tdm": arrow.FixedWidthTypes.Date64,
	"tts": arrow.FixedWidthTypes.Time32s,
	"ttm": arrow.FixedWidthTypes.Time32ms,
	"ttu": arrow.FixedWidthTypes.Time64us,
	"ttn": arrow.FixedWidthTypes.Time64ns,
}

func typeFromFormat(format string) (arrow.DataType, error) {
	if dt, ok := formatToSimpleType[format]; ok {
		return dt, nil
	}

	typs := strings.SplitN(format, ":", 2)
	if len(typs) == 2 {
		switch typs[0] {
		case "tss":
			return &arrow.TimestampType{Unit: arrow.Second, TimeZone: typs[1]}, nil
		case "tsm":
			return &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: typs[1]}, nil
		case "tsu":
			return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: typs[1]}, nil
		case "tsn":
			return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: typs[1]}, nil
		case "d":
			return decimalFromFormat(format, typs[1])
		}
	}

	return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "format %q", format)
}

// decimal format is d:<precision>,<scale>[,<bitwidth>], bitwidth 128 when
// omitted.
func decimalFromFormat(format, props string) (arrow.DataType, error) {
	propList := strings.Split(props, ",")
	if len(propList) < 2 || len(propList) > 3 {
		return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "invalid decimal format %q", format)
	}
	bitwidth := 128
	if len(propList) == 3 {
		var err error
		bitwidth, err = strconv.Atoi(propList[2])
		if err != nil {
			return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "invalid decimal bitwidth in %q", format)
		}
	}
	precision, err := strconv.Atoi(propList[0])
	if err != nil {
		return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "invalid decimal precision in %q", format)
	}
	scale, err := strconv.Atoi(propList[1])
	if err != nil {
		return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "invalid decimal scale in %q", format)
	}
	switch bitwidth {
	case 128:
		return &arrow.Decimal128Type{Precision: int32(precision), Scale: int32(scale)}, nil
	case 256:
		return &arrow.Decimal256Type{Precision: int32(precision), Scale: int32(scale)}, nil
	default:
		return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "decimal bitwidth %d in %q", bitwidth, format)
	}
}

// ImportField converts one schema descriptor into an arrow field. Nested
// types beyond the record-level struct are not supported by this bridge.
func ImportField(view SchemaView) (arrow.Field, error) {
	if view.IsNil() {
		return arrow.Field{}, lberrors.ErrNilDescriptor
	}
	dt, err := typeFromFormat(view.Format())
	if err != nil {
		return arrow.Field{}, err
	}
	return arrow.Field{
		Name:     view.Name(),
		Type:     dt,
		Nullable: view.Nullable(),
	}, nil
}

// ImportSchema converts a record-level schema descriptor (a struct whose
// children are the record's fields) into an arrow schema.
func ImportSchema(view SchemaView) (*arrow.Schema, error) {
	if view.IsNil() {
		return nil, lberrors.ErrNilDescriptor
	}
	if view.Format() != "+s" {
		return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "record schema must be a struct, got format %q", view.Format())
	}
	fields := make([]arrow.Field, 0, view.NumChildren())
	for i := 0; int64(i) < view.NumChildren(); i++ {
		field, err := ImportField(view.Child(i))
		if err != nil {
			return nil, errors.Wrapf(err, "schema child %d", i)
		}
		fields = append(fields, field)
	}
	return arrow.NewSchema(fields, nil), nil
}
