package cabi

import (
	"testing"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lberrors "github.com/lance-io/lance-bridge/common/errors"
)

func fieldDesc(format, name string, flags int64) *ArrowSchema {
	return &ArrowSchema{Format: cstr(format), Name: cstr(name), Flags: flags}
}

func recordDesc(children ...*ArrowSchema) *ArrowSchema {
	sc := &ArrowSchema{
		Format:    cstr("+s"),
		Name:      cstr(""),
		NChildren: int64(len(children)),
	}
	if len(children) > 0 {
		sc.Children = &children[0]
	}
	return sc
}

func TestImportFieldFormats(t *testing.T) {
	cases := []struct {
		format string
		want   arrow.DataType
	}{
		{"b", arrow.FixedWidthTypes.Boolean},
		{"c", arrow.PrimitiveTypes.Int8},
		{"i", arrow.PrimitiveTypes.Int32},
		{"l", arrow.PrimitiveTypes.Int64},
		{"L", arrow.PrimitiveTypes.Uint64},
		{"f", arrow.PrimitiveTypes.Float32},
		{"g", arrow.PrimitiveTypes.Float64},
		{"u", arrow.BinaryTypes.String},
		{"z", arrow.BinaryTypes.Binary},
		{"tdD", arrow.FixedWidthTypes.Date32},
		{"tdm", arrow.FixedWidthTypes.Date64},
		{"ttm", arrow.FixedWidthTypes.Time32ms},
		{"ttn", arrow.FixedWidthTypes.Time64ns},
		{"tsu:UTC", &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}},
		{"tss:", &arrow.TimestampType{Unit: arrow.Second}},
		{"d:10,2", &arrow.Decimal128Type{Precision: 10, Scale: 2}},
		{"d:10,2,128", &arrow.Decimal128Type{Precision: 10, Scale: 2}},
		{"d:40,5,256", &arrow.Decimal256Type{Precision: 40, Scale: 5}},
	}
	for _, c := range cases {
		field, err := ImportField(NewSchemaView(fieldDesc(c.format, "col", 0)))
		require.NoError(t, err, c.format)
		assert.True(t, arrow.TypeEqual(c.want, field.Type), "format %s gave %s", c.format, field.Type)
		assert.Equal(t, "col", field.Name)
		assert.False(t, field.Nullable)
	}
}

func TestImportFieldNullable(t *testing.T) {
	field, err := ImportField(NewSchemaView(fieldDesc("l", "id", flagNullable)))
	require.NoError(t, err)
	assert.True(t, field.Nullable)
}

func TestImportFieldUnsupported(t *testing.T) {
	for _, format := range []string{"", "+l", "w:16", "d:10", "d:x,2", "d:10,2,64"} {
		_, err := ImportField(NewSchemaView(fieldDesc(format, "col", 0)))
		assert.True(t, errors.Is(err, lberrors.ErrUnsupportedType), "format %q", format)
	}
}

func TestImportFieldNil(t *testing.T) {
	_, err := ImportField(NewSchemaView(nil))
	assert.True(t, errors.Is(err, lberrors.ErrNilDescriptor))
}

func TestImportSchema(t *testing.T) {
	desc := recordDesc(
		fieldDesc("l", "id", 0),
		fieldDesc("g", "score", flagNullable),
		fieldDesc("u", "name", flagNullable),
	)
	schema, err := ImportSchema(NewSchemaView(desc))
	require.NoError(t, err)
	require.Equal(t, 3, len(schema.Fields()))
	assert.Equal(t, "id", schema.Field(0).Name)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, schema.Field(0).Type))
	assert.True(t, schema.Field(1).Nullable)
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, schema.Field(2).Type))
}

func TestImportSchemaNotStruct(t *testing.T) {
	_, err := ImportSchema(NewSchemaView(fieldDesc("l", "id", 0)))
	assert.True(t, errors.Is(err, lberrors.ErrUnsupportedType))

	_, err = ImportSchema(NewSchemaView(nil))
	assert.True(t, errors.Is(err, lberrors.ErrNilDescriptor))
}

func TestImportSchemaBadChild(t *testing.T) {
	desc := recordDesc(fieldDesc("l", "id", 0), fieldDesc("bogus", "x", 0))
	_, err := ImportSchema(NewSchemaView(desc))
	assert.True(t, errors.Is(err, lberrors.ErrUnsupportedType))
}
