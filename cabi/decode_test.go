package cabi

import (
	"testing"
	"unsafe"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lberrors "github.com/lance-io/lance-bridge/common/errors"
)

func primitiveDesc(length, nullCount, offset int64, validity unsafe.Pointer, values unsafe.Pointer) *ArrowArray {
	buffers := []unsafe.Pointer{validity, values}
	return &ArrowArray{
		Length:    length,
		NullCount: nullCount,
		Offset:    offset,
		NBuffers:  2,
		Buffers:   &buffers[0],
	}
}

func stringDesc(length, nullCount, offset int64, validity unsafe.Pointer, offsets []int32, data []byte) *ArrowArray {
	buffers := []unsafe.Pointer{validity, unsafe.Pointer(&offsets[0]), nil}
	if len(data) > 0 {
		buffers[2] = unsafe.Pointer(&data[0])
	}
	return &ArrowArray{
		Length:    length,
		NullCount: nullCount,
		Offset:    offset,
		NBuffers:  3,
		Buffers:   &buffers[0],
	}
}

func TestImportInt64(t *testing.T) {
	vals := []int64{10, 20, 30, 40}
	desc := primitiveDesc(4, 0, 0, nil, unsafe.Pointer(&vals[0]))

	arr, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Int64, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	typed := arr.(*array.Int64)
	require.Equal(t, 4, typed.Len())
	assert.Equal(t, 0, typed.NullN())
	assert.Equal(t, []int64{10, 20, 30, 40}, typed.Int64Values())

	// decoded array owns a copy, mutating the source does not bleed through
	vals[0] = 99
	assert.Equal(t, int64(10), typed.Value(0))
}

func TestImportFloat64WithOffset(t *testing.T) {
	vals := []float64{0.5, 1.5, 2.5, 3.5, 4.5}
	desc := primitiveDesc(3, 0, 2, nil, unsafe.Pointer(&vals[0]))

	arr, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Float64, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	typed := arr.(*array.Float64)
	require.Equal(t, 3, typed.Len())
	assert.Equal(t, 2.5, typed.Value(0))
	assert.Equal(t, 4.5, typed.Value(2))
}

func TestImportBoolean(t *testing.T) {
	// bit-packed values: rows 0, 2, 3 are true
	packed := []byte{0b00001101}
	desc := primitiveDesc(4, 0, 0, nil, unsafe.Pointer(&packed[0]))

	arr, err := ImportArray(NewArrayView(desc), arrow.FixedWidthTypes.Boolean, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	typed := arr.(*array.Boolean)
	require.Equal(t, 4, typed.Len())
	assert.True(t, typed.Value(0))
	assert.False(t, typed.Value(1))
	assert.True(t, typed.Value(2))
	assert.True(t, typed.Value(3))
}

func TestImportDeclaredNulls(t *testing.T) {
	vals := []int32{1, 0, 3}
	validity := []byte{0b00000101}
	desc := primitiveDesc(3, 1, 0, unsafe.Pointer(&validity[0]), unsafe.Pointer(&vals[0]))

	arr, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Int32, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, 1, arr.NullN())
	assert.True(t, arr.IsValid(0))
	assert.True(t, arr.IsNull(1))
	assert.True(t, arr.IsValid(2))
}

func TestImportUnknownNullCount(t *testing.T) {
	vals := []int32{1, 0, 3, 0}
	validity := []byte{0b00000101}
	desc := primitiveDesc(4, -1, 0, unsafe.Pointer(&validity[0]), unsafe.Pointer(&vals[0]))

	arr, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Int32, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	// computed from the bitmap: rows 1 and 3 are null
	assert.Equal(t, 2, arr.NullN())
	assert.True(t, arr.IsNull(3))
}

func TestImportDeclaredNullsWithoutBitmap(t *testing.T) {
	vals := []int32{1, 2, 3}
	desc := primitiveDesc(3, 1, 0, nil, unsafe.Pointer(&vals[0]))

	_, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Int32, memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrMissingBuffer))
}

func TestImportZeroLength(t *testing.T) {
	vals := []int64{1}
	desc := primitiveDesc(0, 0, 0, nil, unsafe.Pointer(&vals[0]))

	_, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Int64, memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrEmptyArray))

	strOffsets := []int32{0, 0}
	strDesc := stringDesc(0, 0, 0, nil, strOffsets, nil)
	_, err = ImportArray(NewArrayView(strDesc), arrow.BinaryTypes.String, memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrEmptyArray))
}

func TestImportMissingValuesBuffer(t *testing.T) {
	desc := primitiveDesc(3, 0, 0, nil, nil)
	_, err := ImportArray(NewArrayView(desc), arrow.PrimitiveTypes.Int64, memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrMissingBuffer))
}

func TestImportNilDescriptor(t *testing.T) {
	_, err := ImportArray(NewArrayView(nil), arrow.PrimitiveTypes.Int64, memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrNilDescriptor))
}

func TestImportUnsupportedType(t *testing.T) {
	vals := []int64{1, 2}
	desc := primitiveDesc(2, 0, 0, nil, unsafe.Pointer(&vals[0]))
	_, err := ImportArray(NewArrayView(desc), arrow.ListOf(arrow.PrimitiveTypes.Int64), memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrUnsupportedType))
}

func TestImportString(t *testing.T) {
	data := []byte("foobarbaz")
	offsets := []int32{0, 3, 3, 9}
	desc := stringDesc(3, 0, 0, nil, offsets, data)

	arr, err := ImportArray(NewArrayView(desc), arrow.BinaryTypes.String, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	typed := arr.(*array.String)
	require.Equal(t, 3, typed.Len())
	assert.Equal(t, "foo", typed.Value(0))
	assert.Equal(t, "", typed.Value(1))
	assert.Equal(t, "barbaz", typed.Value(2))
}

func TestImportStringWithNulls(t *testing.T) {
	data := []byte("ab")
	offsets := []int32{0, 1, 1, 2}
	validity := []byte{0b00000101}
	desc := stringDesc(3, 1, 0, unsafe.Pointer(&validity[0]), offsets, data)

	arr, err := ImportArray(NewArrayView(desc), arrow.BinaryTypes.String, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	typed := arr.(*array.String)
	assert.Equal(t, 1, typed.NullN())
	assert.Equal(t, "a", typed.Value(0))
	assert.True(t, typed.IsNull(1))
	assert.Equal(t, "b", typed.Value(2))
}

func TestImportAllEmptyStrings(t *testing.T) {
	// no value bytes exist, so the producer leaves the data pointer unset
	offsets := []int32{0, 0, 0, 0}
	desc := stringDesc(3, 0, 0, nil, offsets, nil)

	arr, err := ImportArray(NewArrayView(desc), arrow.BinaryTypes.String, memory.DefaultAllocator)
	require.NoError(t, err)
	defer arr.Release()

	typed := arr.(*array.String)
	require.Equal(t, 3, typed.Len())
	assert.Equal(t, 0, typed.NullN())
	for i := 0; i < typed.Len(); i++ {
		assert.Equal(t, "", typed.Value(i))
	}
}

func TestImportStringMissingOffsets(t *testing.T) {
	desc := &ArrowArray{Length: 3, NBuffers: 3}
	buffers := []unsafe.Pointer{nil, nil, nil}
	desc.Buffers = &buffers[0]

	_, err := ImportArray(NewArrayView(desc), arrow.BinaryTypes.String, memory.DefaultAllocator)
	assert.True(t, errors.Is(err, lberrors.ErrMissingBuffer))
}
