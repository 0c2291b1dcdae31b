package cabi

import (
	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/bitutil"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	lberrors "github.com/lance-io/lance-bridge/common/errors"
)

// ImportArray decodes one column descriptor into an owned, typed arrow array.
// The descriptor is only borrowed; every buffer is copied before returning.
// The declared null count is carried verbatim unless the producer marked it
// unknown (-1), in which case it is computed from the validity bitmap.
func ImportArray(view ArrayView, dt arrow.DataType, mem memory.Allocator) (arrow.Array, error) {
	if view.IsNil() {
		return nil, lberrors.ErrNilDescriptor
	}
	switch dt.(type) {
	case *arrow.StringType, *arrow.BinaryType:
		return importStringLike(view, dt, mem)
	default:
		if fw, ok := dt.(arrow.FixedWidthDataType); ok {
			return importFixedWidth(view, fw, mem)
		}
		return nil, errors.Wrapf(lberrors.ErrUnsupportedType, "type %s", dt)
	}
}

// importFixedWidth decodes a fixed-width column: optional validity bitmap at
// slot 0, mandatory values buffer at slot 1.
func importFixedWidth(view ArrayView, dt arrow.FixedWidthDataType, mem memory.Allocator) (arrow.Array, error) {
	n := view.Length()
	if n <= 0 {
		return nil, errors.Wrapf(lberrors.ErrEmptyArray, "type %s", dt)
	}
	off := view.Offset()

	var valuesSize int64
	if dt.BitWidth() == 1 {
		valuesSize = bitutil.BytesForBits(n + off)
	} else {
		valuesSize = bitutil.BytesForBits(int64(dt.BitWidth())) * (n + off)
	}
	raw := view.BufferBytes(1, valuesSize)
	if raw == nil {
		return nil, errors.Wrapf(lberrors.ErrMissingBuffer, "values buffer for type %s", dt)
	}

	validity, nullCount, err := importValidity(view, mem)
	if err != nil {
		return nil, err
	}
	if validity != nil {
		defer validity.Release()
	}

	values := copyBuffer(mem, raw)
	defer values.Release()

	data := array.NewData(dt, int(n), []*memory.Buffer{validity, values}, nil, int(nullCount), int(off))
	defer data.Release()
	return array.MakeFromData(data), nil
}

// importStringLike decodes a variable-length binary column: optional validity
// bitmap at slot 0, 32-bit offsets at slot 1 and value bytes at slot 2. The
// data buffer size is dictated by the final offset entry.
func importStringLike(view ArrayView, dt arrow.DataType, mem memory.Allocator) (arrow.Array, error) {
	n := view.Length()
	if n <= 0 {
		return nil, errors.Wrapf(lberrors.ErrEmptyArray, "type %s", dt)
	}
	off := view.Offset()

	offsetsSize := int64(arrow.Int32SizeBytes) * (n + off + 1)
	rawOffsets := view.BufferBytes(1, offsetsSize)
	if rawOffsets == nil {
		return nil, errors.Wrapf(lberrors.ErrMissingBuffer, "offsets buffer for type %s", dt)
	}
	typedOffsets := arrow.Int32Traits.CastFromBytes(rawOffsets)
	dataSize := int64(typedOffsets[off+n])

	// a producer may leave the data pointer unset when no value bytes exist,
	// as with a column of all empty strings
	rawData := view.BufferBytes(2, dataSize)
	if rawData == nil && dataSize > 0 {
		return nil, errors.Wrapf(lberrors.ErrMissingBuffer, "data buffer for type %s", dt)
	}

	validity, nullCount, err := importValidity(view, mem)
	if err != nil {
		return nil, err
	}
	if validity != nil {
		defer validity.Release()
	}

	offsets := copyBuffer(mem, rawOffsets)
	defer offsets.Release()
	values := copyBuffer(mem, rawData)
	defer values.Release()

	data := array.NewData(dt, int(n), []*memory.Buffer{validity, offsets, values}, nil, int(nullCount), int(off))
	defer data.Release()
	return array.MakeFromData(data), nil
}

// importValidity copies the optional validity bitmap at slot 0 and resolves
// the null count to carry on the decoded array.
func importValidity(view ArrayView, mem memory.Allocator) (*memory.Buffer, int64, error) {
	n, off := view.Length(), view.Offset()
	declared := view.NullCount()

	raw := view.BufferBytes(0, bitutil.BytesForBits(n+off))
	if raw == nil {
		if declared > 0 {
			return nil, 0, errors.Wrapf(lberrors.ErrMissingBuffer, "null count %d declared but validity bitmap absent", declared)
		}
		return nil, 0, nil
	}

	nullCount := declared
	if declared < 0 {
		nullCount = n - setBitCount(raw, n, off)
	}
	return copyBuffer(mem, raw), nullCount, nil
}

// setBitCount counts valid rows in an arrow validity bitmap.
func setBitCount(bitmap []byte, length, offset int64) int64 {
	bs := bitset.New(uint(length))
	for i := int64(0); i < length; i++ {
		if bitutil.BitIsSet(bitmap, int(offset+i)) {
			bs.Set(uint(i))
		}
	}
	return int64(bs.Count())
}

func copyBuffer(mem memory.Allocator, src []byte) *memory.Buffer {
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(len(src))
	copy(buf.Bytes(), src)
	return buf
}
