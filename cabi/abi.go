// Package cabi implements the consuming side of the Arrow C Data Interface.
//
// Descriptors handed to this package are borrowed from the producer and are
// only valid for the duration of a single call; every decoder copies buffer
// contents into allocator-owned memory before returning. The release
// callbacks carried by the descriptors are never invoked here, finalizing a
// descriptor is entirely the producer's responsibility.
//
// All raw pointer walking is confined to the view types in this file. No
// other package dereferences interchange memory.
package cabi

import "unsafe"

// ArrowSchema mirrors struct ArrowSchema from abi.h. Field order and widths
// are part of the C ABI and must not change.
type ArrowSchema struct {
	Format      *byte
	Name        *byte
	Metadata    *byte
	Flags       int64
	NChildren   int64
	Children    **ArrowSchema
	Dictionary  *ArrowSchema
	Release     unsafe.Pointer
	PrivateData unsafe.Pointer
}

// ArrowArray mirrors struct ArrowArray from abi.h.
type ArrowArray struct {
	Length      int64
	NullCount   int64
	Offset      int64
	NBuffers    int64
	NChildren   int64
	Buffers     *unsafe.Pointer
	Children    **ArrowArray
	Dictionary  *ArrowArray
	Release     unsafe.Pointer
	PrivateData unsafe.Pointer
}

const flagNullable = 2

// ArrayView is a bounds-checked accessor over a borrowed ArrowArray. A view
// over a nil descriptor, or an out-of-range buffer/child index, yields zero
// values instead of faulting.
type ArrayView struct {
	arr *ArrowArray
}

func NewArrayView(arr *ArrowArray) ArrayView {
	return ArrayView{arr: arr}
}

func (v ArrayView) IsNil() bool {
	return v.arr == nil
}

func (v ArrayView) Length() int64 {
	if v.arr == nil {
		return 0
	}
	return v.arr.Length
}

func (v ArrayView) NullCount() int64 {
	if v.arr == nil {
		return 0
	}
	return v.arr.NullCount
}

func (v ArrayView) Offset() int64 {
	if v.arr == nil {
		return 0
	}
	return v.arr.Offset
}

func (v ArrayView) NumBuffers() int64 {
	if v.arr == nil {
		return 0
	}
	return v.arr.NBuffers
}

func (v ArrayView) NumChildren() int64 {
	if v.arr == nil {
		return 0
	}
	return v.arr.NChildren
}

// Buffer returns the raw pointer at the given buffer slot, or nil when the
// descriptor is nil or the slot is out of range.
func (v ArrayView) Buffer(i int) unsafe.Pointer {
	if v.arr == nil || v.arr.Buffers == nil || i < 0 || int64(i) >= v.arr.NBuffers {
		return nil
	}
	return unsafe.Slice(v.arr.Buffers, v.arr.NBuffers)[i]
}

// BufferBytes returns a borrowed byte view of the buffer at slot i sized to
// size bytes. The slice aliases producer memory and must not escape the
// importing call.
func (v ArrayView) BufferBytes(i int, size int64) []byte {
	p := v.Buffer(i)
	if p == nil || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

// Child returns a view over the i-th child descriptor. Out of range yields a
// nil view.
func (v ArrayView) Child(i int) ArrayView {
	if v.arr == nil || v.arr.Children == nil || i < 0 || int64(i) >= v.arr.NChildren {
		return ArrayView{}
	}
	return ArrayView{arr: unsafe.Slice(v.arr.Children, v.arr.NChildren)[i]}
}

// SchemaView is the bounds-checked counterpart of ArrayView for ArrowSchema
// descriptors.
type SchemaView struct {
	sc *ArrowSchema
}

func NewSchemaView(sc *ArrowSchema) SchemaView {
	return SchemaView{sc: sc}
}

func (v SchemaView) IsNil() bool {
	return v.sc == nil
}

func (v SchemaView) Format() string {
	if v.sc == nil {
		return ""
	}
	return goString(v.sc.Format)
}

func (v SchemaView) Name() string {
	if v.sc == nil {
		return ""
	}
	return goString(v.sc.Name)
}

func (v SchemaView) Nullable() bool {
	return v.sc != nil && v.sc.Flags&flagNullable != 0
}

func (v SchemaView) NumChildren() int64 {
	if v.sc == nil {
		return 0
	}
	return v.sc.NChildren
}

func (v SchemaView) Child(i int) SchemaView {
	if v.sc == nil || v.sc.Children == nil || i < 0 || int64(i) >= v.sc.NChildren {
		return SchemaView{}
	}
	return SchemaView{sc: unsafe.Slice(v.sc.Children, v.sc.NChildren)[i]}
}

// goString copies a NUL-terminated C string into a Go string.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
