// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package databuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hebench/harness/internal/workload"
)

// Alignment is the minimum byte alignment the arena guarantees every
// buffer, per spec.md §4.2.
const Alignment = 64

// NativeDataBuffer is the ABI-edge (pointer, size, tag) triple of spec.md
// §3. Raw is a view into the owning arena's backing array; Tag is an
// opaque identifier the backend may use to reference this buffer in a
// later pipeline call.
type NativeDataBuffer struct {
	Raw  []byte
	Size int
	Tag  uint64
}

// Numeric constrains the element types databuf's typed view can wrap.
type Numeric interface {
	~uint64 | ~int64 | ~float32 | ~float64
}

// Buffer is a typed view over a NativeDataBuffer. It is constructed only
// at the point a caller knows the declared DataType, checking that type's
// element width against T so a mismatched reinterpretation fails
// immediately rather than silently
// misreading bytes (spec.md §9: "keep the raw form only at the ABI edge").
// Pack/Unpack move data to and from the buffer's raw bytes; everything
// above the ABI adapter works with Slice() instead.
type Buffer[T Numeric] struct {
	native *NativeDataBuffer
	data   []T
}

// NewBuffer builds a typed view over n, verifying dt matches T's width and
// that n.Size is large enough to hold count elements of that size.
func NewBuffer[T Numeric](n *NativeDataBuffer, dt workload.DataType, count int) (Buffer[T], error) {
	elemSize := dt.Size()
	var zero T
	if widthOf(zero) != elemSize {
		return Buffer[T]{}, fmt.Errorf("databuf: element type %T does not match %s", zero, dt)
	}
	want := elemSize * count
	if n.Size < want {
		return Buffer[T]{}, fmt.Errorf("databuf: buffer tag %d has %d bytes, need %d for %d %s elements",
			n.Tag, n.Size, want, count, dt)
	}
	return Buffer[T]{native: n, data: make([]T, count)}, nil
}

// Slice returns the typed backing slice for direct read/write by a data
// generator (the pack's exclusive owner) or read-only access by a backend
// adapter.
func (b Buffer[T]) Slice() []T { return b.data }

// Native returns the untyped NativeDataBuffer this view was built over, for
// handing to the ABI adapter.
func (b Buffer[T]) Native() *NativeDataBuffer { return b.native }

// Pack serializes Slice() into the underlying NativeDataBuffer's raw bytes,
// little-endian, so the ABI-edge representation reflects whatever the
// generator last wrote.
func (b Buffer[T]) Pack() {
	var zero T
	elemSize := widthOf(zero)
	for i, v := range b.data {
		off := i * elemSize
		putElem(b.native.Raw[off:off+elemSize], v)
	}
}

// Unpack is Pack's inverse: it reads the NativeDataBuffer's raw bytes back
// into Slice(), used after a pipeline step (e.g. decode) has produced a
// result in the arena.
func (b Buffer[T]) Unpack() {
	var zero T
	elemSize := widthOf(zero)
	for i := range b.data {
		off := i * elemSize
		b.data[i] = getElem[T](b.native.Raw[off : off+elemSize])
	}
}

func widthOf(v interface{}) int {
	switch v.(type) {
	case uint64, int64, float64:
		return 8
	case float32:
		return 4
	default:
		panic(fmt.Sprintf("databuf: unsupported element type %T", v))
	}
}

func putElem(dst []byte, v interface{}) {
	switch x := v.(type) {
	case uint64:
		binary.LittleEndian.PutUint64(dst, x)
	case int64:
		binary.LittleEndian.PutUint64(dst, uint64(x))
	case float64:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(x))
	case float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(x))
	default:
		panic(fmt.Sprintf("databuf: unsupported element type %T", v))
	}
}

func getElem[T Numeric](src []byte) T {
	var zero T
	switch any(zero).(type) {
	case uint64:
		return any(binary.LittleEndian.Uint64(src)).(T)
	case int64:
		return any(int64(binary.LittleEndian.Uint64(src))).(T)
	case float64:
		return any(math.Float64frombits(binary.LittleEndian.Uint64(src))).(T)
	case float32:
		return any(math.Float32frombits(binary.LittleEndian.Uint32(src))).(T)
	default:
		panic(fmt.Sprintf("databuf: unsupported element type %T", zero))
	}
}
