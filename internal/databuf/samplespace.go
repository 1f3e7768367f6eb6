// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package databuf implements the harness's data model: NativeDataBuffer,
// DataPack, and the row-major sample-space index arithmetic that lets a
// backend refer to a result by flat position (spec.md §3).
package databuf

import "fmt"

// SampleSpace is the Cartesian product of a workload's per-parameter batch
// sizes. Index/Delinearize are mutual inverses across the full space, the
// invariant spec.md §8 calls out explicitly (property 2).
type SampleSpace struct {
	BatchSizes []int
}

// NewSampleSpace validates that every batch size is positive; a zero or
// negative batch size would make the space empty or ill-defined.
func NewSampleSpace(batchSizes []int) (*SampleSpace, error) {
	for i, b := range batchSizes {
		if b <= 0 {
			return nil, fmt.Errorf("databuf: batch_size[%d] = %d must be positive", i, b)
		}
	}
	bs := make([]int, len(batchSizes))
	copy(bs, batchSizes)
	return &SampleSpace{BatchSizes: bs}, nil
}

// Cardinality returns the product of all batch sizes: the total number of
// result samples.
func (s *SampleSpace) Cardinality() int {
	n := 1
	for _, b := range s.BatchSizes {
		n *= b
	}
	return n
}

// Index computes the canonical row-major flat index of multiIndex:
// result_index(multi_index) = sum(i_k * prod(batch[j] for j < k)).
func (s *SampleSpace) Index(multiIndex []int) int {
	if len(multiIndex) != len(s.BatchSizes) {
		panic(fmt.Sprintf("databuf: multi-index length %d != %d dimensions", len(multiIndex), len(s.BatchSizes)))
	}
	idx := 0
	stride := 1
	for k := 0; k < len(s.BatchSizes); k++ {
		idx += multiIndex[k] * stride
		stride *= s.BatchSizes[k]
	}
	return idx
}

// Delinearize is Index's inverse: given a flat index, recover the
// multi-index that produced it.
func (s *SampleSpace) Delinearize(flat int) []int {
	n := len(s.BatchSizes)
	multi := make([]int, n)
	for k := 0; k < n; k++ {
		multi[k] = flat % s.BatchSizes[k]
		flat /= s.BatchSizes[k]
	}
	return multi
}
