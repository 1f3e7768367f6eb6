// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generators

import (
	"math/rand"

	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/workload"
)

// GeneratedData is the complete input/expected-output data set for one
// benchmark run: the sample space, one DataPack per input parameter
// position, and the single expected-result DataPack (spec.md §3: "For
// workloads with a single result vector shape").
type GeneratedData struct {
	Space        *databuf.SampleSpace
	InputPacks   []*databuf.DataPack
	ExpectedPack *databuf.DataPack
	DataType     workload.DataType

	// ElemsPerResult is how many DataType values are packed into every
	// buffer of ExpectedPack: the vector length for EltwiseAdd/Mult, the
	// m*n output size for MatMul, 1 for DotProduct and LogReg.
	ElemsPerResult int
}

// Generator produces random inputs and deterministic ground truth for one
// catalog workload.
type Generator interface {
	Workload() workload.Name

	// Generate draws samples from rng and computes ground truth in the
	// descriptor's declared data type. batchSizes gives, per input
	// parameter position, how many samples to draw (already resolved from
	// either the descriptor's cat_params or config.DefaultSampleSize by
	// the caller).
	Generate(desc workload.Descriptor, params []workload.Param, batchSizes []int, cfg *config.Config, rng *rand.Rand) (*GeneratedData, error)
}

// ResolveBatchSizes applies spec.md §3/§4.6.3's "data_count[i] if nonzero,
// else config.default_sample_size" rule, used by the engine to build the
// batchSizes argument Generate expects for non-Latency benchmarks.
func ResolveBatchSizes(n workload.Name, desc workload.Descriptor, cfg *config.Config) []int {
	count := workload.InputParamCount(n)
	sizes := make([]int, count)
	for i := 0; i < count; i++ {
		if desc.Category == workload.Offline && i < len(desc.CatParams.Offline.DataCount) && desc.CatParams.Offline.DataCount[i] != 0 {
			sizes[i] = int(desc.CatParams.Offline.DataCount[i])
		} else {
			sizes[i] = int(cfg.DefaultSampleSize)
		}
	}
	return sizes
}

// LatencyBatchSizes forces every input parameter to a single sample, per
// spec.md §4.6.2: the Latency driver always runs on "the first of each
// parameter's batch".
func LatencyBatchSizes(n workload.Name) []int {
	count := workload.InputParamCount(n)
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = 1
	}
	return sizes
}
