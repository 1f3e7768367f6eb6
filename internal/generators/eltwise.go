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

// eltwiseGenerator implements both EltwiseAdd and EltwiseMult: the two
// workloads differ only in which kernel combines the operands.
type eltwiseGenerator struct {
	name  workload.Name
	isAdd bool
}

func EltwiseAdd() Generator  { return &eltwiseGenerator{name: workload.EltwiseAdd, isAdd: true} }
func EltwiseMult() Generator { return &eltwiseGenerator{name: workload.EltwiseMult, isAdd: false} }

func (g *eltwiseGenerator) Workload() workload.Name { return g.name }

func (g *eltwiseGenerator) Generate(desc workload.Descriptor, params []workload.Param, batchSizes []int, cfg *config.Config, rng *rand.Rand) (*GeneratedData, error) {
	vecLen := int(params[0].AsU64())
	switch desc.DataType {
	case workload.Uint64:
		return genEltwise[uint64](g.isAdd, desc, vecLen, batchSizes, rng)
	case workload.Int64:
		return genEltwise[int64](g.isAdd, desc, vecLen, batchSizes, rng)
	case workload.Float32:
		return genEltwise[float32](g.isAdd, desc, vecLen, batchSizes, rng)
	case workload.Float64:
		return genEltwise[float64](g.isAdd, desc, vecLen, batchSizes, rng)
	default:
		panic("generators: unsupported DataType")
	}
}

// genEltwise is the single generic kernel both EltwiseAdd and EltwiseMult
// instantiate, per spec.md §9's "generate the kernels once per arithmetic
// type" -- dispatch to a concrete T happens once, in Generate's switch.
func genEltwise[T Arith](isAdd bool, desc workload.Descriptor, vecLen int, batchSizes []int, rng *rand.Rand) (*GeneratedData, error) {
	dt := desc.DataType
	space, err := databuf.NewSampleSpace(batchSizes)
	if err != nil {
		return nil, err
	}

	aPack, err := databuf.Init(0, databuf.InputPack, batchSizes[0], vecLen*dt.Size())
	if err != nil {
		return nil, err
	}
	bPack, err := databuf.Init(1, databuf.InputPack, batchSizes[1], vecLen*dt.Size())
	if err != nil {
		return nil, err
	}

	aVecs := make([][]T, batchSizes[0])
	for i := range aVecs {
		v := sampleVector[T](rng, vecLen, 0, 1)
		if _, err := packVector[T](&aPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		aVecs[i] = v
	}
	bVecs := make([][]T, batchSizes[1])
	for i := range bVecs {
		v := sampleVector[T](rng, vecLen, 0, 1)
		if _, err := packVector[T](&bPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		bVecs[i] = v
	}

	card := space.Cardinality()
	expPack, err := databuf.Init(0, databuf.ResultPack, card, vecLen*dt.Size())
	if err != nil {
		return nil, err
	}
	for flat := 0; flat < card; flat++ {
		multi := space.Delinearize(flat)
		var c []T
		if isAdd {
			c = eltwiseAdd[T](aVecs[multi[0]], bVecs[multi[1]])
		} else {
			c = eltwiseMult[T](aVecs[multi[0]], bVecs[multi[1]])
		}
		if _, err := packVector[T](&expPack.Buffers[flat], dt, c); err != nil {
			return nil, err
		}
	}

	return &GeneratedData{
		Space:          space,
		InputPacks:     []*databuf.DataPack{aPack, bPack},
		ExpectedPack:   expPack,
		DataType:       dt,
		ElemsPerResult: vecLen,
	}, nil
}
