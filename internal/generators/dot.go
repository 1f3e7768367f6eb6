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

type dotProductGenerator struct{}

func DotProduct() Generator { return dotProductGenerator{} }

func (dotProductGenerator) Workload() workload.Name { return workload.DotProduct }

func (dotProductGenerator) Generate(desc workload.Descriptor, params []workload.Param, batchSizes []int, cfg *config.Config, rng *rand.Rand) (*GeneratedData, error) {
	vecLen := int(params[0].AsU64())
	switch desc.DataType {
	case workload.Uint64:
		return genDotProduct[uint64](desc, vecLen, batchSizes, rng)
	case workload.Int64:
		return genDotProduct[int64](desc, vecLen, batchSizes, rng)
	case workload.Float32:
		return genDotProduct[float32](desc, vecLen, batchSizes, rng)
	case workload.Float64:
		return genDotProduct[float64](desc, vecLen, batchSizes, rng)
	default:
		panic("generators: unsupported DataType")
	}
}

// genDotProduct differs from genEltwise in the result pack's element
// width: a dot product collapses a vector pair into a single scalar, so
// the expected pack holds one T per sample rather than a vector.
func genDotProduct[T Arith](desc workload.Descriptor, vecLen int, batchSizes []int, rng *rand.Rand) (*GeneratedData, error) {
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
	expPack, err := databuf.Init(0, databuf.ResultPack, card, dt.Size())
	if err != nil {
		return nil, err
	}
	for flat := 0; flat < card; flat++ {
		multi := space.Delinearize(flat)
		scalar := dotProduct[T](aVecs[multi[0]], bVecs[multi[1]])
		if _, err := packVector[T](&expPack.Buffers[flat], dt, []T{scalar}); err != nil {
			return nil, err
		}
	}

	return &GeneratedData{
		Space:          space,
		InputPacks:     []*databuf.DataPack{aPack, bPack},
		ExpectedPack:   expPack,
		DataType:       dt,
		ElemsPerResult: 1,
	}, nil
}
