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

type matMulGenerator struct{}

func MatMul() Generator { return matMulGenerator{} }

func (matMulGenerator) Workload() workload.Name { return workload.MatMul }

// Generate reads the three dimension params (M, K, N) and draws one M*K
// matrix per sample in position 0 and one K*N matrix per sample in
// position 1, both row-major per spec.md §4.3.
func (matMulGenerator) Generate(desc workload.Descriptor, params []workload.Param, batchSizes []int, cfg *config.Config, rng *rand.Rand) (*GeneratedData, error) {
	m := int(params[0].AsU64())
	k := int(params[1].AsU64())
	n := int(params[2].AsU64())
	switch desc.DataType {
	case workload.Uint64:
		return genMatMul[uint64](desc, m, k, n, batchSizes, rng)
	case workload.Int64:
		return genMatMul[int64](desc, m, k, n, batchSizes, rng)
	case workload.Float32:
		return genMatMul[float32](desc, m, k, n, batchSizes, rng)
	case workload.Float64:
		return genMatMul[float64](desc, m, k, n, batchSizes, rng)
	default:
		panic("generators: unsupported DataType")
	}
}

func genMatMul[T Arith](desc workload.Descriptor, m, k, n int, batchSizes []int, rng *rand.Rand) (*GeneratedData, error) {
	dt := desc.DataType
	space, err := databuf.NewSampleSpace(batchSizes)
	if err != nil {
		return nil, err
	}

	aPack, err := databuf.Init(0, databuf.InputPack, batchSizes[0], m*k*dt.Size())
	if err != nil {
		return nil, err
	}
	bPack, err := databuf.Init(1, databuf.InputPack, batchSizes[1], k*n*dt.Size())
	if err != nil {
		return nil, err
	}

	aMats := make([][]T, batchSizes[0])
	for i := range aMats {
		v := sampleVector[T](rng, m*k, 0, 1)
		if _, err := packVector[T](&aPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		aMats[i] = v
	}
	bMats := make([][]T, batchSizes[1])
	for i := range bMats {
		v := sampleVector[T](rng, k*n, 0, 1)
		if _, err := packVector[T](&bPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		bMats[i] = v
	}

	card := space.Cardinality()
	expPack, err := databuf.Init(0, databuf.ResultPack, card, m*n*dt.Size())
	if err != nil {
		return nil, err
	}
	for flat := 0; flat < card; flat++ {
		multi := space.Delinearize(flat)
		c := matMul[T](aMats[multi[0]], bMats[multi[1]], m, k, n)
		if _, err := packVector[T](&expPack.Buffers[flat], dt, c); err != nil {
			return nil, err
		}
	}

	return &GeneratedData{
		Space:          space,
		InputPacks:     []*databuf.DataPack{aPack, bPack},
		ExpectedPack:   expPack,
		DataType:       dt,
		ElemsPerResult: m * n,
	}, nil
}
