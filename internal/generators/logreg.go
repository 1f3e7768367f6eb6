// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generators

import (
	"math"
	"math/rand"

	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/workload"
)

type logRegGenerator struct {
	name workload.Name
}

func LogReg(name workload.Name) Generator { return &logRegGenerator{name: name} }

func (g *logRegGenerator) Workload() workload.Name { return g.name }

// Generate draws a batch of weight vectors (position 0), bias scalars
// (position 1), and feature vectors (position 2), then computes
// y = sigmoid(w . x + b) in float64 for every combination in the sample
// space, applying the sigmoid form spec.md §4.3 assigns to g.name before
// casting down to the descriptor's declared float width.
func (g *logRegGenerator) Generate(desc workload.Descriptor, params []workload.Param, batchSizes []int, cfg *config.Config, rng *rand.Rand) (*GeneratedData, error) {
	featureCount := int(params[0].AsU64())
	sigmoid := workload.SigmoidFor(g.name)
	switch desc.DataType {
	case workload.Float32:
		return genLogReg[float32](sigmoid, desc, featureCount, batchSizes, rng)
	case workload.Float64:
		return genLogReg[float64](sigmoid, desc, featureCount, batchSizes, rng)
	default:
		panic("generators: LogReg requires a floating-point DataType")
	}
}

func genLogReg[T Arith](sigmoid workload.Sigmoid, desc workload.Descriptor, featureCount int, batchSizes []int, rng *rand.Rand) (*GeneratedData, error) {
	dt := desc.DataType
	space, err := databuf.NewSampleSpace(batchSizes)
	if err != nil {
		return nil, err
	}

	wPack, err := databuf.Init(0, databuf.InputPack, batchSizes[0], featureCount*dt.Size())
	if err != nil {
		return nil, err
	}
	bPack, err := databuf.Init(1, databuf.InputPack, batchSizes[1], dt.Size())
	if err != nil {
		return nil, err
	}
	xPack, err := databuf.Init(2, databuf.InputPack, batchSizes[2], featureCount*dt.Size())
	if err != nil {
		return nil, err
	}

	wVecs := make([][]T, batchSizes[0])
	for i := range wVecs {
		v := sampleVector[T](rng, featureCount, 0, 1)
		if _, err := packVector[T](&wPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		wVecs[i] = v
	}
	bVals := make([]T, batchSizes[1])
	for i := range bVals {
		v := sampleVector[T](rng, 1, 0, 1)
		if _, err := packVector[T](&bPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		bVals[i] = v[0]
	}
	xVecs := make([][]T, batchSizes[2])
	for i := range xVecs {
		v := sampleVector[T](rng, featureCount, 0, 1)
		if _, err := packVector[T](&xPack.Buffers[i], dt, v); err != nil {
			return nil, err
		}
		xVecs[i] = v
	}

	card := space.Cardinality()
	expPack, err := databuf.Init(0, databuf.ResultPack, card, dt.Size())
	if err != nil {
		return nil, err
	}
	for flat := 0; flat < card; flat++ {
		multi := space.Delinearize(flat)
		z := toFloat64[T](dotProduct[T](wVecs[multi[0]], xVecs[multi[2]])) + toFloat64[T](bVals[multi[1]])
		y := applySigmoid(sigmoid, z)
		if _, err := packVector[T](&expPack.Buffers[flat], dt, []T{castTo[T](y)}); err != nil {
			return nil, err
		}
	}

	return &GeneratedData{
		Space:          space,
		InputPacks:     []*databuf.DataPack{wPack, bPack, xPack},
		ExpectedPack:   expPack,
		DataType:       dt,
		ElemsPerResult: 1,
	}, nil
}

// applySigmoid evaluates the logistic function or one of its polynomial
// approximations at z, using workload.PolyCoeffs's exact literal
// coefficients via Horner's rule for the poly forms.
func applySigmoid(s workload.Sigmoid, z float64) float64 {
	if s == workload.SigmoidTrue {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	coeffs := workload.PolyCoeffs[s]
	result := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*z + coeffs[i]
	}
	return result
}
