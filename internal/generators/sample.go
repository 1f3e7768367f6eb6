// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generators

import (
	"math"
	"math/rand"

	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/workload"
)

// castTo converts a float64 sample (or computed ground-truth value) into
// T, rounding to the nearest integer for integer element types.
func castTo[T Arith](f float64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(f)).(T)
	case float64:
		return any(f).(T)
	case uint64:
		if f < 0 {
			f = 0
		}
		return any(uint64(math.Round(f))).(T)
	case int64:
		return any(int64(math.Round(f))).(T)
	default:
		panic("generators: unsupported Arith type")
	}
}

// toFloat64 is castTo's inverse, used when a ground-truth computation
// needs to go back through f64 math (e.g. logistic regression).
func toFloat64[T Arith](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case uint64:
		return float64(x)
	case int64:
		return float64(x)
	default:
		panic("generators: unsupported Arith type")
	}
}

// sampleVector draws n values of T from a truncated normal(mean, stddev).
func sampleVector[T Arith](rng *rand.Rand, n int, mean, stddev float64) []T {
	v := make([]T, n)
	for i := range v {
		v[i] = castTo[T](truncatedNormal(rng, mean, stddev))
	}
	return v
}

// packVector writes v into buf as a Buffer[T], serializing to buf's raw
// bytes so the pack's arena holds the same value the harness will later
// compare in the validator.
func packVector[T Arith](buf *databuf.NativeDataBuffer, dt workload.DataType, v []T) (databuf.Buffer[T], error) {
	bv, err := databuf.NewBuffer[T](buf, dt, len(v))
	if err != nil {
		return databuf.Buffer[T]{}, err
	}
	copy(bv.Slice(), v)
	bv.Pack()
	return bv, nil
}

// readVector reads count T values back out of buf's raw bytes.
func readVector[T Arith](buf *databuf.NativeDataBuffer, dt workload.DataType, count int) ([]T, error) {
	bv, err := databuf.NewBuffer[T](buf, dt, count)
	if err != nil {
		return nil, err
	}
	bv.Unpack()
	return bv.Slice(), nil
}
