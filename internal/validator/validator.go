// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validator implements spec.md §4.7 (C7): comparing a backend's
// decoded results against the ground truth an internal/generators
// Generator computed at data-generation time.
package validator

import (
	"math"

	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/herr"
	"github.com/hebench/harness/internal/workload"
)

// Validate compares expected against actual, result by result and element
// by element, stopping at the first mismatch (spec.md §4.7: "first
// mismatch is fatal for the benchmark run"). elemsPerResult is the number
// of T values packed into every result buffer (vector length for
// EltwiseAdd/Mult, m*n for MatMul, 1 for DotProduct/LogReg).
func Validate(space *databuf.SampleSpace, dt workload.DataType, tol config.Tolerances, elemsPerResult int, expected, actual *databuf.DataPack) error {
	switch dt {
	case workload.Uint64:
		return validate[uint64](space, dt, tol, elemsPerResult, expected, actual)
	case workload.Int64:
		return validate[int64](space, dt, tol, elemsPerResult, expected, actual)
	case workload.Float32:
		return validate[float32](space, dt, tol, elemsPerResult, expected, actual)
	case workload.Float64:
		return validate[float64](space, dt, tol, elemsPerResult, expected, actual)
	default:
		panic("validator: unsupported DataType")
	}
}

func validate[T databuf.Numeric](space *databuf.SampleSpace, dt workload.DataType, tol config.Tolerances, elemsPerResult int, expected, actual *databuf.DataPack) error {
	for flat := 0; flat < len(expected.Buffers); flat++ {
		expBuf, err := databuf.NewBuffer[T](&expected.Buffers[flat], dt, elemsPerResult)
		if err != nil {
			return &herr.ResourceError{Msg: "validator: reading expected buffer", Err: err}
		}
		expBuf.Unpack()

		actBuf, err := databuf.NewBuffer[T](&actual.Buffers[flat], dt, elemsPerResult)
		if err != nil {
			return &herr.ResourceError{Msg: "validator: reading actual buffer", Err: err}
		}
		actBuf.Unpack()

		exp, act := expBuf.Slice(), actBuf.Slice()
		for off := range exp {
			if !closeEnough(exp[off], act[off], dt, tol) {
				return &herr.ValidationError{
					ResultIndex: flat,
					MultiIndex:  space.Delinearize(flat),
					Offset:      off,
					Expected:    exp[off],
					Actual:      act[off],
				}
			}
		}
	}
	return nil
}

// closeEnough implements spec.md §4.7: exact equality for integer types,
// |a-e| <= tol * max(|e|, eps) for floats, where eps is a type-dependent
// absolute floor (S6: an expected value of 0.0 still tolerates tiny noise).
func closeEnough[T databuf.Numeric](expected, actual T, dt workload.DataType, tol config.Tolerances) bool {
	if !dt.IsFloat() {
		return expected == actual
	}
	e := toF64(expected)
	a := toF64(actual)
	var rel, eps float64
	if dt == workload.Float32 {
		rel, eps = tol.F32Rel, 1e-7
	} else {
		rel, eps = tol.F64Rel, 1e-10
	}
	floor := math.Abs(e)
	if floor < eps {
		floor = eps
	}
	return math.Abs(a-e) <= rel*floor
}

func toF64[T databuf.Numeric](v T) float64 {
	switch x := any(v).(type) {
	case uint64:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		panic("validator: unsupported Numeric type")
	}
}
