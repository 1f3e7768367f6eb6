// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workload defines the harness's fixed catalog of numeric
// workloads, their parameter shapes, and the scalar/category/descriptor
// types shared by the matcher, data generators, and drivers. It plays the
// role the teacher's sweet/common package plays for benchmark metadata,
// generalized from "a named external binary" to "a named math kernel with
// a typed parameter vector".
package workload

// Name identifies one of the harness's fixed workloads. Each of the four
// logistic-regression sigmoid forms (true sigmoid, and the degree 3/5/7
// polynomial approximations) is a distinct catalog entry: a backend
// advertises support for exactly one sigmoid form per benchmark descriptor,
// the same way a real HE backend exposes LogisticRegression_PolyD3 as a
// separate benchmark ID from plain LogisticRegression.
type Name int

const (
	EltwiseAdd Name = iota
	EltwiseMult
	DotProduct
	MatMul
	LogRegSigmoid
	LogRegPolyD3
	LogRegPolyD5
	LogRegPolyD7
)

func (n Name) String() string {
	switch n {
	case EltwiseAdd:
		return "EltwiseAdd"
	case EltwiseMult:
		return "EltwiseMult"
	case DotProduct:
		return "DotProduct"
	case MatMul:
		return "MatMul"
	case LogRegSigmoid:
		return "LogReg"
	case LogRegPolyD3:
		return "LogRegPolyD3"
	case LogRegPolyD5:
		return "LogRegPolyD5"
	case LogRegPolyD7:
		return "LogRegPolyD7"
	default:
		return "Unknown"
	}
}

// All enumerates every workload the harness knows about, in the order the
// engine asks its matchers about them.
var All = []Name{
	EltwiseAdd, EltwiseMult, DotProduct, MatMul,
	LogRegSigmoid, LogRegPolyD3, LogRegPolyD5, LogRegPolyD7,
}

// IsLogReg reports whether n is any of the four logistic-regression
// variants.
func IsLogReg(n Name) bool {
	return n == LogRegSigmoid || n == LogRegPolyD3 || n == LogRegPolyD5 || n == LogRegPolyD7
}

// Sigmoid identifies which approximation of the logistic function a LogReg
// benchmark exercises.
type Sigmoid int

const (
	SigmoidTrue Sigmoid = iota
	SigmoidPolyD3
	SigmoidPolyD5
	SigmoidPolyD7
)

func (s Sigmoid) String() string {
	switch s {
	case SigmoidTrue:
		return "True"
	case SigmoidPolyD3:
		return "PolyD3"
	case SigmoidPolyD5:
		return "PolyD5"
	case SigmoidPolyD7:
		return "PolyD7"
	default:
		return "Unknown"
	}
}

// SigmoidFor maps a LogReg workload Name to its Sigmoid form. Panics if n
// is not a LogReg variant; callers must check IsLogReg first.
func SigmoidFor(n Name) Sigmoid {
	switch n {
	case LogRegSigmoid:
		return SigmoidTrue
	case LogRegPolyD3:
		return SigmoidPolyD3
	case LogRegPolyD5:
		return SigmoidPolyD5
	case LogRegPolyD7:
		return SigmoidPolyD7
	default:
		panic("workload: SigmoidFor called on a non-LogReg Name")
	}
}

// PolyCoeffs holds the Horner-rule coefficients (ascending powers) for the
// polynomial sigmoid approximations named in spec.md §4.3. These are exact
// literal values; they must never be recomputed or rounded differently.
var PolyCoeffs = map[Sigmoid][]float64{
	SigmoidPolyD3: {0.5, 0.15012, 0, -0.0015930078125},
	SigmoidPolyD5: {0.5, 0.19131, 0, -0.0045963, 0, 0.0000412332000732421875},
	SigmoidPolyD7: {0.5, 0.21687, 0, -0.00819154296875, 0, 0.0001658331298828125, 0, -0.00000119561672210693359375},
}

// ParamSpec describes the number and types of WorkloadParam a workload
// expects. The harness fixes this per workload; matchers validate backend
// descriptors against it.
type ParamSpec struct {
	// Tags is, in order, the expected ParamTag of each workload param.
	Tags []ParamTag
}

// ParamSpecs gives the fixed parameter shape of each workload, per
// spec.md §3's WorkloadParam note ("LogReg = 1 u64 vector size; MatMul = 3
// u64 dimensions").
var ParamSpecs = map[Name]ParamSpec{
	EltwiseAdd:    {Tags: []ParamTag{TagU64}},                 // vector length
	EltwiseMult:   {Tags: []ParamTag{TagU64}},                 // vector length
	DotProduct:    {Tags: []ParamTag{TagU64}},                 // vector length
	MatMul:        {Tags: []ParamTag{TagU64, TagU64, TagU64}}, // M, K, N
	LogRegSigmoid: {Tags: []ParamTag{TagU64}},                 // feature count
	LogRegPolyD3:  {Tags: []ParamTag{TagU64}},
	LogRegPolyD5:  {Tags: []ParamTag{TagU64}},
	LogRegPolyD7:  {Tags: []ParamTag{TagU64}},
}

// MaxOpParams bounds the cat_params.offline.data_count array, mirroring the
// backend ABI's MAX_OP_PARAMS constant (spec.md §6).
const MaxOpParams = 8

// InputParamCount returns how many input parameters (not results) a
// workload has, e.g. MatMul has two input matrices even though it takes
// three dimension WorkloadParams, and LogReg has three (weights, bias, x)
// per spec.md §3's "(W, b, X -> y)" note.
func InputParamCount(n Name) int {
	switch n {
	case EltwiseAdd, EltwiseMult, DotProduct, MatMul:
		return 2
	case LogRegSigmoid, LogRegPolyD3, LogRegPolyD5, LogRegPolyD7:
		return 3
	default:
		return 0
	}
}
