// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hebench/harness/internal/token"
	"github.com/hebench/harness/internal/workload"
)

func TestMatchRejectsWrongWorkload(t *testing.T) {
	m := token.NewMatcher(workload.EltwiseAdd, nil)
	desc := workload.Descriptor{Workload: workload.MatMul}
	_, ok, reason := m.Match(desc, []workload.Param{workload.U64(4)})
	require.False(t, ok)
	require.NotEmpty(t, reason)
}

func TestMatchRejectsArityMismatch(t *testing.T) {
	m := token.NewMatcher(workload.EltwiseAdd, nil)
	desc := workload.Descriptor{Workload: workload.EltwiseAdd}
	_, ok, _ := m.Match(desc, []workload.Param{workload.U64(4), workload.U64(4)})
	require.False(t, ok)
}

func TestMatchRejectsTypeMismatch(t *testing.T) {
	m := token.NewMatcher(workload.EltwiseAdd, nil)
	desc := workload.Descriptor{Workload: workload.EltwiseAdd}
	_, ok, _ := m.Match(desc, []workload.Param{workload.F64(4)})
	require.False(t, ok)
}

func TestDefaultMatchersDomainChecks(t *testing.T) {
	matchers := token.DefaultMatchers()
	byWorkload := make(map[workload.Name]*token.Matcher)
	for _, m := range matchers {
		byWorkload[m.Workload()] = m
	}

	eltwise := byWorkload[workload.EltwiseAdd]
	desc := workload.Descriptor{Workload: workload.EltwiseAdd, DataType: workload.Float64}
	_, ok, _ := eltwise.Match(desc, []workload.Param{workload.U64(0)})
	require.False(t, ok, "zero vector length must be rejected")
	_, ok, _ = eltwise.Match(desc, []workload.Param{workload.U64(4)})
	require.True(t, ok)

	matmul := byWorkload[workload.MatMul]
	mmDesc := workload.Descriptor{Workload: workload.MatMul}
	_, ok, _ = matmul.Match(mmDesc, []workload.Param{workload.U64(2), workload.U64(0), workload.U64(2)})
	require.False(t, ok, "zero dimension must be rejected")

	logreg := byWorkload[workload.LogRegPolyD3]
	intDesc := workload.Descriptor{Workload: workload.LogRegPolyD3, DataType: workload.Uint64}
	_, ok, reason := logreg.Match(intDesc, []workload.Param{workload.U64(4)})
	require.False(t, ok, "integer data type must be rejected for LogReg")
	require.Contains(t, reason, "floating")

	floatDesc := workload.Descriptor{Workload: workload.LogRegPolyD3, DataType: workload.Float32}
	_, ok, _ = logreg.Match(floatDesc, []workload.Param{workload.U64(4)})
	require.True(t, ok)
}

func TestMatcherIdentityIsStableByValue(t *testing.T) {
	m := token.NewMatcher(workload.DotProduct, nil)
	id1 := m.Identity()
	id2 := m.Identity()
	require.Equal(t, id1, id2)
}
