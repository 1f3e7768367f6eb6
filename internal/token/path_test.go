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

// TestCanonicalPathMatMulScenario is scenario S2: the canonical path for a
// MatMul benchmark with workload params (2, 3, 2) and Float32 contains the
// segments "MatMul_<n>", "wp_2_3_2", and "Float32" in order.
func TestCanonicalPathMatMulScenario(t *testing.T) {
	desc := workload.Descriptor{
		Workload: workload.MatMul,
		Category: workload.Offline,
		DataType: workload.Float32,
		Scheme:   "CKKS",
		Security: "128",
	}
	params := []workload.Param{workload.U64(2), workload.U64(3), workload.U64(2)}

	path := token.CanonicalPath("MatMul", workload.MatMul, params, desc)
	require.Contains(t, path, "wp_2_3_2")
	require.Contains(t, path, "Float32")
	require.Regexp(t, `^MatMul_\d+/wp_2_3_2/Offline/Float32/`, path)
}

func TestCanonicalPathAllPlainAndAllCipher(t *testing.T) {
	desc := workload.Descriptor{Workload: workload.DotProduct, Category: workload.Latency, DataType: workload.Float64}
	params := []workload.Param{workload.U64(4)}

	allPlain := token.CanonicalPath("DotProduct", workload.DotProduct, params, desc)
	require.Contains(t, allPlain, "all_plain")

	desc.CipherParamMask = 0xFFFFFFFF
	allCipher := token.CanonicalPath("DotProduct", workload.DotProduct, params, desc)
	require.Contains(t, allCipher, "all_cipher")
}

func TestCanonicalPathSanitizesSegments(t *testing.T) {
	desc := workload.Descriptor{
		Workload: workload.EltwiseAdd,
		Category: workload.Offline,
		DataType: workload.Uint64,
		Scheme:   "Some Scheme v1.2",
		Other:    "a//b",
	}
	params := []workload.Param{workload.U64(8)}

	path := token.CanonicalPath("EltwiseAdd", workload.EltwiseAdd, params, desc)
	require.Contains(t, path, "Some_Scheme_v1.2")
	require.Contains(t, path, "a_b")
	require.NotContains(t, path, " ")
}
