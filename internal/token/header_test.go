// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hebench/harness/internal/token"
	"github.com/hebench/harness/internal/workload"
)

func TestHeaderIsValidTwoRowCSV(t *testing.T) {
	desc := workload.Descriptor{
		Workload: workload.DotProduct,
		Category: workload.Latency,
		DataType: workload.Float64,
		Scheme:   "BGV",
		Security: "128",
		Other:    "has,comma",
	}
	params := []workload.Param{workload.U64(8)}

	header := token.Header("DotProduct", params, desc)
	rows, err := csv.NewReader(strings.NewReader(header)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, len(rows[0]), len(rows[1]))
	require.Contains(t, rows[0], "wp0")
	require.Contains(t, rows[1], "has,comma")
}
