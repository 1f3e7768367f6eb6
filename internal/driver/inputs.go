// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/generators"
)

// buildInputs turns a GeneratedData's input packs into the PositionedBuffers
// the ABI adapter's Encode expects. firstOnly restricts every position to
// its first sample, which is how Latency always selects "the first of each
// parameter's batch" (spec.md §4.6.2).
func buildInputs(data *generators.GeneratedData, firstOnly bool) []abi.PositionedBuffers {
	out := make([]abi.PositionedBuffers, len(data.InputPacks))
	for i, pack := range data.InputPacks {
		bufs := pack.Buffers
		if firstOnly {
			bufs = pack.Buffers[:1]
		}
		out[i] = abi.PositionedBuffers{Position: pack.ParameterPosition, Buffers: bufs}
	}
	return out
}
