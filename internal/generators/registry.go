// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generators

import "github.com/hebench/harness/internal/workload"

// All returns one Generator per catalog workload, in workload.All's order.
func All() []Generator {
	return []Generator{
		EltwiseAdd(),
		EltwiseMult(),
		DotProduct(),
		MatMul(),
		LogReg(workload.LogRegSigmoid),
		LogReg(workload.LogRegPolyD3),
		LogReg(workload.LogRegPolyD5),
		LogReg(workload.LogRegPolyD7),
	}
}

// ByWorkload indexes All() by workload.Name for the engine's lookup.
func ByWorkload() map[workload.Name]Generator {
	m := make(map[workload.Name]Generator, len(workload.All))
	for _, g := range All() {
		m[g.Workload()] = g
	}
	return m
}
