// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"github.com/google/uuid"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/herr"
	"github.com/hebench/harness/internal/workload"
)

// Sealed is the payload a DescriptionToken carries: spec.md §4.4's
// "(matcher_identity, backend_handle, descriptor, w_params, bench_config)".
// It is only reachable through Token.Unseal, never exported directly, so a
// benchmark class cannot read it without presenting the sealing identity.
type Sealed struct {
	BackendHandle abi.BenchmarkHandle
	Descriptor    workload.Descriptor
	Params        []workload.Param
	BenchConfig   *config.Config
}

// Token is an opaque handle coupling a matcher, a descriptor, and its
// workload params (spec.md Glossary). It can only be unsealed by a
// benchmark class presenting the matcher identity that sealed it,
// preventing cross-wiring of descriptors with the wrong benchmark class
// (spec.md §4.4, §9 "Sealed tokens").
type Token struct {
	matcherIdentity uuid.UUID
	sealed          Sealed
	workloadName    string
	header          string
	outputPath      string
}

// Seal produces a Token for a successful match. Only the Engine (via the
// matcher that accepted the descriptor) calls this.
func Seal(m *Matcher, workloadName string, bh abi.BenchmarkHandle, desc workload.Descriptor, params []workload.Param, cfg *config.Config) *Token {
	return &Token{
		matcherIdentity: m.Identity(),
		sealed: Sealed{
			BackendHandle: bh,
			Descriptor:    desc,
			Params:        params,
			BenchConfig:   cfg,
		},
		workloadName: workloadName,
		header:       Header(workloadName, params, desc),
		outputPath:   CanonicalPath(workloadName, m.workload, params, desc),
	}
}

// WorkloadName returns the derived human-readable workload name; this is
// always safe to read without unsealing, since it carries no backend
// state.
func (t *Token) WorkloadName() string { return t.workloadName }

// Header returns the CSV-style configuration header (spec.md §4.4, §4.9).
func (t *Token) Header() string { return t.header }

// OutputPath returns the canonical report directory path (spec.md §4.4).
func (t *Token) OutputPath() string { return t.outputPath }

// Unseal returns the token's sealed payload if identity matches the
// matcher that sealed it, and a *herr.PreconditionFailed otherwise. This
// is the harness's only cross-class-unsealing guard: a PartialBenchmark
// built for the wrong workload will fail here instead of silently reading
// a descriptor it doesn't understand.
func (t *Token) Unseal(identity uuid.UUID) (Sealed, error) {
	if identity != t.matcherIdentity {
		return Sealed{}, &herr.PreconditionFailed{Msg: "token unsealed by a matcher identity other than the one that sealed it"}
	}
	return t.sealed, nil
}
