// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package partialbench implements the benchmark scaffold of spec.md §4.5
// (C5): it owns the BenchHandle returned by init_benchmark, enforces the
// three-phase init -> init_backend -> post_init lifecycle, and produces the
// human-readable header and canonical output path a category driver needs
// without having to re-derive them from the token.
package partialbench

import (
	"github.com/google/uuid"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/herr"
	"github.com/hebench/harness/internal/token"
)

type state int

const (
	stateNew state = iota
	stateInitialized
	stateBackendInitialized
	statePostInitialized
)

// PartialBenchmark owns a BenchHandle for exactly as long as the benchmark
// it belongs to runs (spec.md §3 invariant iv). Destroy always attempts
// destroyHandle exactly once, even if construction failed partway through.
type PartialBenchmark struct {
	adapter         *abi.Adapter
	matcherIdentity uuid.UUID
	sealed          token.Sealed
	header          string
	outputPath      string

	state       state
	benchHandle abi.BenchHandle
}

// New begins the scaffold's lifecycle: it validates that tok was sealed by
// the given identity (the benchmark class's own matcher) but does not yet
// touch the backend -- that happens in InitBackend.
func New(adapter *abi.Adapter, identity uuid.UUID, tok *token.Token) (*PartialBenchmark, error) {
	sealed, err := tok.Unseal(identity)
	if err != nil {
		return nil, err
	}
	return &PartialBenchmark{
		adapter:         adapter,
		matcherIdentity: identity,
		sealed:          sealed,
		header:          tok.Header(),
		outputPath:      tok.OutputPath(),
		state:           stateInitialized,
	}, nil
}

// InitBackend calls init_benchmark on the backend, advancing to
// stateBackendInitialized on success.
func (p *PartialBenchmark) InitBackend() error {
	if p.state != stateInitialized {
		return &herr.PreconditionFailed{Msg: "InitBackend called out of order"}
	}
	bh, err := p.adapter.InitBenchmark(p.sealed.BackendHandle, p.sealed.Params)
	if err != nil {
		return err
	}
	p.benchHandle = bh
	p.state = stateBackendInitialized
	return nil
}

// PostInit completes the three-phase lifecycle; pipeline calls are
// rejected with PreconditionFailed until this has run.
func (p *PartialBenchmark) PostInit() error {
	if p.state != stateBackendInitialized {
		return &herr.PreconditionFailed{Msg: "PostInit called out of order"}
	}
	p.state = statePostInitialized
	return nil
}

// Ready reports whether the pipeline may be driven.
func (p *PartialBenchmark) Ready() bool { return p.state == statePostInitialized }

func (p *PartialBenchmark) checkReady() error {
	if !p.Ready() {
		return &herr.PreconditionFailed{Msg: "pipeline call before post_init"}
	}
	return nil
}

// Adapter, Sealed, Header, OutputPath, BenchHandle expose what the driver
// needs to run the pipeline; none of them bypass checkReady for the actual
// pipeline calls, which live on the driver and check Ready() themselves.
func (p *PartialBenchmark) Adapter() *abi.Adapter        { return p.adapter }
func (p *PartialBenchmark) Sealed() token.Sealed         { return p.sealed }
func (p *PartialBenchmark) Header() string               { return p.header }
func (p *PartialBenchmark) OutputPath() string           { return p.outputPath }
func (p *PartialBenchmark) BenchHandle() abi.BenchHandle { return p.benchHandle }
func (p *PartialBenchmark) CheckReady() error            { return p.checkReady() }

// Destroy always attempts destroyHandle exactly once, regardless of how
// far the lifecycle progressed (spec.md §4.5). Safe to call multiple
// times.
func (p *PartialBenchmark) Destroy() error {
	if p.state == stateNew || !p.benchHandle.Valid() {
		return nil
	}
	err := p.adapter.DestroyHandle(p.benchHandle, p.benchHandle.Handle)
	p.benchHandle.Handle = abi.Invalid
	return err
}
