// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abi

import (
	"github.com/hebench/harness/internal/herr"
	"github.com/hebench/harness/internal/workload"
)

// Adapter wraps a Backend and normalizes every nonzero return code into a
// *herr.BackendError carrying the backend's last-error string, so callers
// above this package never see a raw int32.
type Adapter struct {
	backend Backend
	engine  EngineHandle
}

// NewAdapter initializes the backend and returns an Adapter bound to the
// resulting EngineHandle, which lives for the adapter's lifetime.
func NewAdapter(backend Backend, cfg BackendConfig) (*Adapter, error) {
	e, code := backend.Init(cfg)
	if code != 0 {
		return nil, &herr.BackendError{Op: "init", Code: code, LastErr: backend.GetLastErrorDescription(e)}
	}
	return &Adapter{backend: backend, engine: e}, nil
}

// Close destroys the EngineHandle. Idempotent: calling it twice is safe.
func (a *Adapter) Close() error {
	if !a.engine.Valid() {
		return nil
	}
	code := a.backend.Destroy(a.engine)
	a.engine.destroyed = true
	if code != 0 {
		return a.fail("destroy", code)
	}
	return nil
}

func (a *Adapter) fail(op string, code int32) error {
	return &herr.BackendError{Op: op, Code: code, LastErr: a.backend.GetLastErrorDescription(a.engine)}
}

func (a *Adapter) SubscribeBenchmarks() ([]BenchmarkHandle, error) {
	hs, code := a.backend.SubscribeBenchmarks(a.engine)
	if code != 0 {
		return nil, a.fail("subscribe_benchmarks", code)
	}
	return hs, nil
}

func (a *Adapter) Describe(b BenchmarkHandle) (workload.Descriptor, int, error) {
	d, n, code := a.backend.Describe(a.engine, b)
	if code != 0 {
		return workload.Descriptor{}, 0, a.fail("describe", code)
	}
	return d, n, nil
}

func (a *Adapter) InitBenchmark(b BenchmarkHandle, params []workload.Param) (BenchHandle, error) {
	bh, code := a.backend.InitBenchmark(a.engine, b, params)
	if code != 0 {
		return BenchHandle{}, a.fail("init_benchmark", code)
	}
	return bh, nil
}

func (a *Adapter) Encode(b BenchHandle, in PositionedBuffers) (PositionedHandles, error) {
	out, code := a.backend.Encode(b, in)
	if code != 0 {
		return PositionedHandles{}, a.fail("encode", code)
	}
	return out, nil
}

func (a *Adapter) Encrypt(b BenchHandle, in PositionedHandles) (PositionedHandles, error) {
	out, code := a.backend.Encrypt(b, in)
	if code != 0 {
		return PositionedHandles{}, a.fail("encrypt", code)
	}
	return out, nil
}

func (a *Adapter) Load(b BenchHandle, in []PositionedHandles) ([]PositionedHandles, error) {
	out, code := a.backend.Load(b, in)
	if code != 0 {
		return nil, a.fail("load", code)
	}
	return out, nil
}

func (a *Adapter) Operate(b BenchHandle, in []PositionedHandles) (PositionedHandles, error) {
	out, code := a.backend.Operate(b, in)
	if code != 0 {
		return PositionedHandles{}, a.fail("operate", code)
	}
	return out, nil
}

func (a *Adapter) Store(b BenchHandle, in PositionedHandles) (PositionedHandles, error) {
	out, code := a.backend.Store(b, in)
	if code != 0 {
		return PositionedHandles{}, a.fail("store", code)
	}
	return out, nil
}

func (a *Adapter) Decrypt(b BenchHandle, in PositionedHandles) (PositionedHandles, error) {
	out, code := a.backend.Decrypt(b, in)
	if code != 0 {
		return PositionedHandles{}, a.fail("decrypt", code)
	}
	return out, nil
}

func (a *Adapter) Decode(b BenchHandle, in PositionedHandles) (PositionedBuffers, error) {
	out, code := a.backend.Decode(b, in)
	if code != 0 {
		return PositionedBuffers{}, a.fail("decode", code)
	}
	return out, nil
}

// DestroyHandle destroys a single backend-side handle, idempotent per
// spec.md §5's lifecycle rules.
func (a *Adapter) DestroyHandle(b BenchHandle, h Handle) error {
	if !h.Valid() {
		return nil
	}
	code := a.backend.DestroyHandle(b, h)
	if code != 0 {
		return a.fail("destroyHandle", code)
	}
	return nil
}

func (a *Adapter) SchemeName() string    { return a.backend.GetSchemeName(a.engine) }
func (a *Adapter) SecurityName() string  { return a.backend.GetSecurityName(a.engine) }
func (a *Adapter) ExtraDescription() string { return a.backend.GetExtraDescription(a.engine) }
