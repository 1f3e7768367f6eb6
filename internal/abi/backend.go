// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abi

import (
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/workload"
)

// PositionedBuffers carries cleartext NativeDataBuffers for one op
// parameter (or result) position, as exchanged at the encode/decode edge
// of the pipeline.
type PositionedBuffers struct {
	Position int
	Buffers  []databuf.NativeDataBuffer
}

// PositionedHandles carries one backend-side handle per sample at a given
// parameter (or result) position, threaded through encrypt/load/operate/
// store/decrypt.
type PositionedHandles struct {
	Position int
	Handles  []Handle
}

// BackendConfig is what init() receives: just enough for a backend to size
// its own resources. The harness's own Config (internal/config) is not
// passed through verbatim since most of it (tolerances, sample sizes) is
// harness-internal.
type BackendConfig struct {
	RandomSeed uint64
}

// Backend is the function table a loaded backend shared library exposes
// (spec.md §6). Every method returns a raw int32 status code, exactly as
// the C ABI does; Adapter is the only caller, and it is responsible for
// turning a nonzero code into a *herr.BackendError. The dynamic loading
// that produces a Backend value is out of scope for this harness (spec.md
// §1); tests substitute an in-memory fake.
type Backend interface {
	Init(cfg BackendConfig) (EngineHandle, int32)
	Destroy(e EngineHandle) int32

	SubscribeBenchmarks(e EngineHandle) ([]BenchmarkHandle, int32)
	Describe(e EngineHandle, b BenchmarkHandle) (workload.Descriptor, int, int32)
	InitBenchmark(e EngineHandle, b BenchmarkHandle, params []workload.Param) (BenchHandle, int32)

	Encode(b BenchHandle, in PositionedBuffers) (PositionedHandles, int32)
	Encrypt(b BenchHandle, in PositionedHandles) (PositionedHandles, int32)
	Load(b BenchHandle, in []PositionedHandles) ([]PositionedHandles, int32)
	Operate(b BenchHandle, in []PositionedHandles) (PositionedHandles, int32)
	Store(b BenchHandle, in PositionedHandles) (PositionedHandles, int32)
	Decrypt(b BenchHandle, in PositionedHandles) (PositionedHandles, int32)
	Decode(b BenchHandle, in PositionedHandles) (PositionedBuffers, int32)

	DestroyHandle(b BenchHandle, h Handle) int32

	GetSchemeName(e EngineHandle) string
	GetSecurityName(e EngineHandle) string
	GetExtraDescription(e EngineHandle) string
	GetLastErrorDescription(e EngineHandle) string
}
