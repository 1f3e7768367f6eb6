// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/engine"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/workload"
)

// fakeEltwiseBackend subscribes a single EltwiseAdd/Offline benchmark and
// actually computes the vector sum, so Engine.Run exercises subscribe ->
// describe -> match -> drive -> validate end to end against a real (if
// tiny) result instead of a stub.
type fakeEltwiseBackend struct {
	nextHandle uintptr
	registry   map[uintptr][]byte
}

func newFakeEltwiseBackend() *fakeEltwiseBackend {
	return &fakeEltwiseBackend{nextHandle: 1, registry: make(map[uintptr][]byte)}
}

func (f *fakeEltwiseBackend) store(b []byte) abi.Handle {
	id := f.nextHandle
	f.nextHandle++
	cp := make([]byte, len(b))
	copy(cp, b)
	f.registry[id] = cp
	return abi.NewHandle(id)
}

func (f *fakeEltwiseBackend) Init(cfg abi.BackendConfig) (abi.EngineHandle, int32) {
	return abi.EngineHandle{Handle: abi.NewHandle(1)}, 0
}
func (f *fakeEltwiseBackend) Destroy(e abi.EngineHandle) int32 { return 0 }

func (f *fakeEltwiseBackend) SubscribeBenchmarks(e abi.EngineHandle) ([]abi.BenchmarkHandle, int32) {
	return []abi.BenchmarkHandle{{Handle: abi.NewHandle(2)}}, 0
}

func (f *fakeEltwiseBackend) Describe(e abi.EngineHandle, b abi.BenchmarkHandle) (workload.Descriptor, int, int32) {
	desc := workload.Descriptor{
		Workload: workload.EltwiseAdd,
		Category: workload.Offline,
		DataType: workload.Uint64,
		Scheme:   "fake",
		Security: "none",
	}
	desc.CatParams.Offline.DataCount[0] = 2
	desc.CatParams.Offline.DataCount[1] = 3
	return desc, 1, 0
}

func (f *fakeEltwiseBackend) InitBenchmark(e abi.EngineHandle, b abi.BenchmarkHandle, params []workload.Param) (abi.BenchHandle, int32) {
	return abi.BenchHandle{Handle: abi.NewHandle(3)}, 0
}

func (f *fakeEltwiseBackend) Encode(b abi.BenchHandle, in abi.PositionedBuffers) (abi.PositionedHandles, int32) {
	handles := make([]abi.Handle, len(in.Buffers))
	for i, buf := range in.Buffers {
		handles[i] = f.store(buf.Raw)
	}
	return abi.PositionedHandles{Position: in.Position, Handles: handles}, 0
}
func (f *fakeEltwiseBackend) Encrypt(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedHandles, int32) {
	return in, 0
}
func (f *fakeEltwiseBackend) Load(b abi.BenchHandle, in []abi.PositionedHandles) ([]abi.PositionedHandles, int32) {
	return in, 0
}

func (f *fakeEltwiseBackend) Operate(b abi.BenchHandle, in []abi.PositionedHandles) (abi.PositionedHandles, int32) {
	var a, c []abi.Handle
	for _, ph := range in {
		if ph.Position == 0 {
			a = ph.Handles
		} else {
			c = ph.Handles
		}
	}
	m0, m1 := len(a), len(c)
	out := make([]abi.Handle, m0*m1)
	for flat := 0; flat < m0*m1; flat++ {
		i0 := flat % m0
		i1 := (flat / m0) % m1
		av := f.registry[a[i0].Raw()]
		bv := f.registry[c[i1].Raw()]
		sum := make([]byte, len(av))
		for k := 0; k < len(av)/8; k++ {
			x := binary.LittleEndian.Uint64(av[k*8 : k*8+8])
			y := binary.LittleEndian.Uint64(bv[k*8 : k*8+8])
			binary.LittleEndian.PutUint64(sum[k*8:k*8+8], x+y)
		}
		out[flat] = f.store(sum)
	}
	return abi.PositionedHandles{Position: 0, Handles: out}, 0
}
func (f *fakeEltwiseBackend) Store(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedHandles, int32) {
	return in, 0
}
func (f *fakeEltwiseBackend) Decrypt(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedHandles, int32) {
	return in, 0
}
func (f *fakeEltwiseBackend) Decode(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedBuffers, int32) {
	bufs := make([]databuf.NativeDataBuffer, len(in.Handles))
	for i, h := range in.Handles {
		raw := f.registry[h.Raw()]
		bufs[i] = databuf.NativeDataBuffer{Raw: raw, Size: len(raw)}
	}
	return abi.PositionedBuffers{Position: in.Position, Buffers: bufs}, 0
}
func (f *fakeEltwiseBackend) DestroyHandle(b abi.BenchHandle, h abi.Handle) int32 {
	delete(f.registry, h.Raw())
	return 0
}

func (f *fakeEltwiseBackend) GetSchemeName(e abi.EngineHandle) string           { return "fake" }
func (f *fakeEltwiseBackend) GetSecurityName(e abi.EngineHandle) string        { return "none" }
func (f *fakeEltwiseBackend) GetExtraDescription(e abi.EngineHandle) string    { return "" }
func (f *fakeEltwiseBackend) GetLastErrorDescription(e abi.EngineHandle) string { return "" }

type discardSink struct{}

func (discardSink) AddEvent(report.Event)     {}
func (discardSink) AddHeader(string)          {}
func (discardSink) Finalize(string) error     { return nil }

func TestEngineRunEndToEndPasses(t *testing.T) {
	cfg := config.Default()
	eng, err := engine.New(newFakeEltwiseBackend(), cfg)
	require.NoError(t, err)
	defer eng.Close()

	summary, err := eng.Run(context.Background(), cfg, func(string) report.Sink { return discardSink{} })
	require.NoError(t, err)
	require.Equal(t, 1, summary.Passed)
	require.False(t, summary.AnyFailed())
}

func TestEngineRunRespectsCancellation(t *testing.T) {
	cfg := config.Default()
	eng, err := engine.New(newFakeEltwiseBackend(), cfg)
	require.NoError(t, err)
	defer eng.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = eng.Run(ctx, cfg, func(string) report.Sink { return discardSink{} })
	require.Error(t, err)
}
