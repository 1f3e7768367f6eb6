// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/driver"
	"github.com/hebench/harness/internal/generators"
	"github.com/hebench/harness/internal/partialbench"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/token"
	"github.com/hebench/harness/internal/workload"
)

// plaintextEltwiseAddBackend is a fully plaintext (CipherParamMask == 0)
// backend that actually performs EltwiseAdd: encode/load/store/decode are
// identity copies of the raw bytes, and operate computes the real
// uint64 vector sum across the sample space so the validator exercises a
// genuine pass/fail path instead of a stub.
type plaintextEltwiseAddBackend struct {
	nextHandle uintptr
	registry   map[uintptr][]byte
}

func newPlaintextEltwiseAddBackend() *plaintextEltwiseAddBackend {
	return &plaintextEltwiseAddBackend{nextHandle: 1, registry: make(map[uintptr][]byte)}
}

func (f *plaintextEltwiseAddBackend) store(b []byte) abi.Handle {
	id := f.nextHandle
	f.nextHandle++
	cp := make([]byte, len(b))
	copy(cp, b)
	f.registry[id] = cp
	return abi.NewHandle(id)
}

func (f *plaintextEltwiseAddBackend) Init(cfg abi.BackendConfig) (abi.EngineHandle, int32) {
	return abi.EngineHandle{Handle: abi.NewHandle(1)}, 0
}
func (f *plaintextEltwiseAddBackend) Destroy(e abi.EngineHandle) int32 { return 0 }
func (f *plaintextEltwiseAddBackend) SubscribeBenchmarks(e abi.EngineHandle) ([]abi.BenchmarkHandle, int32) {
	return nil, 0
}
func (f *plaintextEltwiseAddBackend) Describe(e abi.EngineHandle, b abi.BenchmarkHandle) (workload.Descriptor, int, int32) {
	return workload.Descriptor{}, 0, 0
}
func (f *plaintextEltwiseAddBackend) InitBenchmark(e abi.EngineHandle, b abi.BenchmarkHandle, params []workload.Param) (abi.BenchHandle, int32) {
	return abi.BenchHandle{Handle: abi.NewHandle(2)}, 0
}

func (f *plaintextEltwiseAddBackend) Encode(b abi.BenchHandle, in abi.PositionedBuffers) (abi.PositionedHandles, int32) {
	handles := make([]abi.Handle, len(in.Buffers))
	for i, buf := range in.Buffers {
		handles[i] = f.store(buf.Raw)
	}
	return abi.PositionedHandles{Position: in.Position, Handles: handles}, 0
}
func (f *plaintextEltwiseAddBackend) Encrypt(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedHandles, int32) {
	return in, 0
}
func (f *plaintextEltwiseAddBackend) Load(b abi.BenchHandle, in []abi.PositionedHandles) ([]abi.PositionedHandles, int32) {
	return in, 0
}

func (f *plaintextEltwiseAddBackend) Operate(b abi.BenchHandle, in []abi.PositionedHandles) (abi.PositionedHandles, int32) {
	var a, c []abi.Handle
	for _, ph := range in {
		if ph.Position == 0 {
			a = ph.Handles
		} else {
			c = ph.Handles
		}
	}
	m0, m1 := len(a), len(c)
	card := m0 * m1
	out := make([]abi.Handle, card)
	for flat := 0; flat < card; flat++ {
		i0 := flat % m0
		i1 := (flat / m0) % m1
		av := f.registry[a[i0].Raw()]
		bv := f.registry[c[i1].Raw()]
		vecLen := len(av) / 8
		sum := make([]byte, len(av))
		for k := 0; k < vecLen; k++ {
			x := binary.LittleEndian.Uint64(av[k*8 : k*8+8])
			y := binary.LittleEndian.Uint64(bv[k*8 : k*8+8])
			binary.LittleEndian.PutUint64(sum[k*8:k*8+8], x+y)
		}
		out[flat] = f.store(sum)
	}
	return abi.PositionedHandles{Position: 0, Handles: out}, 0
}
func (f *plaintextEltwiseAddBackend) Store(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedHandles, int32) {
	return in, 0
}
func (f *plaintextEltwiseAddBackend) Decrypt(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedHandles, int32) {
	return in, 0
}
func (f *plaintextEltwiseAddBackend) Decode(b abi.BenchHandle, in abi.PositionedHandles) (abi.PositionedBuffers, int32) {
	bufs := make([]databuf.NativeDataBuffer, len(in.Handles))
	for i, h := range in.Handles {
		raw := f.registry[h.Raw()]
		bufs[i] = databuf.NativeDataBuffer{Raw: raw, Size: len(raw)}
	}
	return abi.PositionedBuffers{Position: in.Position, Buffers: bufs}, 0
}

func (f *plaintextEltwiseAddBackend) DestroyHandle(b abi.BenchHandle, h abi.Handle) int32 {
	delete(f.registry, h.Raw())
	return 0
}

func (f *plaintextEltwiseAddBackend) GetSchemeName(e abi.EngineHandle) string           { return "plaintext" }
func (f *plaintextEltwiseAddBackend) GetSecurityName(e abi.EngineHandle) string         { return "none" }
func (f *plaintextEltwiseAddBackend) GetExtraDescription(e abi.EngineHandle) string     { return "" }
func (f *plaintextEltwiseAddBackend) GetLastErrorDescription(e abi.EngineHandle) string { return "" }

type recordingSink struct {
	header string
	events []report.Event
}

func (s *recordingSink) AddHeader(text string)   { s.header = text }
func (s *recordingSink) AddEvent(e report.Event) { s.events = append(s.events, e) }
func (s *recordingSink) Finalize(path string) error { return nil }

func newReadyPartialBenchmark(t *testing.T, adapter *abi.Adapter, desc workload.Descriptor, params []workload.Param) *partialbench.PartialBenchmark {
	t.Helper()
	m := token.NewMatcher(workload.EltwiseAdd, nil)
	tok := token.Seal(m, "EltwiseAdd", abi.BenchmarkHandle{}, desc, params, config.Default())
	pb, err := partialbench.New(adapter, m.Identity(), tok)
	require.NoError(t, err)
	require.NoError(t, pb.InitBackend())
	require.NoError(t, pb.PostInit())
	return pb
}

// TestOfflineRunComputesFullBatchResult is scenario S4: for batch sizes
// (2, 3), the operate event's Iterations equals the sample space's
// cardinality, 6.
func TestOfflineRunComputesFullBatchResult(t *testing.T) {
	adapter, err := abi.NewAdapter(newPlaintextEltwiseAddBackend(), abi.BackendConfig{})
	require.NoError(t, err)

	desc := workload.Descriptor{Workload: workload.EltwiseAdd, Category: workload.Offline, DataType: workload.Uint64}
	params := []workload.Param{workload.U64(4)}
	pb := newReadyPartialBenchmark(t, adapter, desc, params)

	gen := generators.EltwiseAdd()
	rng := generators.NewRNG(1)
	data, err := gen.Generate(desc, params, []int{2, 3}, config.Default(), rng)
	require.NoError(t, err)
	require.Equal(t, 6, data.Space.Cardinality())

	sink := &recordingSink{}
	err = driver.Offline{}.Run(pb, desc, data, config.Default(), sink)
	require.NoError(t, err)

	var operateEvent *report.Event
	for i := range sink.events {
		if sink.events[i].Label == "operate" {
			operateEvent = &sink.events[i]
		}
	}
	require.NotNil(t, operateEvent)
	require.Equal(t, uint64(6), operateEvent.Iterations)
}

// TestLatencyRunEmitsWarmupThenMeasuredEvents is scenario S5: warmup
// iterations are emitted first, then at least two measured iterations run
// until the configured time floor is reached.
func TestLatencyRunEmitsWarmupThenMeasuredEvents(t *testing.T) {
	adapter, err := abi.NewAdapter(newPlaintextEltwiseAddBackend(), abi.BackendConfig{})
	require.NoError(t, err)

	desc := workload.Descriptor{
		Workload: workload.EltwiseAdd, Category: workload.Latency, DataType: workload.Uint64,
		CatParams: workload.CatParams{Latency: workload.LatencyParams{WarmupIterations: 3, MinTestTimeMs: 1}},
	}
	params := []workload.Param{workload.U64(4)}
	pb := newReadyPartialBenchmark(t, adapter, desc, params)

	gen := generators.EltwiseAdd()
	rng := generators.NewRNG(1)
	data, err := gen.Generate(desc, params, generators.LatencyBatchSizes(workload.EltwiseAdd), config.Default(), rng)
	require.NoError(t, err)

	sink := &recordingSink{}
	start := time.Now()
	err = driver.Latency{}.Run(pb, desc, data, config.Default(), sink)
	require.NoError(t, err)
	require.Greater(t, time.Since(start), time.Duration(0))

	operateCount := 0
	for _, e := range sink.events {
		if e.Label == "operate" {
			operateCount++
		}
	}
	require.GreaterOrEqual(t, operateCount, 3+2, "3 warmup passes plus at least 2 measured passes")
}
