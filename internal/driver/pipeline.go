// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements the category drivers of spec.md §4.6 (C6):
// Latency and Offline share the same pipeline shape and differ only in
// what constitutes one workload unit and when to stop.
package driver

import (
	"time"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/harnesslog"
	"github.com/hebench/harness/internal/partialbench"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/workload"
)

// maskBit reports whether position's bit is set in mask, per spec.md §4.6.1
// ("a buffer goes to encrypt iff the corresponding bit is set").
func maskBit(mask uint32, position int) bool {
	if position < 0 || position >= 32 {
		return false // spec.md §9 (iii): positions beyond 32 bits are ignored
	}
	return mask&(1<<uint(position)) != 0
}

// timed runs step, emits a report.Event labeled name with iterations, and
// returns step's error. CPU time is reported equal to wall time: the
// pipeline calls cross an opaque backend ABI boundary, so there is no
// portable in-process way to attribute CPU separately from wall time
// without assuming the backend's own threading model. warmup marks the
// event as an untimed Latency warmup pass (spec.md §4.6.2) so report
// writers can exclude it from measured-performance statistics.
func timed(sink report.Sink, ids *report.EventIDAllocator, name string, iterations uint64, warmup bool, step func() error) error {
	start := time.Now()
	err := step()
	wall := time.Since(start)
	sink.AddEvent(report.Event{
		ID:         ids.Next(),
		Label:      name,
		Wall:       wall,
		CPU:        wall,
		Iterations: iterations,
		Warmup:     warmup,
	})
	harnesslog.TraceEvent(name, wall.Nanoseconds(), wall.Nanoseconds(), int(iterations))
	return err
}

// runPipelineUnit drives one pass of encode->encrypt->load->operate->store
// ->decrypt->decode over inputs, per spec.md §4.6.1. resultIterations is
// the value recorded on the operate event (1 for Latency, the full result
// cardinality for Offline). warmup marks every event this pass emits as an
// untimed Latency warmup pass (always false for Offline, which has none).
func runPipelineUnit(pb *partialbench.PartialBenchmark, desc workload.Descriptor, inputs []abi.PositionedBuffers, sink report.Sink, ids *report.EventIDAllocator, resultIterations uint64, warmup bool) (abi.PositionedBuffers, error) {
	if err := pb.CheckReady(); err != nil {
		return abi.PositionedBuffers{}, err
	}
	adapter := pb.Adapter()
	bh := pb.BenchHandle()

	anyCipher := false
	encodedByPos := make([]abi.PositionedHandles, len(inputs))
	for i, in := range inputs {
		var enc abi.PositionedHandles
		if err := timed(sink, ids, "encode", 1, warmup, func() error {
			var err error
			enc, err = adapter.Encode(bh, in)
			return err
		}); err != nil {
			return abi.PositionedBuffers{}, err
		}
		if maskBit(desc.CipherParamMask, in.Position) {
			anyCipher = true
			if err := timed(sink, ids, "encrypt", 1, warmup, func() error {
				var err error
				enc, err = adapter.Encrypt(bh, enc)
				return err
			}); err != nil {
				return abi.PositionedBuffers{}, err
			}
		}
		encodedByPos[i] = enc
	}

	var loaded []abi.PositionedHandles
	if err := timed(sink, ids, "load", 1, warmup, func() error {
		var err error
		loaded, err = adapter.Load(bh, encodedByPos)
		return err
	}); err != nil {
		return abi.PositionedBuffers{}, err
	}
	destroyAll(adapter, bh, encodedByPos, loaded...)

	var result abi.PositionedHandles
	if err := timed(sink, ids, "operate", resultIterations, warmup, func() error {
		var err error
		result, err = adapter.Operate(bh, loaded)
		return err
	}); err != nil {
		return abi.PositionedBuffers{}, err
	}
	destroyAll(adapter, bh, loaded, result)

	var stored abi.PositionedHandles
	if err := timed(sink, ids, "store", 1, warmup, func() error {
		var err error
		stored, err = adapter.Store(bh, result)
		return err
	}); err != nil {
		return abi.PositionedBuffers{}, err
	}
	destroyAll(adapter, bh, []abi.PositionedHandles{result}, stored)

	// The result is ciphertext iff any operand was (spec.md §9 (iii) treats
	// the mask's unused bits as ignored; if no input position was encrypted,
	// the result never entered ciphertext form).
	if anyCipher {
		if err := timed(sink, ids, "decrypt", 1, warmup, func() error {
			var err error
			stored, err = adapter.Decrypt(bh, stored)
			return err
		}); err != nil {
			return abi.PositionedBuffers{}, err
		}
	}

	var decoded abi.PositionedBuffers
	if err := timed(sink, ids, "decode", 1, warmup, func() error {
		var err error
		decoded, err = adapter.Decode(bh, stored)
		return err
	}); err != nil {
		return abi.PositionedBuffers{}, err
	}
	destroyAll(adapter, bh, []abi.PositionedHandles{stored})

	return decoded, nil
}

// destroyAll best-effort destroys every handle in phs, except those the next
// pipeline stage handed back unchanged in next (a backend whose stage is a
// pass-through returns its input handles); cleanup failures are not
// propagated as benchmark failures since the data has already been consumed
// by the next pipeline stage.
func destroyAll(adapter *abi.Adapter, bh abi.BenchHandle, phs []abi.PositionedHandles, next ...abi.PositionedHandles) {
	live := make(map[uintptr]bool)
	for _, ph := range next {
		for _, h := range ph.Handles {
			live[h.Raw()] = true
		}
	}
	for _, ph := range phs {
		for _, h := range ph.Handles {
			if !live[h.Raw()] {
				adapter.DestroyHandle(bh, h)
			}
		}
	}
}
