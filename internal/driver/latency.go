// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"time"

	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/generators"
	"github.com/hebench/harness/internal/partialbench"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/validator"
	"github.com/hebench/harness/internal/workload"
)

// Latency runs the full pipeline, once per iteration, on a single sample
// per parameter, per spec.md §4.6.2.
type Latency struct{}

func (Latency) Category() workload.Category { return workload.Latency }

// Run executes warmup_iterations untimed passes followed by measured
// passes until both iteration_count >= 2 and elapsed_wall_ms >= the larger
// of the descriptor's min_test_time_ms and the config floor. Validation
// runs once, against the final measured iteration's result.
func (Latency) Run(pb *partialbench.PartialBenchmark, desc workload.Descriptor, data *generators.GeneratedData, cfg *config.Config, sink report.Sink) error {
	inputs := buildInputs(data, true)
	ids := report.NewEventIDAllocator(report.LatencyEventOffset)

	for i := uint64(0); i < desc.CatParams.Latency.WarmupIterations; i++ {
		if _, err := runPipelineUnit(pb, desc, inputs, sink, ids, 1, true); err != nil {
			return err
		}
	}

	floor := desc.CatParams.Latency.MinTestTimeMs
	if cfg.MinTestTimeMs > floor {
		floor = cfg.MinTestTimeMs
	}

	var (
		iterationCount uint64
		elapsed        time.Duration
		lastResult     *databuf.DataPack
	)
	for iterationCount < 2 || elapsed < time.Duration(floor)*time.Millisecond {
		start := time.Now()
		decoded, err := runPipelineUnit(pb, desc, inputs, sink, ids, 1, false)
		elapsed += time.Since(start)
		if err != nil {
			return err
		}
		iterationCount++
		lastResult = &databuf.DataPack{
			ParameterPosition: decoded.Position,
			Kind:              databuf.ResultPack,
			Buffers:           decoded.Buffers,
		}
	}

	return validator.Validate(data.Space, data.DataType, cfg.Tolerances, data.ElemsPerResult, data.ExpectedPack, lastResult)
}
