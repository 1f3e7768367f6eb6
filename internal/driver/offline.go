// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/databuf"
	"github.com/hebench/harness/internal/generators"
	"github.com/hebench/harness/internal/partialbench"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/validator"
	"github.com/hebench/harness/internal/workload"
)

// Offline runs the pipeline exactly once, over the entire input batch, per
// spec.md §4.6.3: operate's iterations field records the full result
// cardinality for throughput computation.
type Offline struct{}

func (Offline) Category() workload.Category { return workload.Offline }

func (Offline) Run(pb *partialbench.PartialBenchmark, desc workload.Descriptor, data *generators.GeneratedData, cfg *config.Config, sink report.Sink) error {
	inputs := buildInputs(data, false)
	ids := report.NewEventIDAllocator(report.OfflineEventOffset)

	decoded, err := runPipelineUnit(pb, desc, inputs, sink, ids, uint64(data.Space.Cardinality()), false)
	if err != nil {
		return err
	}

	actual := &databuf.DataPack{
		ParameterPosition: decoded.Position,
		Kind:              databuf.ResultPack,
		Buffers:           decoded.Buffers,
	}
	return validator.Validate(data.Space, data.DataType, cfg.Tolerances, data.ElemsPerResult, data.ExpectedPack, actual)
}
