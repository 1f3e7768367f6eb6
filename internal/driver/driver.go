// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/generators"
	"github.com/hebench/harness/internal/partialbench"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/workload"
)

// Driver runs one PartialBenchmark's pipeline to completion, emitting
// timing events to sink and returning the validator's verdict.
type Driver interface {
	Category() workload.Category
	Run(pb *partialbench.PartialBenchmark, desc workload.Descriptor, data *generators.GeneratedData, cfg *config.Config, sink report.Sink) error
}

// ForCategory returns the driver for a descriptor's category.
func ForCategory(c workload.Category) Driver {
	if c == workload.Latency {
		return Latency{}
	}
	return Offline{}
}
