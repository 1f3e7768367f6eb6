// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements spec.md §4.8 (C8): it owns one EngineHandle for
// the process lifetime, enumerates the backend's benchmarks, matches them
// against the harness's catalog, and drives each through the right
// category driver.
package engine

import (
	"context"
	"math/rand"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/driver"
	"github.com/hebench/harness/internal/generators"
	"github.com/hebench/harness/internal/harnesslog"
	"github.com/hebench/harness/internal/herr"
	"github.com/hebench/harness/internal/partialbench"
	"github.com/hebench/harness/internal/report"
	"github.com/hebench/harness/internal/token"
	"github.com/hebench/harness/internal/workload"
)

// RunSummary tallies how every enumerated benchmark resolved, so the CLI
// can map it to spec.md §6's exit codes without the engine itself knowing
// about processes or exit statuses.
type RunSummary struct {
	Passed           int
	ValidationFailed int
	BackendFailed    int
	Unmatched        int
}

// AnyFailed reports whether summary should drive a nonzero exit.
func (s *RunSummary) AnyFailed() bool {
	return s.ValidationFailed > 0 || s.BackendFailed > 0
}

// SinkFactory builds a fresh report.Sink for one benchmark's canonical
// output path. The engine never opens a file itself (spec.md §4.9).
type SinkFactory func(canonicalPath string) report.Sink

// Engine holds the single backend adapter and matcher set for a process
// run (spec.md §5: "Holds exactly one EngineHandle for the process
// lifetime").
type Engine struct {
	adapter  *abi.Adapter
	matchers []*token.Matcher
}

// New initializes the backend and registers one matcher per catalog
// workload (spec.md §4.8).
func New(backend abi.Backend, cfg *config.Config) (*Engine, error) {
	adapter, err := abi.NewAdapter(backend, abi.BackendConfig{RandomSeed: cfg.RandomSeed})
	if err != nil {
		return nil, err
	}
	return &Engine{
		adapter:  adapter,
		matchers: token.DefaultMatchers(),
	}, nil
}

// Close tears down the backend's EngineHandle.
func (e *Engine) Close() error { return e.adapter.Close() }

// Run enumerates the backend's benchmarks, matches and drives each one,
// and returns a RunSummary. ctx is checked only between benchmarks: a SIGINT
// observed by the caller stops the loop before the next benchmark starts,
// and the in-flight benchmark is not interrupted; it runs to completion.
func (e *Engine) Run(ctx context.Context, cfg *config.Config, sinkFor SinkFactory) (*RunSummary, error) {
	handles, err := e.adapter.SubscribeBenchmarks()
	if err != nil {
		return nil, err
	}

	rng := generators.NewRNG(cfg.RandomSeed)
	gens := generators.ByWorkload()
	summary := &RunSummary{}

	for _, bh := range handles {
		if ctx.Err() != nil {
			return summary, &herr.Cancelled{}
		}

		desc, paramCount, err := e.adapter.Describe(bh)
		if err != nil {
			summary.BackendFailed++
			harnesslog.Fail("<describe>", err)
			continue
		}

		params := defaultWorkloadParams(desc.Workload)
		if len(params) != paramCount {
			summary.Unmatched++
			continue
		}

		matched := false
		for _, m := range e.matchers {
			name, ok, _ := m.Match(desc, params)
			if !ok {
				continue
			}
			matched = true

			gen, known := gens[desc.Workload]
			if !known {
				summary.Unmatched++
				break
			}

			tok := token.Seal(m, name, bh, desc, params, cfg)
			runErr := e.runBenchmark(m, tok, desc, params, gen, cfg, rng, sinkFor)
			switch runErr.(type) {
			case nil:
				summary.Passed++
			case *herr.ValidationError:
				summary.ValidationFailed++
				harnesslog.Fail(tok.OutputPath(), runErr)
			case *herr.BackendError:
				summary.BackendFailed++
				harnesslog.Fail(tok.OutputPath(), runErr)
			default:
				return summary, runErr
			}
			break
		}
		if !matched {
			summary.Unmatched++
		}
	}
	return summary, nil
}

// runBenchmark drives a single matched benchmark from token to validated
// result, constructing its PartialBenchmark, generating its data, and
// handing both to the category driver (spec.md §4.8 step 3).
func (e *Engine) runBenchmark(m *token.Matcher, tok *token.Token, desc workload.Descriptor, params []workload.Param, gen generators.Generator, cfg *config.Config, rng *rand.Rand, sinkFor SinkFactory) error {
	pb, err := partialbench.New(e.adapter, m.Identity(), tok)
	if err != nil {
		return err
	}
	defer pb.Destroy()

	if err := pb.InitBackend(); err != nil {
		return err
	}
	if err := pb.PostInit(); err != nil {
		return err
	}

	var batchSizes []int
	if desc.Category == workload.Latency {
		batchSizes = generators.LatencyBatchSizes(desc.Workload)
	} else {
		batchSizes = generators.ResolveBatchSizes(desc.Workload, desc, cfg)
	}
	data, err := gen.Generate(desc, params, batchSizes, cfg, rng)
	if err != nil {
		return err
	}

	sink := sinkFor(tok.OutputPath())
	sink.AddHeader(tok.Header())
	runErr := driver.ForCategory(desc.Category).Run(pb, desc, data, cfg, sink)
	if finalErr := sink.Finalize(tok.OutputPath()); finalErr != nil && runErr == nil {
		return finalErr
	}
	return runErr
}
