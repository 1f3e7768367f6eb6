// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hebench runs the HE-backend benchmark harness described in
// spec.md: it loads a backend, enumerates its benchmarks, drives each
// through its category pipeline, and writes a report per benchmark.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/config"
	"github.com/hebench/harness/internal/engine"
	"github.com/hebench/harness/internal/harnesslog"
	"github.com/hebench/harness/internal/herr"
	"github.com/hebench/harness/internal/report"
)

// Exit codes per spec.md §6.
const (
	exitOK             = 0
	exitValidationFail = 1
	exitBackendError   = 2
	exitConfigError    = 3
	exitCancelled      = 130
)

var (
	flagBackendLibPath string
	flagConfigFile     string
	flagDump           bool
	flagRandomSeed     uint64
	flagSeedSet        bool
	flagTrace          bool
)

func main() {
	root := &cobra.Command{
		Use:   "hebench",
		Short: "Benchmark harness for homomorphic-encryption backends",
		Long: `hebench drives a homomorphic-encryption backend through its
benchmark pipeline (encode, encrypt, load, operate, store, decrypt,
decode), validates numerical results against cleartext ground truth, and
writes a timing/accuracy report per benchmark.` + config.ConfigHelp,
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVar(&flagBackendLibPath, "backend_lib_path", "", "path to the backend shared library")
	root.Flags().StringVar(&flagConfigFile, "config_file", "", "path to a YAML config file")
	root.Flags().BoolVar(&flagDump, "dump", false, "emit the default YAML config and exit")
	root.Flags().Uint64Var(&flagRandomSeed, "random_seed", 0, "override the configured random seed")
	root.Flags().BoolVarP(&flagTrace, "trace", "v", false, "trace every pipeline step to stdout")

	root.PreRun = func(cmd *cobra.Command, args []string) {
		flagSeedSet = cmd.Flags().Changed("random_seed")
	}

	if err := root.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagDump {
		out, err := config.DumpDefault()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	harnesslog.SetTrace(flagTrace)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend, err := loadBackend(cfg.BackendLibPath)
	if err != nil {
		return err
	}

	summary, err := run(backend, cfg)
	if err != nil {
		return err
	}

	harnesslog.Printf("ran benchmarks: %d passed, %d validation failures, %d backend failures, %d unmatched",
		summary.Passed, summary.ValidationFailed, summary.BackendFailed, summary.Unmatched)
	if summary.ValidationFailed > 0 {
		return &herr.ValidationError{}
	}
	if summary.BackendFailed > 0 {
		return &herr.BackendError{Op: "run", LastErr: fmt.Sprintf("%d benchmark(s) failed with a backend error", summary.BackendFailed)}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfigFile != "" {
		cfg, err = config.Load(flagConfigFile)
	} else {
		cfg = config.Default()
		if flagBackendLibPath != "" {
			cfg.BackendLibPath = flagBackendLibPath
		}
	}
	if err != nil {
		return nil, err
	}
	if flagBackendLibPath != "" {
		cfg.BackendLibPath = flagBackendLibPath
	}
	if cfg.BackendLibPath == "" {
		return nil, &herr.ConfigError{Msg: "backend_lib_path is required (set --backend_lib_path or config_file's backend_lib_path)"}
	}
	if flagSeedSet {
		cfg.ApplySeed(flagRandomSeed)
	}
	return cfg, nil
}

// run wires the SIGINT-aware engine run: signal.NotifyContext cancels the
// context on SIGINT, and the (single, sequential) benchmark-driving
// goroutine runs in an errgroup.Group derived from that context, so
// cancellation propagates via context without the core engine itself
// becoming concurrent (spec.md §5).
func run(backend abi.Backend, cfg *config.Config) (*engine.RunSummary, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := engine.New(backend, cfg)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	g, gctx := errgroup.WithContext(ctx)
	var summary *engine.RunSummary
	g.Go(func() error {
		s, err := eng.Run(gctx, cfg, func(path string) report.Sink { return report.NewCSVSink() })
		summary = s
		return err
	})
	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// exitCodeFor maps a terminal error to spec.md §6's exit codes. Every
// branch prints the "[FAILED] <canonical-path>: <kind>: <message>" line
// spec.md §7 requires before returning; a run that never reaches a sealed
// token has no benchmark directory yet, so "<cli>" stands in for the
// canonical path.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	if k, ok := err.(herr.Kinder); ok {
		switch k.Kind() {
		case herr.KindValidation:
			harnesslog.Fail("<cli>", err)
			return exitValidationFail
		case herr.KindBackend:
			harnesslog.Fail("<cli>", err)
			return exitBackendError
		case herr.KindConfig, herr.KindResource:
			harnesslog.Fail("<cli>", err)
			return exitConfigError
		case herr.KindCancelled:
			harnesslog.Fail("<cli>", err)
			return exitCancelled
		}
	}
	harnesslog.Fail("<cli>", err)
	return exitConfigError
}
