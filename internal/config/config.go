// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config decodes the harness's YAML configuration file into the
// resolved runtime Config, following the ConfigFile/Config split used by
// the teacher's sweet/common/config.go: one struct mirrors the on-disk
// shape exactly (for round-tripping with --dump), the other is what the
// rest of the harness consumes.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/hebench/harness/internal/herr"

	"gopkg.in/yaml.v3"
)

// ConfigHelp documents the recognized YAML fields, printed by the CLI's
// help text the way the teacher's ConfigHelp const documents TOML fields.
const ConfigHelp = `
Recognized YAML fields:
  default_sample_size: samples to draw for a parameter with no explicit
                        batch size (u64, default 100)
  random_seed:          seed for the harness's global PRNG (u64, default:
                        current time)
  min_test_time_ms:     floor for a Latency benchmark's measured duration
                        (u64, default 0 - defer to the descriptor's value)
  tolerance_f32:        relative tolerance for float32 validation (f64,
                        default 0.01)
  tolerance_f64:        relative tolerance for float64 validation (f64,
                        default 0.01)
  backend_lib_path:     path to the backend shared library (required)
`

// fileConfig is the on-disk YAML shape.
type fileConfig struct {
	DefaultSampleSize uint64  `yaml:"default_sample_size"`
	RandomSeed        uint64  `yaml:"random_seed"`
	MinTestTimeMs     uint64  `yaml:"min_test_time_ms"`
	ToleranceF32      float64 `yaml:"tolerance_f32"`
	ToleranceF64      float64 `yaml:"tolerance_f64"`
	BackendLibPath    string  `yaml:"backend_lib_path"`
}

// Tolerances bundles the per-datatype relative-error tolerances validated
// against in internal/validator.
type Tolerances struct {
	F32Rel float64
	F64Rel float64
}

// Config is the resolved configuration handed to the engine.
type Config struct {
	DefaultSampleSize uint64
	RandomSeed        uint64
	MinTestTimeMs     uint64
	Tolerances        Tolerances
	BackendLibPath    string
}

// Default returns the configuration the harness uses when no file is given
// and no field is overridden, per spec.md §6's defaults.
func Default() *Config {
	return &Config{
		DefaultSampleSize: 100,
		RandomSeed:        uint64(time.Now().UnixNano()),
		MinTestTimeMs:     0,
		Tolerances: Tolerances{
			F32Rel: 0.01,
			F64Rel: 0.01,
		},
	}
}

// Load decodes path as YAML into a Config, filling unset fields from
// Default(). backend_lib_path is required: an empty value is a ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &herr.ConfigError{Msg: "reading config file " + path, Err: err}
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &herr.ConfigError{Msg: "parsing YAML config " + path, Err: err}
	}
	cfg := Default()
	if fc.DefaultSampleSize != 0 {
		cfg.DefaultSampleSize = fc.DefaultSampleSize
	}
	if fc.RandomSeed != 0 {
		cfg.RandomSeed = fc.RandomSeed
	}
	if fc.MinTestTimeMs != 0 {
		cfg.MinTestTimeMs = fc.MinTestTimeMs
	}
	if fc.ToleranceF32 != 0 {
		cfg.Tolerances.F32Rel = fc.ToleranceF32
	}
	if fc.ToleranceF64 != 0 {
		cfg.Tolerances.F64Rel = fc.ToleranceF64
	}
	cfg.BackendLibPath = fc.BackendLibPath
	if cfg.BackendLibPath == "" {
		return nil, &herr.ConfigError{Msg: "backend_lib_path is required"}
	}
	return cfg, nil
}

// DumpDefault marshals the default configuration as YAML, for the CLI's
// --dump flag, preceded by ConfigHelp as a block of YAML comments. The
// backend_lib_path placeholder is left for the user to fill in, mirroring
// the teacher's gen command writing a directory skeleton for the user to
// populate.
func DumpDefault() ([]byte, error) {
	d := Default()
	fc := fileConfig{
		DefaultSampleSize: d.DefaultSampleSize,
		RandomSeed:        d.RandomSeed,
		MinTestTimeMs:     d.MinTestTimeMs,
		ToleranceF32:      d.Tolerances.F32Rel,
		ToleranceF64:      d.Tolerances.F64Rel,
		BackendLibPath:    "/path/to/backend.so",
	}
	out, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, err
	}
	var help strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(ConfigHelp), "\n") {
		help.WriteString("# " + line + "\n")
	}
	return append([]byte(help.String()), out...), nil
}

// ApplySeed overrides the random seed, for the CLI's --random_seed flag.
func (c *Config) ApplySeed(seed uint64) {
	c.RandomSeed = seed
}
