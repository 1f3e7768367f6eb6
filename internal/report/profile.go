// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"os"

	"github.com/google/pprof/profile"
)

// AttachProfile writes a pprof CPU profile covering a benchmark's measured
// region to the file at path (e.g. <report dir>/profile.pb.gz), replacing
// any file already there, so a Sink implementation can optionally
// carry low-level profiling data alongside report.csv/summary.csv without
// the core depending on any particular profiler. Grounded directly on the
// teacher's sweet/common/profile.ReadPprof/WritePprof pair.
func AttachProfile(path string, p *profile.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := p.Write(f); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	return nil
}

// ReadProfile reads back a profile previously written by AttachProfile,
// for tests and for merging multiple benchmarks' profiles.
func ReadProfile(path string) (*profile.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return profile.Parse(f)
}
