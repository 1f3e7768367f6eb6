// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harnesslog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hebench/harness/internal/harnesslog"
	"github.com/hebench/harness/internal/herr"
)

// TestFailWritesReportDirectory is spec.md §7's "writes the same into the
// benchmark's report directory" half of the failure contract.
func TestFailWritesReportDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "MatMul_2", "wp_2_3_2", "Offline", "Float32", "all_plain")
	harnesslog.Fail(dir, &herr.ValidationError{ResultIndex: 1, Expected: 1.0, Actual: 2.0})

	contents, err := os.ReadFile(filepath.Join(dir, "failure.txt"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "[FAILED] "+dir+": ValidationError:")
}

// TestFailWithEmptyPathSkipsFileWrite covers a failure observed before any
// benchmark token was sealed (e.g. a config error at startup), where no
// report directory exists yet to write into.
func TestFailWithEmptyPathSkipsFileWrite(t *testing.T) {
	require.NotPanics(t, func() {
		harnesslog.Fail("", &herr.ConfigError{Msg: "backend_lib_path is required"})
	})
}
