// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/require"

	"github.com/hebench/harness/internal/report"
)

func TestAttachAndReadProfileRoundTrip(t *testing.T) {
	p := &profile.Profile{
		TimeNanos:     time.Now().UnixNano(),
		DurationNanos: int64(time.Millisecond),
		SampleType:    []*profile.ValueType{{Type: "cpu", Unit: "nanoseconds"}},
		PeriodType:    &profile.ValueType{Type: "cpu", Unit: "nanoseconds"},
		Period:        1,
	}

	path := filepath.Join(t.TempDir(), "profile.pb.gz")
	require.NoError(t, report.AttachProfile(path, p))

	readBack, err := report.ReadProfile(path)
	require.NoError(t, err)
	require.Equal(t, p.SampleType[0].Type, readBack.SampleType[0].Type)
}
