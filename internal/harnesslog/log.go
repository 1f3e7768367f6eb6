// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package harnesslog provides the harness's two log streams: an activity
// log for human-facing progress messages, and an event trace for
// per-pipeline-step tracing used when -v is passed. It mirrors the shape of
// the teacher's sweet/common/log package: two independently toggled
// *log.Logger values plus small wrapper functions so call sites never touch
// the loggers directly.
package harnesslog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hebench/harness/internal/herr"

	shellquote "github.com/kballard/go-shellquote"
)

var (
	traceLog, actLog *log.Logger
	traceOn, actOn    = false, true
)

func init() {
	traceLog = log.New(os.Stdout, "[trace] ", 0)
	actLog = log.New(os.Stderr, "[hebench] ", 0)
}

// SetTrace toggles per-pipeline-step event tracing.
func SetTrace(on bool) { traceOn = on }

// SetActivity toggles the activity log (progress messages).
func SetActivity(on bool) { actOn = on }

// TraceEvent prints one pipeline step's timing when tracing is enabled.
func TraceEvent(label string, wallNs, cpuNs int64, iterations int) {
	if !traceOn {
		return
	}
	traceLog.Printf("%s wall=%s cpu=%s iterations=%d",
		shellquote.Join(label), fmtNs(wallNs), fmtNs(cpuNs), iterations)
}

func fmtNs(ns int64) string {
	return fmt.Sprintf("%dns", ns)
}

func Printf(format string, args ...interface{}) {
	if !actOn {
		return
	}
	actLog.Printf(format, args...)
}

func Print(args ...interface{}) {
	if !actOn {
		return
	}
	actLog.Print(args...)
}

// Fail prints the user-visible failure line spec.md §7 requires:
// "[FAILED] <canonical-path>: <kind>: <message>" to stderr, and writes the
// same line into the benchmark's report directory at path/failure.txt so a
// failure is discoverable from the report tree alone. If path is empty or an
// angle-bracket placeholder such as "<cli>" (no benchmark directory exists
// yet, e.g. a config error before any token was sealed), only the stderr
// line is emitted.
func Fail(path string, err error) {
	kind := "Error"
	if k, ok := err.(herr.Kinder); ok {
		kind = string(k.Kind())
	}
	line := fmt.Sprintf("[FAILED] %s: %s: %s\n", path, kind, err.Error())
	fmt.Fprint(os.Stderr, line)

	if path == "" || strings.HasPrefix(path, "<") {
		return
	}
	if mkErr := os.MkdirAll(path, 0o755); mkErr != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(path, "failure.txt"), []byte(line), 0o644)
}
