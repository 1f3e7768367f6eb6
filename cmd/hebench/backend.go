// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/hebench/harness/internal/abi"
	"github.com/hebench/harness/internal/herr"
)

// loadBackend resolves backend_lib_path to a concrete abi.Backend.
// Dynamically loading a backend shared library is explicitly out of scope
// for this harness (spec.md §1: "the dynamic loading of backend shared
// libraries ... specified only by their interfaces in §6"); a deployment
// links a concrete abi.Backend implementation in at build time and
// replaces this function, the same way the teacher's own benchmarks are
// each a separate Go module invoked through a fixed driver interface
// rather than dynamically loaded.
var loadBackend = func(path string) (abi.Backend, error) {
	return nil, &herr.ConfigError{Msg: "no backend linked into this build; replace cmd/hebench.loadBackend with a concrete abi.Backend for " + path}
}
