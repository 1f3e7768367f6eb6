// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workload

// Category is the benchmark's scheduling/timing strategy: Latency (timed,
// per-sample iteration) or Offline (single run over a full batch).
type Category int

const (
	Latency Category = iota
	Offline
)

func (c Category) String() string {
	if c == Latency {
		return "Latency"
	}
	return "Offline"
}

// LatencyParams is the cat_params payload for a Latency descriptor.
type LatencyParams struct {
	WarmupIterations uint64
	MinTestTimeMs    uint64
}

// OfflineParams is the cat_params payload for an Offline descriptor. A
// zero entry in DataCount means "use config.DefaultSampleSize" (spec.md
// §4.6.3).
type OfflineParams struct {
	DataCount [MaxOpParams]uint64
}

// CatParams is the tagged union described in spec.md §3; exactly one of
// Latency/Offline is meaningful, selected by the enclosing Descriptor's
// Category.
type CatParams struct {
	Latency LatencyParams
	Offline OfflineParams
	// Reserved preserves the source ABI's undocumented reserved segment,
	// which spec.md §9 (Open Questions) says is used verbatim in path
	// derivation without further documented semantics.
	Reserved uint64
}

// Descriptor is the backend's self-description of one benchmark variant,
// as returned by describeBenchmark (spec.md §3, §6).
type Descriptor struct {
	Workload        Name
	Category        Category
	DataType        DataType
	CipherParamMask uint32
	Scheme          string
	Security        string
	Other           string
	CatParams       CatParams
}
