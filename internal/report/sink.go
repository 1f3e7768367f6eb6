// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report defines the harness's contract to an external report
// writer (spec.md §4.9, C9): the core never opens a file itself, it only
// emits typed events and a header into an injected Sink and asks it to
// finalize at a canonical path.
package report

import "time"

// Event is one pipeline-step timing sample (spec.md §4.6.1). Label
// identifies the pipeline step ("encode", "operate", ...); Iterations is 1
// for a single pipeline pass except for Offline's operate event, where it
// is the full result-batch cardinality. Warmup marks an untimed Latency
// warmup pass (spec.md §4.6.2): its Wall/CPU are still populated for a
// complete record, but it must not feed summary statistics meant to
// describe measured performance.
type Event struct {
	ID         uint64
	Label      string
	Wall       time.Duration
	CPU        time.Duration
	Iterations uint64
	Warmup     bool
}

// Sink is the external collaborator every category driver writes its
// timing events and header into. The core treats the eventual output path
// purely as an opaque directory string (spec.md §4.9); it never assumes a
// file format.
type Sink interface {
	AddEvent(e Event)
	AddHeader(text string)
	Finalize(path string) error
}

// EventIDAllocator hands out monotonically increasing event IDs with a
// fixed per-category offset, per spec.md §4.6.1.
type EventIDAllocator struct {
	next uint64
}

// NewEventIDAllocator starts IDs at offset, so Latency and Offline runs
// never collide if their events end up interleaved in one sink.
func NewEventIDAllocator(offset uint64) *EventIDAllocator {
	return &EventIDAllocator{next: offset}
}

func (a *EventIDAllocator) Next() uint64 {
	id := a.next
	a.next++
	return id
}

// Category offsets for the two drivers, keeping their event ID spaces
// disjoint even when a single Sink collects both (spec.md §4.6.1).
const (
	LatencyEventOffset uint64 = 0
	OfflineEventOffset uint64 = 1 << 32
)
