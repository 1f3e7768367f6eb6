// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// CSVSink is the harness's reference Sink: it writes report.csv (the
// header followed by one row per event) and summary.csv (per-label
// aggregate statistics) into the canonical path, per spec.md §6's "Report
// layout". The format itself is an external collaborator's concern
// (spec.md §1); this implementation exists so the CLI has something
// concrete to inject by default.
type CSVSink struct {
	header string
	events []Event
}

func NewCSVSink() *CSVSink { return &CSVSink{} }

func (s *CSVSink) AddHeader(text string) { s.header = text }

func (s *CSVSink) AddEvent(e Event) { s.events = append(s.events, e) }

// Finalize writes report.csv and summary.csv under path, creating it if
// necessary.
func (s *CSVSink) Finalize(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("report: creating %s: %w", path, err)
	}
	if err := s.writeReport(filepath.Join(path, "report.csv")); err != nil {
		return err
	}
	return s.writeSummary(filepath.Join(path, "summary.csv"))
}

func (s *CSVSink) writeReport(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if s.header != "" {
		if _, err := f.WriteString(s.header); err != nil {
			return err
		}
	}

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"event_id", "label", "wall_ns", "cpu_ns", "iterations"}); err != nil {
		return err
	}
	for _, e := range s.events {
		row := []string{
			strconv.FormatUint(e.ID, 10),
			e.Label,
			strconv.FormatInt(e.Wall.Nanoseconds(), 10),
			strconv.FormatInt(e.CPU.Nanoseconds(), 10),
			strconv.FormatUint(e.Iterations, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

type labelStats struct {
	count    int
	sumWall  float64
	sumWall2 float64
}

func (s *CSVSink) writeSummary(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stats := make(map[string]*labelStats)
	order := make([]string, 0)
	for _, e := range s.events {
		if e.Warmup {
			continue // untimed passes don't belong in measured-performance stats
		}
		st, ok := stats[e.Label]
		if !ok {
			st = &labelStats{}
			stats[e.Label] = st
			order = append(order, e.Label)
		}
		wall := float64(e.Wall.Nanoseconds())
		st.count++
		st.sumWall += wall
		st.sumWall2 += wall * wall
	}

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"label", "count", "mean_wall_ns", "stddev_wall_ns"}); err != nil {
		return err
	}
	for _, label := range order {
		st := stats[label]
		mean := st.sumWall / float64(st.count)
		variance := st.sumWall2/float64(st.count) - mean*mean
		if variance < 0 {
			variance = 0
		}
		row := []string{
			label,
			strconv.Itoa(st.count),
			strconv.FormatFloat(mean, 'f', -1, 64),
			strconv.FormatFloat(math.Sqrt(variance), 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
