// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/hebench/harness/internal/workload"
)

// Header renders the CSV-style configuration line handed to the report
// sink's add_header (spec.md §4.4, §4.9): one row of column names, one row
// of values, using encoding/csv so commas in free-form fields like
// Descriptor.Other are quoted correctly.
func Header(workloadName string, params []workload.Param, desc workload.Descriptor) string {
	cols := []string{"workload", "category", "data_type", "cipher_param_mask", "scheme", "security", "other"}
	vals := []string{
		workloadName,
		desc.Category.String(),
		desc.DataType.String(),
		strconv.FormatUint(uint64(desc.CipherParamMask), 10),
		desc.Scheme,
		desc.Security,
		desc.Other,
	}
	for i, p := range params {
		cols = append(cols, "wp"+strconv.Itoa(i))
		vals = append(vals, paramString(p))
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(cols)
	_ = w.Write(vals)
	w.Flush()
	return b.String()
}

func paramString(p workload.Param) string {
	switch p.Tag {
	case workload.TagU64:
		return strconv.FormatUint(p.U64, 10)
	case workload.TagI64:
		return strconv.FormatInt(p.I64, 10)
	case workload.TagF64:
		return strconv.FormatFloat(p.F64, 'g', -1, 64)
	default:
		return ""
	}
}
