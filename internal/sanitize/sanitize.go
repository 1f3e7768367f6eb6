// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sanitize implements the canonical-path segment sanitizer used by
// internal/token when deriving a reproducible report directory (spec.md
// §4.4). Sanitize is idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
package sanitize

import "strings"

// Sanitize rewrites s so it is safe to use as one path segment: every run
// of characters that is neither alphanumeric nor '.' becomes a single
// underscore, and leading/trailing underscores are trimmed.
func Sanitize(s string) string {
	var b strings.Builder
	prevUnderscore := false
	for _, r := range s {
		if isAlnum(r) || r == '.' {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
