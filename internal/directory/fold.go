// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package directory

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the caseless, NFC-normalized form of s.
// A new Caser is built per call because Casers are not goroutine safe.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// EqualFold reports whether a and b are equal under Fold.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// TrimFoldPrefix reports whether s starts with prefix under Fold and, if so,
// returns the rest of s in its original case. The prefix length is measured
// in runes of the NFC form of prefix.
func TrimFoldPrefix(s, prefix string) (string, bool) {
	prefix = norm.NFC.String(prefix)
	s = norm.NFC.String(s)
	n := utf8.RuneCountInString(prefix)

	i := 0
	for k := 0; k < n; k++ {
		if i >= len(s) {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	if Fold(s[:i]) != Fold(prefix) {
		return "", false
	}
	return s[i:], true
}
