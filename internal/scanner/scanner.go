// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner locates token occurrences in partially expanded text.
package scanner

import "nickandperla.net/lambdacalc/internal/token"

// Match is a located token occurrence.
type Match struct {
	Start, End    int    // span of the occurrence in the text, End exclusive
	Key           string // token name, parentheses stripped
	Parenthesized bool   // the occurrence was written as "(KEY)"
}

// Source returns the occurrence as written, including any parentheses.
func (m Match) Source(text string) string {
	return text[m.Start:m.End]
}

// Find returns the leftmost token occurrence starting at or after from.
// At each position a parenthesized run "(KEY)" is preferred over a bare run;
// runs are always maximal, so "++" is never read as two "+" tokens.
func Find(text string, from int) (Match, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(text); i++ {
		c := text[i]
		if c == '(' {
			end := runEnd(text, i+1)
			if end > i+1 && end < len(text) && text[end] == ')' {
				return Match{
					Start:         i,
					End:           end + 1,
					Key:           text[i+1 : end],
					Parenthesized: true,
				}, true
			}
			continue
		}
		if token.IsSymbolChar(c) {
			end := runEnd(text, i)
			return Match{Start: i, End: end, Key: text[i:end]}, true
		}
	}
	return Match{}, false
}

// runEnd returns the offset just past the run of symbol characters at i.
func runEnd(text string, i int) int {
	for i < len(text) && token.IsSymbolChar(text[i]) {
		i++
	}
	return i
}
