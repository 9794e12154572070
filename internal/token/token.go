// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the token alphabet and the token table that maps
// symbolic names to lambda-calculus expansion templates.
package token

// Operator symbols that may appear in a token name, in addition to A-Z and 0-9.
const Operators = `+-*/%=<>~&|^`

// IsSymbolChar returns true if the byte may be part of a token name.
func IsSymbolChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '+', '-', '*', '/', '%', '=', '<', '>', '~', '&', '|', '^':
		return true
	}
	return false
}

// IsNumeral returns true if the key is a non-empty run of decimal digits.
// Numeric keys are resolved to Church numerals instead of table entries.
func IsNumeral(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}

// IsName returns true if every byte of s is a symbol character.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsSymbolChar(s[i]) {
			return false
		}
	}
	return true
}

// Shorthand expands the compact binder notation used in templates:
// "#:" becomes "lambda:" and any other "#" becomes "lambda ".
func Shorthand(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '#' {
			if out != nil {
				out = append(out, s[i])
			}
			continue
		}
		if out == nil {
			out = make([]byte, 0, len(s)+32)
			out = append(out, s[:i]...)
		}
		if i+1 < len(s) && s[i+1] == ':' {
			out = append(out, "lambda:"...)
			i++
			continue
		}
		out = append(out, "lambda "...)
	}
	if out == nil {
		return s
	}
	return string(out)
}
