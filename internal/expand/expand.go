// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expand rewrites token-laden expressions into pure lambda calculus.
//
// Expansion repeatedly finds the leftmost token occurrence and splices in its
// template until none remain. An unparenthesized token with the exchange flag
// is an infix operator written after its first argument, as in "(x)-(y)"; its
// template is inserted before that argument instead of at the operator, giving
// "SUB(x)(y)".
//
// The engine does not detect cycles. A definition that refers to itself other
// than through Y never reaches a fixpoint, and Expand will not return.
package expand

import (
	"fmt"
	"strings"

	"nickandperla.net/lambdacalc/internal/scanner"
	"nickandperla.net/lambdacalc/internal/token"
)

// OperatorError reports an exchange token with no first argument to move in
// front of.
type OperatorError struct {
	Key    string
	Offset int
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("operator %q at offset %d has no preceding argument", e.Key, e.Offset)
}

// Step is one substitution, reported to the trace hook.
type Step struct {
	Key  string // occurrence as written, e.g. "(T)" or "++"
	At   int    // offset where the substitution text was inserted
	Text string // working text after the substitution
}

// Expander expands expressions against a frozen token table. It holds no
// per-call state and is safe for concurrent use if the trace hook is.
type Expander struct {
	table *token.Table
	trace func(Step)
}

// Option configures an Expander.
type Option func(*Expander)

// WithTrace sets a hook called after every substitution, in order.
func WithTrace(fn func(Step)) Option {
	return func(x *Expander) { x.trace = fn }
}

// New creates an Expander for the given table.
func New(t *token.Table, opts ...Option) *Expander {
	x := &Expander{table: t}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Expand rewrites text until no token occurrence remains. Binder shorthand
// ("#") is expanded first. Text without tokens is returned unchanged.
func (x *Expander) Expand(text string) (string, error) {
	text = token.Shorthand(text)
	from := 0
	for {
		m, ok := scanner.Find(text, from)
		if !ok {
			return text, nil
		}

		subst, exchange, err := x.resolve(m.Key)
		if err != nil {
			return "", err
		}
		written := m.Source(text)

		at := m.Start
		if m.Parenthesized || !exchange {
			text = splice(text[:m.Start], subst, text[m.End:])
		} else {
			at, err = argumentStart(text, m)
			if err != nil {
				return "", err
			}
			text = splice(text[:at], subst, text[at:m.Start], text[m.End:])
		}

		if x.trace != nil {
			x.trace(Step{Key: written, At: at, Text: text})
		}

		// Everything before the splice point is token free, but a "(" just
		// before it may now open a parenthesized key.
		from = at - 1
	}
}

// resolve returns the substitution text for key and its exchange flag.
func (x *Expander) resolve(key string) (string, bool, error) {
	if token.IsNumeral(key) {
		s, err := numeral(key)
		return s, false, err
	}
	e, err := x.table.Lookup(key)
	if err != nil {
		return "", false, err
	}
	return e.Template, e.Exchange, nil
}

// argumentStart finds where the first argument of the exchange occurrence m
// begins: the "(" matching the ")" just before m. If the argument is not
// parenthesized the leftward depth scan lands on the enclosing "(" or the
// start of the text.
func argumentStart(text string, m scanner.Match) (int, error) {
	if m.Start == 0 {
		return 0, &OperatorError{Key: m.Key, Offset: m.Start}
	}
	closing := m.Start - 1
	depth := 1
	for j := closing - 1; j >= 0; j-- {
		switch text[j] {
		case ')':
			depth++
		case '(':
			depth--
		}
		if depth == 0 {
			return j, nil
		}
	}
	if text[closing] == ')' {
		return 0, &OperatorError{Key: m.Key, Offset: m.Start}
	}
	return 0, nil
}

func splice(parts ...string) string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, p := range parts {
		sb.WriteString(p)
	}
	return sb.String()
}
