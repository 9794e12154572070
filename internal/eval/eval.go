// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements a strict evaluator for pure lambda terms.
//
// Evaluation is call-by-value with the function evaluated before its
// argument. Branches that must not run are expected to be wrapped in
// zero-parameter lambdas, which are only entered when called with "()".
package eval

import (
	"fmt"

	"nickandperla.net/lambdacalc/internal/lambda"
)

// Error reports a term that does not reduce to the expected result.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation error: %s: %v", e.Reason, e.Err)
	}
	return "evaluation error: " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Program is a compiled term. A Program has no mutable state and may be run
// any number of times, concurrently.
type Program struct {
	root code
}

// Compile prepares t for evaluation. Free variables are reported only when
// they are actually evaluated.
func Compile(t lambda.Term) *Program {
	return &Program{root: compile(t, nil)}
}

// Parse parses and compiles pure lambda text.
func Parse(src string) (*Program, error) {
	t, err := lambda.Parse(src)
	if err != nil {
		return nil, &Error{Reason: "malformed expansion", Err: err}
	}
	return Compile(t), nil
}

// Number applies the program to a successor function and zero and returns
// the resulting count.
func (p *Program) Number() (int, error) {
	v, err := run(func() value {
		f := p.root(nil)
		return apply(apply(f, successor), 0)
	})
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, errorf("result is %s, not a number", describe(v))
	}
	return n, nil
}

// Boolean applies the program to two thunks yielding true and false, the
// selector convention used by T and F.
func (p *Program) Boolean() (bool, error) {
	v, err := run(func() value {
		f := p.root(nil)
		return apply(apply(f, thunk(func() value { return true })), thunk(func() value { return false }))
	})
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errorf("result is %s, not a boolean", describe(v))
	}
	return b, nil
}

// Number parses src and evaluates it as a Church numeral.
func Number(src string) (int, error) {
	p, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return p.Number()
}

// Boolean parses src and evaluates it as a boolean selector.
func Boolean(src string) (bool, error) {
	p, err := Parse(src)
	if err != nil {
		return false, err
	}
	return p.Boolean()
}

// run converts an *Error panic raised during evaluation into a return value.
func run(fn func() value) (v value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	return fn(), nil
}
