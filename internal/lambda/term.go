// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package lambda defines pure lambda terms and parses the expanded text.
//
// The surface syntax is the one templates are written in:
//
//	expr    := "lambda" [ident] ":" expr | postfix
//	postfix := primary { "(" [expr] ")" }
//	primary := ident | "(" expr ")"
//
// A binder without a parameter ("lambda:") is a thunk and "f()" forces it.
package lambda

import "strings"

// Term is a pure lambda term.
type Term interface {
	// String returns the term in surface syntax.
	String() string
	write(sb *strings.Builder)
}

// Var is a variable reference.
type Var struct {
	Name string
}

func (v Var) String() string { return v.Name }

func (v Var) write(sb *strings.Builder) { sb.WriteString(v.Name) }

// Abs is an abstraction. An empty Param makes it a zero-parameter thunk.
type Abs struct {
	Param string
	Body  Term
}

func (a Abs) String() string { return render(a) }

func (a Abs) write(sb *strings.Builder) {
	sb.WriteString("(lambda")
	if a.Param != "" {
		sb.WriteByte(' ')
		sb.WriteString(a.Param)
	}
	sb.WriteByte(':')
	a.Body.write(sb)
	sb.WriteByte(')')
}

// Nullary returns true for a thunk.
func (a Abs) Nullary() bool { return a.Param == "" }

// App is an application. A nil Arg is a call with no argument.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string { return render(a) }

func (a App) write(sb *strings.Builder) {
	a.Fun.write(sb)
	sb.WriteByte('(')
	if a.Arg != nil {
		a.Arg.write(sb)
	}
	sb.WriteByte(')')
}

func render(t Term) string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

// FreeVars returns the free variable names of t in first-occurrence order.
func FreeVars(t Term) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(t Term, bound []string)
	walk = func(t Term, bound []string) {
		switch t := t.(type) {
		case Var:
			for i := len(bound) - 1; i >= 0; i-- {
				if bound[i] == t.Name {
					return
				}
			}
			if !seen[t.Name] {
				seen[t.Name] = true
				out = append(out, t.Name)
			}
		case Abs:
			if t.Param != "" {
				bound = append(bound, t.Param)
			}
			walk(t.Body, bound)
		case App:
			walk(t.Fun, bound)
			if t.Arg != nil {
				walk(t.Arg, bound)
			}
		}
	}
	walk(t, nil)
	return out
}
