// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package programs provides the built-in demonstration programs.
package programs

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

//go:embed catalog.txt
var catalog string

// Program is a named token-level expression with default arguments.
type Program struct {
	Name       string
	Doc        string
	Expression string
	Args       []string
}

var builtins = mustParse(catalog)

// Builtins returns the built-in programs in catalog order.
func Builtins() []Program {
	return lo.Map(builtins, func(p Program, _ int) Program {
		p.Args = append([]string(nil), p.Args...)
		return p
	})
}

// Lookup returns the built-in program with the given name.
func Lookup(name string) (Program, bool) {
	p, ok := lo.Find(builtins, func(p Program) bool {
		return p.Name == name
	})
	if ok {
		p.Args = append([]string(nil), p.Args...)
	}
	return p, ok
}

// Parse reads a catalog in the NAME [ARGS...] = EXPRESSION line format.
func Parse(src string) ([]Program, error) {
	var out []Program
	var doc string
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			doc = ""
			continue
		case strings.HasPrefix(line, "//"):
			doc = strings.TrimSpace(strings.TrimPrefix(line, "//"))
			continue
		}
		head, expr, ok := strings.Cut(line, " = ")
		if !ok {
			return nil, fmt.Errorf("line %d: missing \" = \"", i+1)
		}
		fields := strings.Fields(head)
		if len(fields) == 0 {
			return nil, fmt.Errorf("line %d: missing program name", i+1)
		}
		out = append(out, Program{
			Name:       fields[0],
			Doc:        doc,
			Expression: strings.TrimSpace(expr),
			Args:       fields[1:],
		})
		doc = ""
	}
	return out, nil
}

func mustParse(src string) []Program {
	ps, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("programs: bad built-in catalog: %v", err))
	}
	return ps
}
