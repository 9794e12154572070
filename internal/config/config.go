// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config loads CUE configuration files for the lambdacalc CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/samber/lo"

	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/token"
)

// Schema is the closed CUE schema every configuration file must satisfy.
const Schema = `
alt_pred?: bool
trace?: bool
db?: string
log_level?: "debug" | "info" | "warn" | "error"
tokens?: [...{
	name: string
	template: string
	exchange?: bool
}]
programs?: [string]: {
	expression: string
	doc?: string
	args?: [...string]
}
`

// ErrNoPath is returned by Load for an empty path.
var ErrNoPath = errors.New("config: no path given")

// Token is a token definition in a configuration file.
type Token struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Exchange bool   `json:"exchange"`
}

// Program is a named program in a configuration file.
type Program struct {
	Expression string   `json:"expression"`
	Doc        string   `json:"doc"`
	Args       []string `json:"args"`
}

// Config is a decoded configuration file.
type Config struct {
	AltPred  bool               `json:"alt_pred"`
	Trace    bool               `json:"trace"`
	DB       string             `json:"db"`
	LogLevel string             `json:"log_level"`
	Tokens   []Token            `json:"tokens"`
	Programs map[string]Program `json:"programs"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, content)
}

// Parse validates CUE source against Schema and decodes it. The filename is
// used in error positions only.
func Parse(filename string, content []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({" + Schema + "})")
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	value := ctx.CompileBytes(content, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, err
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}

	var c Config
	if err := unified.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Entries returns the configured token definitions in file order.
func (c *Config) Entries() []token.Entry {
	return lo.Map(c.Tokens, func(t Token, _ int) token.Entry {
		return token.Entry{Name: t.Name, Template: t.Template, Exchange: t.Exchange}
	})
}

// ProgramList returns the configured programs sorted by name.
func (c *Config) ProgramList() []programs.Program {
	names := lo.Keys(c.Programs)
	slices.Sort(names)
	return lo.Map(names, func(name string, _ int) programs.Program {
		p := c.Programs[name]
		return programs.Program{
			Name:       name,
			Doc:        p.Doc,
			Expression: p.Expression,
			Args:       slices.Clone(p.Args),
		}
	})
}
