// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package lambdacalc

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"nickandperla.net/lambdacalc/internal/eval"
	"nickandperla.net/lambdacalc/internal/expand"
	"nickandperla.net/lambdacalc/internal/lambda"
	"nickandperla.net/lambdacalc/internal/logs"
	"nickandperla.net/lambdacalc/internal/notation"
	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/store"
	"nickandperla.net/lambdacalc/internal/token"
)

// ErrNoStore is returned when saving without a configured store.
var ErrNoStore = errors.New("no definitions store configured")

// ErrUnknownProgram is returned by Program for names nobody defines.
var ErrUnknownProgram = errors.New("unknown program")

// Runtime expands and evaluates expressions against a frozen token table.
// After New returns it is read-only and safe for concurrent use, provided
// the trace hook is.
type Runtime struct {
	table      *token.Table
	expander   *expand.Expander
	store      Store
	logger     *slog.Logger
	trace      func(Step)
	tokenOpts  token.Options
	noBuiltins bool
	extra      []Entry
	programs   []Program
	optErr     error
}

// Result is the outcome of Execute.
type Result struct {
	Expansion string        // pure lambda text
	Math      string        // Expansion in mathematical notation
	Value     int           // the number the term denotes
	Elapsed   time.Duration // parse and evaluation time, excluding expansion
}

// New builds the token table and returns a runtime. Definitions are
// registered in this order, later ones overwriting earlier ones: built-ins,
// stored definitions, WithDefinitions.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	if r.optErr != nil {
		if r.store != nil {
			r.store.Close()
		}
		return nil, r.optErr
	}
	if r.logger == nil {
		r.logger = logs.Discard()
	}

	b := token.NewBuilder()
	if !r.noBuiltins {
		if err := b.DefineAll(token.Builtins(r.tokenOpts)); err != nil {
			return nil, err
		}
	}
	if r.store != nil {
		stored, err := r.store.Definitions()
		if err != nil {
			r.store.Close()
			return nil, fmt.Errorf("loading stored definitions: %w", err)
		}
		if err := b.DefineAll(stored); err != nil {
			r.store.Close()
			return nil, fmt.Errorf("loading stored definitions: %w", err)
		}
	}
	if err := b.DefineAll(r.extra); err != nil {
		if r.store != nil {
			r.store.Close()
		}
		return nil, err
	}
	r.table = b.Build()
	r.expander = expand.New(r.table, expand.WithTrace(r.step))

	r.logger.Debug("token table built",
		"tokens", r.table.Len(),
		"alt_predecessor", r.tokenOpts.AltPredecessor)
	return r, nil
}

func (r *Runtime) step(s Step) {
	r.logger.Debug("expand", "key", s.Key, "at", s.At, "length", len(s.Text), "text", s.Text)
	if r.trace != nil {
		r.trace(s)
	}
}

// Table returns the frozen token table.
func (r *Runtime) Table() *token.Table {
	return r.table
}

// Apply appends each argument to expr as an application, left to right.
func Apply(expr string, args ...string) string {
	if len(args) == 0 {
		return expr
	}
	return expr + strings.Join(lo.Map(args, func(a string, _ int) string {
		return "(" + a + ")"
	}), "")
}

// Expand applies args to expr and rewrites the result into pure lambda text.
func (r *Runtime) Expand(expr string, args ...string) (string, error) {
	return r.expander.Expand(Apply(expr, args...))
}

// Evaluate expands expr applied to args and returns the Church numeral it
// denotes.
func (r *Runtime) Evaluate(expr string, args ...string) (int, error) {
	res, err := r.Execute(expr, args...)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// EvaluateBool expands expr applied to args and returns the boolean it
// denotes under the T/F selector convention.
func (r *Runtime) EvaluateBool(expr string, args ...string) (bool, error) {
	text, err := r.Expand(expr, args...)
	if err != nil {
		return false, err
	}
	return eval.Boolean(text)
}

// Execute expands expr applied to args, evaluates it, and reports the
// expansion and timing alongside the value.
func (r *Runtime) Execute(expr string, args ...string) (*Result, error) {
	text, err := r.Expand(expr, args...)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	term, err := lambda.Parse(text)
	if err != nil {
		return nil, &eval.Error{Reason: "malformed expansion", Err: err}
	}
	if free := lambda.FreeVars(term); len(free) > 0 {
		r.logger.Warn("expansion has free variables", "names", free)
	}
	n, err := eval.Compile(term).Number()
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("evaluated", "value", n, "elapsed", elapsed, "length", len(text))
	return &Result{
		Expansion: text,
		Math:      notation.Math(text),
		Value:     n,
		Elapsed:   elapsed,
	}, nil
}

// Program resolves a named program: built-ins first, then WithPrograms,
// then the store.
func (r *Runtime) Program(name string) (Program, error) {
	if p, ok := programs.Lookup(name); ok {
		return p, nil
	}
	if p, ok := lo.Find(r.programs, func(p Program) bool { return p.Name == name }); ok {
		return p, nil
	}
	if r.store != nil {
		p, err := r.store.Program(name)
		if err != nil {
			return Program{}, err
		}
		if p != nil {
			return *p, nil
		}
	}
	return Program{}, fmt.Errorf("%w: %s", ErrUnknownProgram, name)
}

// Programs lists the built-in and configured programs.
func (r *Runtime) Programs() []Program {
	return append(programs.Builtins(), r.programs...)
}

// SaveDefinition persists a token definition. The running table is frozen,
// so the definition takes effect in runtimes created afterwards.
func (r *Runtime) SaveDefinition(e Entry) error {
	if r.store == nil {
		return ErrNoStore
	}
	if !token.IsName(e.Name) || token.IsNumeral(e.Name) {
		return &token.NameError{Name: e.Name}
	}
	return r.store.PutDefinition(e)
}

// DeleteDefinition removes a persisted token definition. Like SaveDefinition
// it does not affect the running table.
func (r *Runtime) DeleteDefinition(name string) error {
	if r.store == nil {
		return ErrNoStore
	}
	return r.store.DeleteDefinition(name)
}

// SchemaVersion reports the schema version recorded by the store, or "" if
// the store keeps no metadata.
func (r *Runtime) SchemaVersion() (string, error) {
	ms, ok := r.store.(store.MetadataStore)
	if !ok {
		return "", nil
	}
	return ms.GetMetadata("schema_version")
}

// SaveProgram persists a named program.
func (r *Runtime) SaveProgram(p Program) error {
	if r.store == nil {
		return ErrNoStore
	}
	return r.store.PutProgram(p)
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
