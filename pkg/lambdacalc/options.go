// Package lambdacalc provides the public API for the lambda-calculus macro
// expander and evaluator.
package lambdacalc

import (
	"log/slog"

	"nickandperla.net/lambdacalc/internal/expand"
	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/store"
	"nickandperla.net/lambdacalc/internal/token"
)

// Option configures a Runtime.
type Option func(*Runtime)

// Entry is a token definition.
type Entry = token.Entry

// Program is a named token-level expression with default arguments.
type Program = programs.Program

// Step is one substitution reported to a trace hook.
type Step = expand.Step

// Store interface for custom stores.
type Store = store.Store

// WithAltPredecessor selects the pair-stepping decrement encoding.
func WithAltPredecessor(alt bool) Option {
	return func(r *Runtime) {
		r.tokenOpts.AltPredecessor = alt
	}
}

// WithTrace sets a hook called after every substitution step.
func WithTrace(fn func(Step)) Option {
	return func(r *Runtime) {
		r.trace = fn
	}
}

// WithLogger sets the structured logger. Substitution steps are logged at
// debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithDefinitions registers extra token definitions after the built-ins and
// any stored definitions.
func WithDefinitions(entries ...Entry) Option {
	return func(r *Runtime) {
		r.extra = append(r.extra, entries...)
	}
}

// WithPrograms makes additional named programs available to Program.
func WithPrograms(ps ...Program) Option {
	return func(r *Runtime) {
		r.programs = append(r.programs, ps...)
	}
}

// WithNoBuiltins starts from an empty token table.
func WithNoBuiltins() Option {
	return func(r *Runtime) {
		r.noBuiltins = true
	}
}

// WithStore sets the definitions store. The runtime closes it on Close.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.setStore(s)
	}
}

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.optErr = err
			return
		}
		r.setStore(s)
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.setStore(store.NewMemory())
	}
}

// setStore replaces the store, closing any earlier one.
func (r *Runtime) setStore(s Store) {
	if r.store != nil {
		r.store.Close()
	}
	r.store = s
}
