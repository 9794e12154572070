// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package token

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Entry is a single token definition.
type Entry struct {
	Name     string
	Template string // expansion text, shorthand already expanded
	Exchange bool   // infix operator whose expansion precedes its first argument
}

// UndefinedError reports a scanned key with no table entry.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined token %q", e.Name)
}

// NameError reports a definition whose name the scanner could never match
// as a table key.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	if IsNumeral(e.Name) {
		return fmt.Sprintf("invalid token name %q: numeric names are reserved for numerals", e.Name)
	}
	return fmt.Sprintf("invalid token name %q: allowed characters are A-Z, 0-9 and %s", e.Name, Operators)
}

// Builder collects definitions before the table is frozen.
type Builder struct {
	entries map[string]Entry
	order   []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]Entry)}
}

// Define registers or overwrites a token. The template may use the "#"
// binder shorthand.
func (b *Builder) Define(name, template string, exchange bool) error {
	if !IsName(name) || IsNumeral(name) {
		return &NameError{Name: name}
	}
	if _, ok := b.entries[name]; !ok {
		b.order = append(b.order, name)
	}
	b.entries[name] = Entry{
		Name:     name,
		Template: Shorthand(template),
		Exchange: exchange,
	}
	return nil
}

// DefineAll registers entries in order, stopping at the first error.
func (b *Builder) DefineAll(entries []Entry) error {
	for _, e := range entries {
		if err := b.Define(e.Name, e.Template, e.Exchange); err != nil {
			return err
		}
	}
	return nil
}

// Build freezes the collected definitions into a Table. The Builder may keep
// being used; later definitions do not affect tables already built.
func (b *Builder) Build() *Table {
	t := &Table{
		entries: make(map[string]Entry, len(b.entries)),
		order:   slices.Clone(b.order),
	}
	for k, v := range b.entries {
		t.entries[k] = v
	}
	return t
}

// Table is an immutable token table. It is safe for concurrent use.
type Table struct {
	entries map[string]Entry
	order   []string
}

// Lookup returns the entry for name, or an *UndefinedError.
func (t *Table) Lookup(name string) (Entry, error) {
	e, ok := t.entries[name]
	if !ok {
		return Entry{}, &UndefinedError{Name: name}
	}
	return e, nil
}

// Has returns true if name is defined.
func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Len returns the number of defined tokens.
func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns the defined names in lexical order.
func (t *Table) Names() []string {
	names := lo.Keys(t.entries)
	slices.Sort(names)
	return names
}

// Entries returns the definitions in registration order.
func (t *Table) Entries() []Entry {
	return lo.Map(t.order, func(name string, _ int) Entry {
		return t.entries[name]
	})
}

// Validate checks that every key referenced by a template is either defined
// or numeric. Cycles are not detected.
func (t *Table) Validate() error {
	for _, name := range t.order {
		for _, key := range References(t.entries[name].Template) {
			if IsNumeral(key) || t.Has(key) {
				continue
			}
			return fmt.Errorf("token %q: %w", name, &UndefinedError{Name: key})
		}
	}
	return nil
}

// References returns every maximal run of symbol characters in s, in order.
func References(s string) []string {
	var keys []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && IsSymbolChar(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			keys = append(keys, s[start:i])
			start = -1
		}
	}
	return keys
}
