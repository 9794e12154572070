package store

import (
	"slices"
	"sync"

	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/token"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	defs     map[string]token.Entry
	order    []string
	programs map[string]programs.Program
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		defs:     make(map[string]token.Entry),
		programs: make(map[string]programs.Program),
	}
}

// Definitions returns the stored definitions in insertion order.
func (m *Memory) Definitions() ([]token.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]token.Entry, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.defs[name])
	}
	return out, nil
}

// PutDefinition stores a definition by name.
func (m *Memory) PutDefinition(e token.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.defs[e.Name]; !ok {
		m.order = append(m.order, e.Name)
	}
	m.defs[e.Name] = e
	return nil
}

// DeleteDefinition removes a definition by name.
func (m *Memory) DeleteDefinition(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.defs[name]; !ok {
		return nil
	}
	delete(m.defs, name)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == name })
	return nil
}

// Program retrieves a program by name.
func (m *Memory) Program(name string) (*programs.Program, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.programs[name]; ok {
		p.Args = slices.Clone(p.Args)
		return &p, nil
	}
	return nil, nil
}

// PutProgram stores a program by name.
func (m *Memory) PutProgram(p programs.Program) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Args = slices.Clone(p.Args)
	m.programs[p.Name] = p
	return nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
