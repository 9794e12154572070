// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package token

// Options selects between alternative encodings in the built-in catalog.
type Options struct {
	// AltPredecessor uses the pair-stepping (PHI) decrement instead of the
	// closed-form one. The expansion is longer but can evaluate faster.
	AltPredecessor bool
}

// Branches passed to boolean selectors are wrapped in zero-argument lambdas
// (#:...) so the evaluator only runs the selected one.

var booleans = []Entry{
	{Name: "T", Template: "(#x:#y:x())"},
	{Name: "F", Template: "(#x:#y:y())"},
	{Name: "~", Template: "(#x:x(#:F)(#:T))"},
	{Name: "&", Template: "(#x:#y:x(#:y)(#:F))", Exchange: true},
	{Name: "|", Template: "(#x:#y:x(#:T)(#:y))", Exchange: true},
	{Name: "^", Template: "(#x:#y:((x)&(~(y)))|((~(x))&(y)))", Exchange: true},
}

var arithmetic = []Entry{
	{Name: "*", Template: "(#x:#y:#z:x(y(z)))", Exchange: true},
	{Name: "**", Template: "(#x:#y:y(x))", Exchange: true},
	{Name: "++", Template: "(#x:#y:#z:y(x(y)(z)))", Exchange: true},
}

var predecessor = []Entry{
	{Name: "--", Template: "(#n:#f:#x:n(#g:#h:h(g(f)))(#y:x)(#y:y))", Exchange: true},
}

var altPredecessor = []Entry{
	{Name: "PHI", Template: "(#p:#x:x(#:(p(T))++)(#:p(T)))"},
	{Name: "--", Template: "(#x:x(PHI)(#y:y(#:#s:#x:x)(#:#s:#x:x))(F))", Exchange: true},
}

var relational = []Entry{
	{Name: "-", Template: "(#x:#y:y(--)(x))", Exchange: true},
	{Name: "Z", Template: "(#x:x(#y:F)(T))"},
	{Name: ">=", Template: "(#x:#y:Z((y)-(x)))", Exchange: true},
	{Name: "<=", Template: "(#x:#y:Z((x)-(y)))", Exchange: true},
	{Name: "=", Template: "(#x:#y:((x)>=(y))&((y)>=(x)))", Exchange: true},
	{Name: ">", Template: "(#x:#y:~(Z((x)-(y))))", Exchange: true},
	{Name: "<", Template: "(#x:#y:~(Z((y)-(x))))", Exchange: true},
}

// Y is written eta-expanded so it terminates under strict evaluation.
var recursion = []Entry{
	{Name: "Y", Template: "(#h:#f:f(#x:h(h)(f)(x)))(#h:#f:f(#x:h(h)(f)(x)))"},
	{Name: "/", Template: "Y(#r:#x:#y:(x)<(y)(#:0)(#:(r((x)-(y))(y))++))", Exchange: true},
	{Name: "%", Template: "Y(#r:#x:#y:(x)<(y)(#:x)(#:r((x)-(y))(y)))", Exchange: true},
	{Name: "HCF", Template: "Y(#r:#x:#y:Z(y)(#:x)(#:r(y)((x)%(y))))"},
	{Name: "LCM", Template: "(#x:#y:((x)*(y))/(HCF(x)(y)))"},
}

// Rationals are ordered pairs: p(T) is the numerator and p(F) the denominator.
var rationals = []Entry{
	{Name: "FRAC", Template: "(#x:#y:#p:p(#:x)(#:y))"},
	{Name: "SIMP", Template: "(#p:#q:q(#:(p(T))/(HCF(p(T))(p(F))))(#:(p(F))/(HCF(p(T))(p(F)))))"},
	{Name: "+R", Template: "(#p:#q:SIMP(#r:r(#:((p(T))*(q(F)))(++)((q(T))*(p(F))))(#:(p(F))*(q(F)))))"},
	{Name: "*R", Template: "(#p:#q:SIMP(#r:r(#:(p(T))*(q(T)))(#:(p(F))*(q(F)))))"},
	{Name: "-R", Template: "(#p:#q:SIMP(#r:r(#:((q(T))*(p(F)))(--)((p(T))*(q(F))))(#:(p(F))*(q(F)))))"},
	{Name: "/R", Template: "(#p:#q:SIMP(#r:r(#:(p(T))*(q(F)))(#:(p(F))*(q(T)))))"},
}

// Builtins returns the built-in catalog in dependency order.
func Builtins(opts Options) []Entry {
	var entries []Entry
	entries = append(entries, booleans...)
	entries = append(entries, arithmetic...)
	if opts.AltPredecessor {
		entries = append(entries, altPredecessor...)
	} else {
		entries = append(entries, predecessor...)
	}
	entries = append(entries, relational...)
	entries = append(entries, recursion...)
	entries = append(entries, rationals...)
	return entries
}

// NewTable builds a frozen table from the built-in catalog followed by extra
// definitions. Extra definitions overwrite built-ins with the same name.
func NewTable(opts Options, extra ...Entry) (*Table, error) {
	b := NewBuilder()
	if err := b.DefineAll(Builtins(opts)); err != nil {
		return nil, err
	}
	if err := b.DefineAll(extra); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
