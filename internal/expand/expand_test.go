package expand

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"nickandperla.net/lambdacalc/internal/token"
)

func newExpander(t *testing.T, opts ...Option) *Expander {
	t.Helper()
	table, err := token.NewTable(token.Options{})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return New(table, opts...)
}

func TestChurch(t *testing.T) {
	if got := Church(0); got != "(lambda s:lambda x:x)" {
		t.Errorf("Church(0) = %q", got)
	}
	if got := Church(3); got != "(lambda s:lambda x:s(s(s(x))))" {
		t.Errorf("Church(3) = %q", got)
	}
}

func TestExpandNumeral(t *testing.T) {
	x := newExpander(t)
	got, err := x.Expand("(2)")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got != Church(2) {
		t.Errorf("expected %q, got %q", Church(2), got)
	}

	_, err = x.Expand("(99999999999999999999)")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestExpandPureTextUnchanged(t *testing.T) {
	x := newExpander(t)
	for _, text := range []string{"", "(lambda x:x(x))", "lambda f:lambda:f()"} {
		got, err := x.Expand(text)
		if err != nil {
			t.Fatalf("Expand(%q) failed: %v", text, err)
		}
		if got != text {
			t.Errorf("Expand(%q) = %q", text, got)
		}
	}
}

func TestExpandShorthand(t *testing.T) {
	x := newExpander(t)
	got, err := x.Expand("(#x:x)")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got != "(lambda x:x)" {
		t.Errorf("expected shorthand expansion, got %q", got)
	}
}

func TestExpandInPlace(t *testing.T) {
	x := newExpander(t)
	got, err := x.Expand("f(T)")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got != "f(lambda x:lambda y:x())" {
		t.Errorf("unexpected expansion %q", got)
	}
}

func TestExchangePlacement(t *testing.T) {
	x := newExpander(t)
	infix, err := x.Expand("(5)-(2)")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	prefix, err := x.Expand("(-)(5)(2)")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if infix != prefix {
		t.Errorf("infix and prefix forms differ:\n%s\n%s", infix, prefix)
	}
	if !strings.HasSuffix(infix, Church(5)+Church(2)) {
		t.Errorf("expected arguments after the operator template, got %q", infix)
	}
}

func TestOperatorError(t *testing.T) {
	x := newExpander(t)
	for _, text := range []string{"++(2)", "x)++"} {
		_, err := x.Expand(text)
		var opErr *OperatorError
		if !errors.As(err, &opErr) {
			t.Errorf("Expand(%q): expected *OperatorError, got %v", text, err)
			continue
		}
		if opErr.Key != "++" {
			t.Errorf("Expand(%q): expected key ++, got %q", text, opErr.Key)
		}
	}
}

func TestUndefined(t *testing.T) {
	x := newExpander(t)
	_, err := x.Expand("(lambda n:NOPE(n))")
	var undef *token.UndefinedError
	if !errors.As(err, &undef) {
		t.Fatalf("expected *token.UndefinedError, got %v", err)
	}
	if undef.Name != "NOPE" {
		t.Errorf("expected NOPE, got %q", undef.Name)
	}
}

func TestTrace(t *testing.T) {
	var steps []Step
	x := newExpander(t, WithTrace(func(s Step) { steps = append(steps, s) }))

	got, err := x.Expand("(2)++")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Key != "(2)" || steps[0].At != 0 {
		t.Errorf("unexpected first step %+v", steps[0])
	}
	if steps[1].Key != "++" || steps[1].At != 0 {
		t.Errorf("unexpected second step %+v", steps[1])
	}
	want := "(lambda x:lambda y:lambda z:y(x(y)(z)))" + Church(2)
	if got != want || steps[1].Text != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExpandLeavesNoTokens(t *testing.T) {
	x := newExpander(t)
	got, err := x.Expand("+R(FRAC(1)(2))(FRAC(1)(3))(T)")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if refs := token.References(got); len(refs) != 0 {
		t.Errorf("expansion still references %v", refs)
	}
}
