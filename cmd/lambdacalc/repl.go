package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/term"

	"nickandperla.net/lambdacalc/internal/notation"
	"nickandperla.net/lambdacalc/pkg/lambdacalc"
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "lambdacalc REPL (Ctrl+D to exit)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  EXPR[, ARG]...   evaluate, e.g. (3)*(4) or FIB, 10")
	fmt.Fprintln(w, "  :bool EXPR       evaluate as a boolean, e.g. :bool (2)<(3)")
	fmt.Fprintln(w, "  :expand EXPR     show the expansion in mathematical notation")
	fmt.Fprintln(w, "  :trace           toggle step tracing")
	fmt.Fprintln(w, "  :tokens          list token names")
	fmt.Fprintln(w, "  :undefine NAME   remove a saved definition")
	fmt.Fprintln(w, "  :quit            exit")
	fmt.Fprintln(w)
}

// session evaluates REPL lines against a runtime.
type session struct {
	runtime *lambdacalc.Runtime
	tracer  *tracer
	out     io.Writer
}

// splitLine splits "EXPR, ARG, ARG" into the expression and its arguments.
func splitLine(line string) (string, []string) {
	parts := lo.Compact(lo.Map(strings.Split(line, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

// handle evaluates one line and reports whether the session should end.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "":
		return false
	case ":quit", ":q":
		return true
	case ":trace":
		s.tracer.enabled = !s.tracer.enabled
		fmt.Fprintf(s.out, "tracing %s\n", lo.Ternary(s.tracer.enabled, "on", "off"))
		return false
	case ":tokens":
		fmt.Fprintln(s.out, strings.Join(s.runtime.Table().Names(), " "))
		return false
	case ":undefine":
		name := strings.TrimSpace(rest)
		if err := s.runtime.DeleteDefinition(name); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintf(s.out, "removed %s (takes effect on restart)\n", name)
		return false
	case ":bool":
		expr, args := s.resolve(rest)
		b, err := s.runtime.EvaluateBool(expr, args...)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(s.out, b)
		return false
	case ":expand":
		expr, args := s.resolve(rest)
		text, err := s.runtime.Expand(expr, args...)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(s.out, notation.Math(text))
		return false
	}

	expr, args := s.resolve(line)
	res, err := s.runtime.Execute(expr, args...)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(s.out, "%d  (%.4fs, %d characters)\n", res.Value, res.Elapsed.Seconds(), len(res.Expansion))
	return false
}

// resolve splits a line and substitutes a program name by its expression,
// using the program's default arguments when none are given.
func (s *session) resolve(line string) (string, []string) {
	expr, args := splitLine(line)
	if p, err := s.runtime.Program(expr); err == nil {
		if len(args) == 0 {
			args = p.Args
		}
		return p.Expression, args
	}
	return expr, args
}

func runREPL(runtime *lambdacalc.Runtime, tr *tracer) {
	// Check if stdin is a terminal
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Not a TTY, fall back to basic mode
		runBasicREPL(runtime, tr)
		return
	}

	runRawREPL(runtime, tr)
}

// runBasicREPL handles non-TTY input (piped input)
func runBasicREPL(runtime *lambdacalc.Runtime, tr *tracer) {
	s := &session{runtime: runtime, tracer: tr, out: os.Stdout}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if s.handle(scanner.Text()) {
			return
		}
	}
}

// runRawREPL handles TTY input with line editing and history
func runRawREPL(runtime *lambdacalc.Runtime, tr *tracer) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runBasicREPL(runtime, tr)
		return
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "λ> ")
	if w, h, err := term.GetSize(fd); err == nil {
		t.SetSize(w, h)
	}

	// Terminal translates "\n" to "\r\n" while in raw mode
	prev := tr.w
	tr.w = t
	defer func() { tr.w = prev }()

	printBanner(t)
	s := &session{runtime: runtime, tracer: tr, out: t}
	for {
		line, err := t.ReadLine()
		if err != nil {
			fmt.Fprint(t, "\n")
			return
		}
		if s.handle(line) {
			return
		}
	}
}
