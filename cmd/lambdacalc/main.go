// Command lambdacalc expands and evaluates lambda-calculus macro expressions.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"nickandperla.net/lambdacalc/internal/config"
	"nickandperla.net/lambdacalc/internal/logs"
	"nickandperla.net/lambdacalc/pkg/lambdacalc"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// tracer prints substitution steps while enabled.
type tracer struct {
	enabled bool
	w       io.Writer
}

func (t *tracer) step(s lambdacalc.Step) {
	if t.enabled {
		fmt.Fprintf(t.w, ">>> Expanding %s:\n\n%s\n\n", s.Key, s.Text)
	}
}

func main() {
	var (
		evalStr   = flag.String("e", "", "Evaluate expression")
		program   = flag.String("program", "", "Run a named program (FACT, FIB, ACK, TRI, GIFTS, or a saved one)")
		altPred   = flag.Bool("alt-pred", false, "Use the pair-stepping predecessor encoding")
		trace     = flag.Bool("trace", false, "Print the expression after every substitution")
		traceFile = flag.String("trace-file", "", "Write a JSON trace of every substitution to this file")
		cfgPath   = flag.String("config", "", "CUE configuration file")
		dbPath    = flag.String("db", "", "SQLite database for saved definitions and programs")
		infix     = flag.Bool("infix", false, "Mark -define tokens as infix (exchange) operators")
		save      = flag.String("save", "", "Save the -e expression as a named program")
		list      = flag.Bool("list", false, "List tokens and programs")
		asBool    = flag.Bool("bool", false, "Evaluate the result as a boolean")
		logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
		defines   multiFlag
		undefines multiFlag
	)
	flag.Var(&defines, "define", "Define a token as \"NAME TEMPLATE\" (repeatable); saved when -db is set")
	flag.Var(&undefines, "undefine", "Remove a saved token definition from -db (repeatable)")

	flag.Parse()

	// Configuration file values apply unless the flag was given explicitly
	var configOpts []lambdacalc.Option
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["alt-pred"] {
			*altPred = cfg.AltPred
		}
		if !set["trace"] {
			*trace = cfg.Trace
		}
		if !set["db"] && cfg.DB != "" {
			*dbPath = cfg.DB
		}
		if !set["log-level"] && cfg.LogLevel != "" {
			*logLevel = cfg.LogLevel
		}
		configOpts = append(configOpts,
			lambdacalc.WithDefinitions(cfg.Entries()...),
			lambdacalc.WithPrograms(cfg.ProgramList()...))
	}

	level, err := logs.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logOpts := logs.Options{Level: level, Writer: os.Stderr}
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating trace file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOpts.TraceWriter = f
	}
	logger := logs.New(logOpts)

	newDefs, err := parseDefines(defines, *infix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tr := &tracer{enabled: *trace, w: os.Stdout}

	// Build options
	opts := append([]lambdacalc.Option{
		lambdacalc.WithAltPredecessor(*altPred),
		lambdacalc.WithLogger(logger),
		lambdacalc.WithTrace(tr.step),
	}, configOpts...)
	if *dbPath != "" {
		opts = append(opts, lambdacalc.WithSQLiteStore(*dbPath))
	}
	opts = append(opts, lambdacalc.WithDefinitions(newDefs...))

	runtime, err := lambdacalc.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer runtime.Close()

	if err := runtime.Table().Validate(); err != nil {
		logger.Warn("token table references undefined tokens", "error", err)
	}

	// Definitions are registered above; the database only persists them
	if *dbPath != "" {
		for _, e := range newDefs {
			if err := runtime.SaveDefinition(e); err != nil {
				fail(runtime, "saving definition %s: %v", e.Name, err)
			}
		}
	}
	for _, name := range undefines {
		if err := runtime.DeleteDefinition(name); err != nil {
			fail(runtime, "removing definition %s: %v", name, err)
		}
	}

	if *list {
		printList(os.Stdout, runtime)
		return
	}

	args := flag.Args()
	expr := *evalStr
	switch {
	case expr != "":
		if *save != "" {
			err := runtime.SaveProgram(lambdacalc.Program{Name: *save, Expression: expr, Args: args})
			if err != nil {
				fail(runtime, "saving program %s: %v", *save, err)
			}
		}
	case *program != "":
		p, err := runtime.Program(*program)
		if err != nil {
			fail(runtime, "%v", err)
		}
		expr = p.Expression
		if len(args) == 0 {
			args = p.Args
		}
	case len(newDefs) > 0 || len(undefines) > 0:
		// Definitions only
		return
	default:
		runREPL(runtime, tr)
		return
	}

	if *asBool {
		b, err := runtime.EvaluateBool(expr, args...)
		if err != nil {
			fail(runtime, "%v", err)
		}
		fmt.Printf("Result: %t\n", b)
		return
	}

	if tr.enabled {
		fmt.Printf("Beginning Expansion of:\n\n%s\n\n", lambdacalc.Apply(expr, args...))
	}
	res, err := runtime.Execute(expr, args...)
	if err != nil {
		fail(runtime, "%v", err)
	}
	printResult(os.Stdout, res)
}

func parseDefines(defines []string, infix bool) ([]lambdacalc.Entry, error) {
	var out []lambdacalc.Entry
	for _, d := range defines {
		// Token names may contain '=', so the name ends at the first space
		name, template, ok := strings.Cut(strings.TrimSpace(d), " ")
		template = strings.TrimSpace(template)
		if !ok || template == "" {
			return nil, fmt.Errorf("invalid -define %q: expected \"NAME TEMPLATE\"", d)
		}
		out = append(out, lambdacalc.Entry{Name: name, Template: template, Exchange: infix})
	}
	return out, nil
}

func printResult(w io.Writer, res *lambdacalc.Result) {
	fmt.Fprintf(w, "Lambda notation (%d characters):\n\n%s\n\n", len(res.Expansion), res.Expansion)
	fmt.Fprintf(w, "Mathematical notation (%d characters):\n\n%s\n\n", len([]rune(res.Math)), res.Math)
	fmt.Fprintf(w, "Execution Time: %.4f seconds\nResult: %d\n", res.Elapsed.Seconds(), res.Value)
}

func printList(w io.Writer, runtime *lambdacalc.Runtime) {
	fmt.Fprintln(w, "Tokens:")
	for _, e := range runtime.Table().Entries() {
		kind := "prefix"
		if e.Exchange {
			kind = "infix"
		}
		fmt.Fprintf(w, "  %-5s %-6s %s\n", e.Name, kind, e.Template)
	}
	fmt.Fprintln(w, "\nPrograms:")
	for _, p := range runtime.Programs() {
		fmt.Fprintf(w, "  %-6s %-8s %s\n", p.Name, strings.Join(p.Args, " "), p.Doc)
	}
	if version, err := runtime.SchemaVersion(); err == nil && version != "" {
		fmt.Fprintf(w, "\nDatabase schema version: %s\n", version)
	}
}

func fail(runtime *lambdacalc.Runtime, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	runtime.Close()
	os.Exit(1)
}
