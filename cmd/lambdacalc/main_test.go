package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nickandperla.net/lambdacalc/pkg/lambdacalc"
)

func TestParseDefines(t *testing.T) {
	defs, err := parseDefines([]string{"SQ #x:(x)*(x)", "  == (#x:#y:(x)=(y))  "}, false)
	if err != nil {
		t.Fatalf("parseDefines failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "SQ" || defs[0].Template != "#x:(x)*(x)" {
		t.Errorf("unexpected first definition: %+v", defs[0])
	}
	if defs[1].Name != "==" || defs[1].Template != "(#x:#y:(x)=(y))" {
		t.Errorf("unexpected second definition: %+v", defs[1])
	}

	defs, err = parseDefines([]string{"AT (#x:#y:x)"}, true)
	if err != nil {
		t.Fatalf("parseDefines failed: %v", err)
	}
	if !defs[0].Exchange {
		t.Error("expected -infix to mark the definition as exchange")
	}

	if _, err := parseDefines([]string{"NOTEMPLATE"}, false); err == nil {
		t.Error("expected error for a definition without a template")
	}
}

func TestSplitLine(t *testing.T) {
	expr, args := splitLine(" FIB , 10 ,, ")
	if expr != "FIB" {
		t.Errorf("expected FIB, got %q", expr)
	}
	if len(args) != 1 || args[0] != "10" {
		t.Errorf("expected [10], got %v", args)
	}

	expr, args = splitLine("")
	if expr != "" || args != nil {
		t.Errorf("expected empty split, got %q %v", expr, args)
	}
}

func TestPrintResult(t *testing.T) {
	var out strings.Builder
	printResult(&out, &lambdacalc.Result{
		Expansion: "(lambda s:lambda x:s(x))",
		Math:      "(λs.λx.s(x))",
		Value:     1,
		Elapsed:   1500 * time.Microsecond,
	})
	got := out.String()
	for _, want := range []string{
		"Lambda notation (24 characters):",
		"Mathematical notation (12 characters):",
		"Execution Time: 0.0015 seconds",
		"Result: 1\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestSession(t *testing.T) {
	runtime, err := lambdacalc.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer runtime.Close()

	var out strings.Builder
	tr := &tracer{w: &out}
	s := &session{runtime: runtime, tracer: tr, out: &out}

	if s.handle("(3)*(4)") {
		t.Fatal("evaluation should not end the session")
	}
	if !strings.HasPrefix(out.String(), "12  (") {
		t.Errorf("expected 12, got %q", out.String())
	}

	out.Reset()
	s.handle("FIB, 6")
	if !strings.HasPrefix(out.String(), "8  (") {
		t.Errorf("expected FIB(6) = 8, got %q", out.String())
	}

	out.Reset()
	s.handle(":bool (2)<(3)")
	if out.String() != "true\n" {
		t.Errorf("expected true, got %q", out.String())
	}

	out.Reset()
	s.handle("NOPE")
	if !strings.Contains(out.String(), "undefined token") {
		t.Errorf("expected undefined token error, got %q", out.String())
	}

	s.handle(":trace")
	if !tr.enabled {
		t.Error("expected :trace to enable tracing")
	}

	if !s.handle(":quit") {
		t.Error("expected :quit to end the session")
	}
}

// TestProgramFlag builds the CLI and runs a built-in program through it
func TestProgramFlag(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "lambdacalc"), "./")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build lambdacalc: %v\n%s", err, out)
	}

	runCmd := exec.Command(filepath.Join(tmpDir, "lambdacalc"), "-program", "FIB", "8")
	output, err := runCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run lambdacalc: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "Result: 21") {
		t.Errorf("expected output to contain 'Result: 21', got: %s", output)
	}
}

// TestDefinitionsPersist saves a definition to a database and uses it from a
// second invocation
func TestDefinitionsPersist(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "lambdacalc"), "./")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build lambdacalc: %v\n%s", err, out)
	}

	bin := filepath.Join(tmpDir, "lambdacalc")
	dbPath := filepath.Join(tmpDir, "defs.db")

	defineCmd := exec.Command(bin, "-db", dbPath, "-define", "SQ (#x:(x)*(x))")
	if out, err := defineCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to save definition: %v\n%s", err, out)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected database to exist: %v", err)
	}

	runCmd := exec.Command(bin, "-db", dbPath, "-e", "SQ(5)")
	output, err := runCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run lambdacalc: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "Result: 25") {
		t.Errorf("expected output to contain 'Result: 25', got: %s", output)
	}
}

// TestDefineWithoutDatabase uses a -define token in the same invocation with
// no database configured
func TestDefineWithoutDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "lambdacalc"), "./")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build lambdacalc: %v\n%s", err, out)
	}

	runCmd := exec.Command(filepath.Join(tmpDir, "lambdacalc"), "-define", "SQ (#x:(x)*(x))", "-e", "SQ(3)")
	output, err := runCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run lambdacalc: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "Result: 9") {
		t.Errorf("expected output to contain 'Result: 9', got: %s", output)
	}
}

// TestUndefine removes a saved definition so later invocations no longer see it
func TestUndefine(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "lambdacalc"), "./")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build lambdacalc: %v\n%s", err, out)
	}

	bin := filepath.Join(tmpDir, "lambdacalc")
	dbPath := filepath.Join(tmpDir, "defs.db")

	if out, err := exec.Command(bin, "-db", dbPath, "-define", "SQ (#x:(x)*(x))").CombinedOutput(); err != nil {
		t.Fatalf("failed to save definition: %v\n%s", err, out)
	}
	if out, err := exec.Command(bin, "-db", dbPath, "-undefine", "SQ").CombinedOutput(); err != nil {
		t.Fatalf("failed to remove definition: %v\n%s", err, out)
	}

	output, err := exec.Command(bin, "-db", dbPath, "-e", "SQ(5)").CombinedOutput()
	if err == nil {
		t.Fatalf("expected SQ to be undefined, got: %s", output)
	}
	if !strings.Contains(string(output), "undefined token") {
		t.Errorf("expected undefined token error, got: %s", output)
	}
}

func TestSessionUndefine(t *testing.T) {
	runtime, err := lambdacalc.New(lambdacalc.WithMemoryStore())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer runtime.Close()
	if err := runtime.SaveDefinition(lambdacalc.Entry{Name: "SQ", Template: "(#x:(x)*(x))"}); err != nil {
		t.Fatalf("SaveDefinition failed: %v", err)
	}

	var out strings.Builder
	s := &session{runtime: runtime, tracer: &tracer{w: &out}, out: &out}
	s.handle(":undefine SQ")
	if !strings.HasPrefix(out.String(), "removed SQ") {
		t.Errorf("unexpected output %q", out.String())
	}

	// Without a store there is nothing to remove from
	bare, err := lambdacalc.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out.Reset()
	s = &session{runtime: bare, tracer: &tracer{w: &out}, out: &out}
	s.handle(":undefine SQ")
	if !strings.Contains(out.String(), "no definitions store") {
		t.Errorf("expected missing store error, got %q", out.String())
	}
}

func TestPrintListSchemaVersion(t *testing.T) {
	runtime, err := lambdacalc.New(lambdacalc.WithSQLiteStore(filepath.Join(t.TempDir(), "defs.db")))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer runtime.Close()

	var out strings.Builder
	printList(&out, runtime)
	if !strings.Contains(out.String(), "Database schema version: 1") {
		t.Errorf("expected schema version in listing, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "FIB") {
		t.Errorf("expected programs in listing, got:\n%s", out.String())
	}
}
