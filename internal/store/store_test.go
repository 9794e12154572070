package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/token"
)

func testDefinitions(t *testing.T, s Store) {
	t.Helper()

	if err := s.PutDefinition(token.Entry{Name: "SQ", Template: "(#x:(x)*(x))"}); err != nil {
		t.Fatalf("PutDefinition failed: %v", err)
	}
	if err := s.PutDefinition(token.Entry{Name: "@", Template: "(#x:#y:x)", Exchange: true}); err != nil {
		t.Fatalf("PutDefinition failed: %v", err)
	}
	// Overwrite keeps the original position
	if err := s.PutDefinition(token.Entry{Name: "SQ", Template: "(#x:(x)**(2))"}); err != nil {
		t.Fatalf("PutDefinition failed: %v", err)
	}

	defs, err := s.Definitions()
	if err != nil {
		t.Fatalf("Definitions failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "SQ" || defs[0].Template != "(#x:(x)**(2))" || defs[0].Exchange {
		t.Errorf("unexpected first definition: %+v", defs[0])
	}
	if defs[1].Name != "@" || !defs[1].Exchange {
		t.Errorf("unexpected second definition: %+v", defs[1])
	}

	if err := s.DeleteDefinition("SQ"); err != nil {
		t.Fatalf("DeleteDefinition failed: %v", err)
	}
	defs, err = s.Definitions()
	if err != nil {
		t.Fatalf("Definitions after delete failed: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "@" {
		t.Errorf("expected only '@' after delete, got %+v", defs)
	}
}

func testPrograms(t *testing.T, s Store) {
	t.Helper()

	got, err := s.Program("NOPE")
	if err != nil {
		t.Fatalf("Program failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing program, got %+v", got)
	}

	p := programs.Program{Name: "DOUBLE", Doc: "twice n", Expression: "(#n:(n)*(2))", Args: []string{"21"}}
	if err := s.PutProgram(p); err != nil {
		t.Fatalf("PutProgram failed: %v", err)
	}
	got, err = s.Program("DOUBLE")
	if err != nil {
		t.Fatalf("Program failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected program, got nil")
	}
	if got.Expression != p.Expression || got.Doc != p.Doc {
		t.Errorf("expected %+v, got %+v", p, *got)
	}
	if len(got.Args) != 1 || got.Args[0] != "21" {
		t.Errorf("expected args [21], got %v", got.Args)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	testDefinitions(t, s)
	testPrograms(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lambdacalc-test.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	testDefinitions(t, s)
	testPrograms(t, s)

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	defs, err := s2.Definitions()
	if err != nil {
		t.Fatalf("Definitions after reopen failed: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "@" {
		t.Errorf("expected '@' after reopen, got %+v", defs)
	}
	p, err := s2.Program("DOUBLE")
	if err != nil {
		t.Fatalf("Program after reopen failed: %v", err)
	}
	if p == nil || p.Expression != "(#n:(n)*(2))" {
		t.Errorf("expected DOUBLE after reopen, got %+v", p)
	}

	var ms MetadataStore = s2
	version, err := ms.GetMetadata("schema_version")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, version)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	f, err := os.CreateTemp("", "lambdacalc-schema-*.db")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO metadata (key, value) VALUES ('schema_version', '99');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("seeding database: %v", err)
	}

	s, err := NewSQLite(path)
	if err == nil {
		s.Close()
		t.Fatal("expected error for unsupported schema version")
	}
}
