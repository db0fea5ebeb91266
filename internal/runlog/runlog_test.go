package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempLog(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "logs", "bootstrap.jsonl")
}

func record(t *testing.T, l *Log, run, step, status string) {
	t.Helper()
	if err := l.Record(Entry{RunID: run, Step: step, Status: status}); err != nil {
		t.Fatalf("record %s: %v", step, err)
	}
}

func TestSequentialWritesProduceValidChain(t *testing.T) {
	path := tempLog(t)

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	record(t, l, "run-1", "interpreter", StatusOK)
	record(t, l, "run-1", "environment", StatusOK)
	record(t, l, "run-1", "dependencies", StatusFailed)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("chain invalid: %s (line %d)", result.Error, result.ErrorLine)
	}
	if result.Lines != 3 {
		t.Errorf("lines = %d, want 3", result.Lines)
	}
	if result.Runs != 1 {
		t.Errorf("runs = %d, want 1", result.Runs)
	}
}

func TestFirstEntryCarriesGenesisHash(t *testing.T) {
	path := tempLog(t)

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	record(t, l, "run-1", "interpreter", StatusOK)
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), GenesisHash) {
		t.Error("first entry does not reference the genesis hash")
	}
}

func TestReopenContinuesChain(t *testing.T) {
	path := tempLog(t)

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	record(t, l, "run-1", "interpreter", StatusOK)
	record(t, l, "run-1", "environment", StatusOK)
	l.Close()

	// A second run appends to the same file and must pick up the tail.
	l, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	record(t, l, "run-2", "dependencies", StatusOK)
	l.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("chain broken across reopen: %s (line %d)", result.Error, result.ErrorLine)
	}
	if result.Lines != 3 {
		t.Errorf("lines = %d, want 3", result.Lines)
	}
	if result.Runs != 2 {
		t.Errorf("runs = %d, want 2", result.Runs)
	}
}

func TestVerifyDetectsTamperedEntry(t *testing.T) {
	path := tempLog(t)

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	record(t, l, "run-1", "interpreter", StatusOK)
	record(t, l, "run-1", "environment", StatusFailed)
	record(t, l, "run-1", "dependencies", StatusOK)
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"status":"failed"`, `"status":"ok"`, 1)
	if tampered == string(data) {
		t.Fatal("tamper replacement did not apply")
	}
	if err := os.WriteFile(path, []byte(tampered), 0o600); err != nil {
		t.Fatal(err)
	}

	result := Verify(path)
	if result.Valid {
		t.Fatal("tampered log verified as valid")
	}
	if result.ErrorLine != 3 {
		t.Errorf("break detected at line %d, want 3 (first entry after the edit)", result.ErrorLine)
	}
}

func TestVerifyDetectsDeletedEntry(t *testing.T) {
	path := tempLog(t)

	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	record(t, l, "run-1", "interpreter", StatusOK)
	record(t, l, "run-1", "environment", StatusOK)
	record(t, l, "run-1", "dependencies", StatusOK)
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	// Drop the middle entry.
	pruned := lines[0] + "\n" + lines[2] + "\n"
	if err := os.WriteFile(path, []byte(pruned), 0o600); err != nil {
		t.Fatal(err)
	}

	result := Verify(path)
	if result.Valid {
		t.Fatal("log with deleted entry verified as valid")
	}
	if result.ErrorLine != 2 {
		t.Errorf("break detected at line %d, want 2", result.ErrorLine)
	}
}

func TestVerifyRejectsForgedGenesis(t *testing.T) {
	path := tempLog(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	forged := `{"ts":"2026-01-01T00:00:00.000Z","run_id":"x","step":"interpreter","status":"ok","prev_hash":"sha256:deadbeef"}` + "\n"
	if err := os.WriteFile(path, []byte(forged), 0o600); err != nil {
		t.Fatal(err)
	}

	result := Verify(path)
	if result.Valid {
		t.Fatal("forged genesis verified as valid")
	}
	if result.ErrorLine != 1 {
		t.Errorf("break detected at line %d, want 1", result.ErrorLine)
	}
}

func TestVerifyMissingFile(t *testing.T) {
	result := Verify(filepath.Join(t.TempDir(), "nope.jsonl"))
	if result.Valid {
		t.Fatal("missing file verified as valid")
	}
}

func TestHashLineFormat(t *testing.T) {
	h := HashLine([]byte("hello"))
	if !strings.HasPrefix(h, "sha256:") || len(h) != len("sha256:")+64 {
		t.Errorf("HashLine = %q, want sha256:<64 hex chars>", h)
	}
}
