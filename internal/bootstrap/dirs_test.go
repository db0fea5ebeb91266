package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLayoutDirs(t *testing.T) {
	l := Layout{Root: "/srv/trustlens"}

	want := []string{
		"/srv/trustlens/data",
		"/srv/trustlens/data/chromadb",
		"/srv/trustlens/data/security",
		"/srv/trustlens/logs",
		"/srv/trustlens/frontend/public",
		"/srv/trustlens/frontend/src",
	}
	got := l.Dirs()
	if len(got) != len(want) {
		t.Fatalf("Dirs() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dirs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnsureCreatesLayout(t *testing.T) {
	l := Layout{Root: t.TempDir()}

	if err := l.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	for _, dir := range l.Dirs() {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("missing directory %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s exists but is not a directory", dir)
		}
	}

	// Re-running over an existing layout must succeed.
	if err := l.Ensure(); err != nil {
		t.Errorf("second Ensure: %v", err)
	}
}

func TestProvisionDirectoriesFailureCarriesError(t *testing.T) {
	root := t.TempDir()
	// A file where the data directory should go forces MkdirAll to fail.
	if err := os.WriteFile(filepath.Join(root, "data"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := ProvisionDirectories(Layout{Root: root})
	if result.OK {
		t.Fatal("ProvisionDirectories succeeded despite blocked path")
	}
	if result.Err == nil {
		t.Error("failure did not carry a propagating error")
	}
}
