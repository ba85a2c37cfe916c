package nodectl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/renameio/v2"
)

func TestDiscoverNodes(t *testing.T) {
	base := t.TempDir()

	for _, name := range []string{"charlie", "alice", "bob"} {
		if err := os.Mkdir(filepath.Join(base, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	// Stray files must not be reported as nodes
	if err := renameio.WriteFile(filepath.Join(base, "README"), []byte("not a node\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := DiscoverNodes(base)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"alice", "bob", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("got %d nodes %v, want %d", len(names), names, len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDiscoverNodesEmpty(t *testing.T) {
	names, err := DiscoverNodes(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("got %v, want no nodes", names)
	}
}

func TestDiscoverNodesMissingBase(t *testing.T) {
	_, err := DiscoverNodes(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrBaseDirMissing) {
		t.Errorf("got %v, want ErrBaseDirMissing", err)
	}
}
