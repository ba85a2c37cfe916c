package nodectl

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/renameio/v2"
)

func TestResolveNode(t *testing.T) {
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "n1"), 0o755); err != nil {
		t.Fatal(err)
	}

	node, err := ResolveNode(base, "n1")
	if err != nil {
		t.Fatal(err)
	}

	if node.Name != "n1" {
		t.Errorf("Name = %q, want %q", node.Name, "n1")
	}
	if !filepath.IsAbs(node.Dir) {
		t.Errorf("Dir = %q, want absolute path", node.Dir)
	}
	if int(node.UID) != os.Getuid() {
		t.Errorf("UID = %d, want %d", node.UID, os.Getuid())
	}
	if node.Owner == nil || node.Owner.Uid != strconv.Itoa(os.Getuid()) {
		t.Errorf("Owner = %+v, want current user", node.Owner)
	}

	if got, want := node.IsRootOwned(), os.Getuid() == 0; got != want {
		t.Errorf("IsRootOwned() = %v, want %v", got, want)
	}
}

func TestResolveNodeMissing(t *testing.T) {
	if _, err := ResolveNode(t.TempDir(), "absent"); err == nil {
		t.Error("expected error for missing node directory")
	}
}

func TestResolveNodeNotADirectory(t *testing.T) {
	base := t.TempDir()
	if err := renameio.WriteFile(filepath.Join(base, "plain"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ResolveNode(base, "plain"); err == nil {
		t.Error("expected error for non-directory node")
	}
}
