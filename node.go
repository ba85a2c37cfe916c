package nodectl

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/axondata/go-nodectl/internal/unix"
)

// Node is a single daemon instance, identified by a subdirectory of the
// base directory. The owning user of the directory is the identity the
// daemon is invoked under.
type Node struct {
	// Name is the node's directory name
	Name string

	// Dir is the absolute path to the node directory
	Dir string

	// UID is the owning uid of the directory
	UID uint32

	// Owner is the resolved owning user
	Owner *user.User
}

// ResolveNode stats the node directory under baseDir and resolves its
// owning user. The directory must exist and be a directory.
func ResolveNode(baseDir, name string) (Node, error) {
	dir := filepath.Join(baseDir, name)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Node{}, fmt.Errorf("resolving node dir: %w", err)
	}

	fi, err := os.Stat(absDir)
	if err != nil {
		return Node{}, fmt.Errorf("stat node dir: %w", err)
	}
	if !fi.IsDir() {
		return Node{}, fmt.Errorf("node %q: %s is not a directory", name, absDir)
	}

	uid, ok := unix.FileUID(fi)
	if !ok {
		return Node{}, fmt.Errorf("node %q: no ownership metadata for %s", name, absDir)
	}

	owner, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return Node{}, fmt.Errorf("node %q: looking up uid %d: %w", name, uid, err)
	}

	return Node{
		Name:  name,
		Dir:   absDir,
		UID:   uid,
		Owner: owner,
	}, nil
}

// IsRootOwned reports whether the node directory is owned by the superuser.
func (n Node) IsRootOwned() bool {
	return n.UID == 0
}
