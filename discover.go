package nodectl

import (
	"fmt"
	"os"
	"sort"
)

// DiscoverNodes lists the immediate subdirectories of baseDir, sorted by
// name. Regular files and symlinks in the base directory are ignored.
func DiscoverNodes(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBaseDirMissing, baseDir)
		}
		return nil, fmt.Errorf("reading base dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}
