package config

import (
	"os"
	"path/filepath"
	"strings"
)

func stagingPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".hg", "hgsc-staged")
}

// LoadStagedPaths reads the persisted staged path set, empty when absent.
// Staging is an hgsc concept layered over hg, so it is persisted next to the
// rest of the repository metadata.
func LoadStagedPaths(repoRoot string) []string {
	data, err := os.ReadFile(stagingPath(repoRoot))
	if err != nil {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// SaveStagedPaths persists the staged path set, removing the file when empty
func SaveStagedPaths(repoRoot string, paths []string) error {
	if len(paths) == 0 {
		err := os.Remove(stagingPath(repoRoot))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return os.WriteFile(stagingPath(repoRoot), []byte(strings.Join(paths, "\n")+"\n"), 0600)
}
