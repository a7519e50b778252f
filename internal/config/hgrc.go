package config

import (
	"os"
	"path/filepath"
)

const hgrcTemplate = `# Mercurial repository configuration
#
# [paths]
# default = https://example.com/hg/repo
`

// HgrcPath returns the path of the repository-level hgrc file
func HgrcPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".hg", "hgrc")
}

// WriteHgrcTemplate creates .hg/hgrc with a commented example remote-path
// entry. An existing file is left untouched. Returns the file path.
func WriteHgrcTemplate(repoRoot string) (string, error) {
	path := HgrcPath(repoRoot)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, []byte(hgrcTemplate), 0644); err != nil {
		return "", err
	}
	return path, nil
}
