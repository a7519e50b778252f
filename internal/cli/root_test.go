package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3", "abc1234", "2026-08-31")

	t.Run("carries version information", func(t *testing.T) {
		require.Contains(t, root.Version, "1.2.3")
		require.Contains(t, root.Version, "abc1234")
	})

	t.Run("registers the expected commands", func(t *testing.T) {
		names := map[string]bool{}
		for _, cmd := range root.Commands() {
			names[cmd.Name()] = true
		}
		for _, want := range []string{
			"init", "status", "stage", "unstage", "commit", "clean",
			"add", "forget", "addremove", "revert", "update",
			"pull", "push", "sync", "merge", "resolve", "rollback",
			"branch", "bookmark", "paths", "log", "heads", "tags",
			"annotate", "cat", "parents", "watch",
		} {
			require.True(t, names[want], "missing command %s", want)
		}
	})
}

func TestRepoRelative(t *testing.T) {
	repoRoot := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)

	t.Run("maps absolute paths inside the repository", func(t *testing.T) {
		paths := repoRelative(repoRoot, []string{filepath.Join(repoRoot, "dir", "a.txt")})
		require.Equal(t, []string{"dir/a.txt"}, paths)
	})

	t.Run("keeps paths outside the repository as given", func(t *testing.T) {
		outside := filepath.Join(wd, "b.txt")
		paths := repoRelative(repoRoot, []string{outside})
		require.Equal(t, []string{outside}, paths)
	})
}
