package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newRepoDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hg"), 0755))
	return root
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(newRepoDir(t))
		require.NoError(t, err)
		require.True(t, cfg.AutoInOut)
		require.True(t, cfg.AutoRefresh)
		require.False(t, cfg.UseBookmarks)
		require.Equal(t, DefaultCountDelay, cfg.CountDelay())
	})

	t.Run("round trips through save", func(t *testing.T) {
		root := newRepoDir(t)
		saved := &Config{UseBookmarks: true, AutoInOut: true, HgBinary: "/opt/hg", CountDelayMs: 250}
		require.NoError(t, Save(root, saved))

		cfg, err := Load(root)
		require.NoError(t, err)
		require.True(t, cfg.UseBookmarks)
		require.Equal(t, "/opt/hg", cfg.HgBinary)
		require.Equal(t, 250*time.Millisecond, cfg.CountDelay())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		root := newRepoDir(t)
		require.NoError(t, Save(root, &Config{HgBinary: "/opt/hg"}))

		t.Setenv("HGSC_HG_BINARY", "/usr/local/bin/hg")
		t.Setenv("HGSC_USE_BOOKMARKS", "1")
		t.Setenv("HGSC_COUNT_DELAY_MS", "10")
		t.Setenv("HGSC_AUTO_REFRESH", "false")

		cfg, err := Load(root)
		require.NoError(t, err)
		require.Equal(t, "/usr/local/bin/hg", cfg.HgBinary)
		require.True(t, cfg.UseBookmarks)
		require.Equal(t, 10*time.Millisecond, cfg.CountDelay())
		require.False(t, cfg.AutoRefresh)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		root := newRepoDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".hg", "hgsc.json"), []byte("{"), 0600))
		_, err := Load(root)
		require.Error(t, err)
	})
}

func TestStagedPaths(t *testing.T) {
	t.Run("absent file means nothing staged", func(t *testing.T) {
		require.Empty(t, LoadStagedPaths(newRepoDir(t)))
	})

	t.Run("round trips", func(t *testing.T) {
		root := newRepoDir(t)
		require.NoError(t, SaveStagedPaths(root, []string{"a.txt", "dir/b.txt"}))
		require.Equal(t, []string{"a.txt", "dir/b.txt"}, LoadStagedPaths(root))
	})

	t.Run("saving an empty set removes the file", func(t *testing.T) {
		root := newRepoDir(t)
		require.NoError(t, SaveStagedPaths(root, []string{"a.txt"}))
		require.NoError(t, SaveStagedPaths(root, nil))
		require.Empty(t, LoadStagedPaths(root))
		_, err := os.Stat(filepath.Join(root, ".hg", "hgsc-staged"))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("removing when nothing was saved is fine", func(t *testing.T) {
		require.NoError(t, SaveStagedPaths(newRepoDir(t), nil))
	})
}

func TestWriteHgrcTemplate(t *testing.T) {
	t.Run("writes the example file", func(t *testing.T) {
		root := newRepoDir(t)
		path, err := WriteHgrcTemplate(root)
		require.NoError(t, err)
		require.Equal(t, HgrcPath(root), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "[paths]")
	})

	t.Run("leaves an existing file untouched", func(t *testing.T) {
		root := newRepoDir(t)
		existing := []byte("[paths]\ndefault = https://example.com/repo\n")
		require.NoError(t, os.WriteFile(HgrcPath(root), existing, 0644))

		_, err := WriteHgrcTemplate(root)
		require.NoError(t, err)

		data, err := os.ReadFile(HgrcPath(root))
		require.NoError(t, err)
		require.Equal(t, existing, data)
	})
}
