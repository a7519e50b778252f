package hg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
)

// writeStub writes an executable shell script standing in for the hg binary
func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hg-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestCommandRunner(t *testing.T) {
	t.Run("run trims output", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t, `printf "  default\n"`), "")
		out, err := runner.Run(context.Background(), "branch")
		require.NoError(t, err)
		require.Equal(t, "default", out)
	})

	t.Run("run raw keeps output untouched", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t, `printf "line\n"`), "")
		out, err := runner.RunRaw(context.Background(), "cat", "a.txt")
		require.NoError(t, err)
		require.Equal(t, "line\n", out)
	})

	t.Run("run lines splits output", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t, `printf "a\nb\n"`), "")
		lines, err := runner.RunLines(context.Background(), "status")
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, lines)
	})

	t.Run("run lines yields no lines for empty output", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t, `true`), "")
		lines, err := runner.RunLines(context.Background(), "status")
		require.NoError(t, err)
		require.Empty(t, lines)
	})

	t.Run("failures carry the classified kind", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t,
			`echo "abort: no repository found in '/tmp' (.hg not found)" >&2; exit 255`), "")
		_, err := runner.Run(context.Background(), "root")
		require.Error(t, err)
		require.ErrorIs(t, err, hgscerrors.ErrNotARepository)

		var cmdErr *hgscerrors.HgCommandError
		require.ErrorAs(t, err, &cmdErr)
		require.Contains(t, cmdErr.Stderr, "no repository found")
		require.Equal(t, []string{"root"}, cmdErr.Args)
	})

	t.Run("unclassified exit 1 is recognized as benign", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t, `exit 1`), "")
		_, err := runner.Run(context.Background(), "incoming", "--quiet")
		require.Error(t, err)
		require.True(t, isBenignExit1(err))
	})

	t.Run("classified failures are never benign", func(t *testing.T) {
		runner := NewCommandRunner(writeStub(t, `echo "abort: authorization failed" >&2; exit 1`), "")
		_, err := runner.Run(context.Background(), "incoming")
		require.Error(t, err)
		require.False(t, isBenignExit1(err))
	})
}
