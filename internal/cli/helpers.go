package cli

import (
	"context"
	"path/filepath"
	"strings"

	"hgsc.dev/hgsc/internal/runtime"
)

// withContext resolves the repository context, runs fn, and releases it
func withContext(cmd interface{ Context() context.Context }, fn func(ctx context.Context, rc *runtime.Context) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rc, err := runtime.GetContext(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()
	return fn(ctx, rc)
}

// repoRelative maps command line path arguments to repository-relative paths.
// Arguments are taken relative to the working directory the command runs in.
func repoRelative(repoRoot string, args []string) []string {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			paths = append(paths, arg)
			continue
		}
		rel, err := filepath.Rel(repoRoot, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}
