package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [files...]",
		Short: "Schedule untracked files for addition, all of them when none given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return rc.Model.Add(ctx, repoRelative(rc.RepoRoot, args)...)
			})
		},
	}
}

func newForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <files...>",
		Short: "Stop tracking files without deleting them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return rc.Model.Forget(ctx, repoRelative(rc.RepoRoot, args)...)
			})
		},
	}
}

func newAddRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addremove [files...]",
		Short: "Add new files and forget missing ones in a single pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return rc.Model.AddRemove(ctx, repoRelative(rc.RepoRoot, args)...)
			})
		},
	}
}

func newRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <files...>",
		Short: "Discard uncommitted changes to the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				return rc.Model.RevertFiles(ctx, repoRelative(rc.RepoRoot, args)...)
			})
		},
	}
}
