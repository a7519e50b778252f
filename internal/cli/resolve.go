package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newResolveCmd() *cobra.Command {
	var unmark bool

	cmd := &cobra.Command{
		Use:   "resolve <files...>",
		Short: "Mark conflicted files as resolved (or unresolved with --unmark)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				paths := repoRelative(rc.RepoRoot, args)
				if unmark {
					return rc.Model.Unresolve(ctx, paths...)
				}
				return rc.Model.Resolve(ctx, paths...)
			})
		},
	}

	cmd.Flags().BoolVarP(&unmark, "unmark", "u", false, "mark the files as unresolved again")
	return cmd
}
