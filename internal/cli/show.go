package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newCatCmd() *cobra.Command {
	var rev string

	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a file's contents at a revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				paths := repoRelative(rc.RepoRoot, args)
				content, err := rc.Model.Show(ctx, paths[0], rev)
				if err != nil {
					return err
				}
				rc.Splog.Page(content)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&rev, "rev", "r", "", "revision to read the file at")
	return cmd
}

func newAnnotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "annotate <file>",
		Short: "Show per-line authorship for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				paths := repoRelative(rc.RepoRoot, args)
				lines, err := rc.Model.Annotate(ctx, paths[0])
				if err != nil {
					return err
				}
				for _, line := range lines {
					rc.Splog.Info("%s", line)
				}
				return nil
			})
		},
	}
}
