package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newMergeCmd() *cobra.Command {
	var revision string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge another head into the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Merge(ctx, revision); err != nil {
					return err
				}
				groups := rc.Model.Groups()
				if !groups.Conflict.IsEmpty() {
					rc.Splog.Warn("%d file(s) conflicted; resolve them and commit", groups.Conflict.Len())
					return nil
				}
				rc.Splog.Info("merged; commit to finish")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&revision, "rev", "r", "", "revision to merge")
	return cmd
}
