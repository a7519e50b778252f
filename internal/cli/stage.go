package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage [files...]",
		Short: "Move working changes into the staging group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}
				rc.Model.Stage(repoRelative(rc.RepoRoot, args)...)
				rc.Splog.Info("%d file(s) staged", rc.Model.Groups().Staging.Len())
				return nil
			})
		},
	}
}

func newUnstageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unstage [files...]",
		Short: "Move staged changes back to the working group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}
				rc.Model.Unstage(repoRelative(rc.RepoRoot, args)...)
				rc.Splog.Info("%d file(s) staged", rc.Model.Groups().Staging.Len())
				return nil
			})
		},
	}
}
