package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newRollbackCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Undo the last repository transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}
				details, err := rc.Model.Rollback(ctx, dryRun)
				if err != nil {
					return err
				}
				if dryRun {
					rc.Splog.Info("rollback would undo: %s", details.Kind)
					return nil
				}
				rc.Splog.Info("rolled back %s", details.Kind)
				if details.Kind == "commit" && !rc.Model.Groups().Staging.IsEmpty() {
					rc.Splog.Info("files from the undone commit are staged again")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be undone without doing it")
	return cmd
}
