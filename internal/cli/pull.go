package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newPullCmd() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull changes from the default path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := pullWithRecovery(ctx, rc, update); err != nil {
					return err
				}
				rc.Splog.Info("pull complete")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&update, "update", "u", false, "update the working directory after pulling")
	return cmd
}
