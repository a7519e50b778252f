package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull from and push to the default path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Sync(ctx); err != nil {
					return err
				}
				counts := rc.Model.SyncCounts()
				rc.Splog.Info("synced (incoming %d, outgoing %d)", counts.Incoming, counts.Outgoing)
				return nil
			})
		},
	}
}
