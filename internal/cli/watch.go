package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/model"
	"hgsc.dev/hgsc/internal/runtime"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the repository and report changes as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if rc.Watcher == nil {
					return errors.New("auto refresh is disabled; enable it to use watch")
				}

				rc.Model.OnResourcesChanged(func() {
					groups := rc.Model.Groups()
					rc.Splog.Info("changes: %d staged, %d working, %d untracked, %d merge, %d conflicted",
						groups.Staging.Len(), groups.Working.Len(), groups.Untracked.Len(),
						groups.Merge.Len(), groups.Conflict.Len())
				})
				rc.Model.OnStateChanged(func(state model.State) {
					rc.Splog.Warn("repository state: %s", state)
				})
				rc.Model.OnSyncChanged(func() {
					if msg := rc.Model.AutoRefreshError(); msg != "" {
						rc.Splog.Warn("sync counting paused: %s", msg)
						return
					}
					counts := rc.Model.SyncCounts()
					rc.Splog.Info("sync: %d incoming, %d outgoing", counts.Incoming, counts.Outgoing)
				})

				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}

				var countTick <-chan time.Time
				if rc.Config.AutoInOut {
					ticker := time.NewTicker(interval)
					defer ticker.Stop()
					countTick = ticker.C
				}

				for {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-rc.Watcher.Events():
						if !rc.Watcher.ShouldRefresh(time.Now()) {
							continue
						}
						if err := rc.Model.Refresh(ctx); err != nil {
							rc.Splog.Warn("refresh failed: %v", err)
						}
					case <-countTick:
						if err := rc.Model.WhenIdle(ctx); err != nil {
							return err
						}
						if err := rc.Model.CountIncomingAfterDelay(ctx, 0); err != nil {
							rc.Splog.Debug("incoming count failed: %v", err)
						}
						if err := rc.Model.CountOutgoingAfterDelay(ctx, 0); err != nil {
							rc.Splog.Debug("outgoing count failed: %v", err)
						}
					}
				}
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "count-interval", 3*time.Minute, "how often to recount incoming/outgoing changesets")
	return cmd
}
