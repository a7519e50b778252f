// Package cli implements the hgsc command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hgsc",
		Short: "hgsc tracks and manages changes in a Mercurial working directory",
		Long: `hgsc tracks and manages changes in a Mercurial working directory.

It reconciles hg status output into staged, working, untracked, merge and
conflicted change groups, and serializes repository operations against a
single repository root.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newStageCmd(),
		newUnstageCmd(),
		newCommitCmd(),
		newCleanCmd(),
		newAddCmd(),
		newForgetCmd(),
		newAddRemoveCmd(),
		newRevertCmd(),
		newUpdateCmd(),
		newPullCmd(),
		newPushCmd(),
		newSyncCmd(),
		newMergeCmd(),
		newResolveCmd(),
		newRollbackCmd(),
		newBranchCmd(),
		newBookmarkCmd(),
		newPathsCmd(),
		newLogCmd(),
		newHeadsCmd(),
		newTagsCmd(),
		newAnnotateCmd(),
		newCatCmd(),
		newParentsCmd(),
		newWatchCmd(),
	)

	return rootCmd
}
