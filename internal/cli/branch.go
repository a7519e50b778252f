package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newBranchCmd() *cobra.Command {
	var force bool
	var list bool

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "Show the current branch, or open a new named branch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if list {
					branches, err := rc.Model.Branches(ctx)
					if err != nil {
						return err
					}
					for _, branch := range branches {
						rc.Splog.Info("%s", branch)
					}
					return nil
				}
				if len(args) == 0 {
					if err := rc.Model.Refresh(ctx); err != nil {
						return err
					}
					rc.Splog.Info("%s", rc.Model.CurrentBranch())
					return nil
				}
				if err := rc.Model.Branch(ctx, args[0], force); err != nil {
					return err
				}
				rc.Splog.Info("marked working directory as branch %s", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reuse an existing branch name")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list all named branches")
	return cmd
}
