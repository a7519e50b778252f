package cli

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newCleanCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Discard all uncommitted changes in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if !force {
					confirmed := false
					prompt := &survey.Confirm{
						Message: "Discard all uncommitted changes? This cannot be undone.",
					}
					if err := survey.AskOne(prompt, &confirmed); err != nil {
						return err
					}
					if !confirmed {
						return nil
					}
				}
				if err := rc.Model.Clean(ctx); err != nil {
					return err
				}
				rc.Splog.Info("working directory cleaned")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
