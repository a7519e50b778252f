package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newCommitCmd() *cobra.Command {
	var message string
	var addRemove bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit the staged changes, or everything when nothing is staged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}

				if message == "" {
					template, err := rc.Model.GetCommitTemplate(ctx)
					if err != nil {
						return err
					}
					prompt := &survey.Multiline{
						Message: "Commit message:",
						Default: template,
					}
					if err := survey.AskOne(prompt, &message); err != nil {
						return err
					}
				}
				if strings.TrimSpace(message) == "" {
					return errors.New("empty commit message")
				}

				if err := rc.Model.Commit(ctx, message, addRemove); err != nil {
					return err
				}
				rc.Splog.Info("committed")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVarP(&addRemove, "addremove", "A", false, "add new and forget missing files before committing")
	return cmd
}
