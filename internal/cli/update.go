package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
	"hgsc.dev/hgsc/internal/runtime"
)

func newUpdateCmd() *cobra.Command {
	var clean bool

	cmd := &cobra.Command{
		Use:   "update [ref]",
		Short: "Update the working directory to a branch, bookmark or revision",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				ref := ""
				if len(args) > 0 {
					ref = args[0]
				}
				err := rc.Model.Update(ctx, ref, clean)
				if errors.Is(err, hgscerrors.ErrDirtyWorkingDirectory) {
					rc.Splog.Warn("uncommitted changes block the update; commit them or pass --clean to discard")
					return err
				}
				if err != nil {
					return err
				}
				rc.Splog.Info("updated to %s", rc.Model.CurrentRef())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&clean, "clean", "C", false, "discard uncommitted changes")
	return cmd
}
