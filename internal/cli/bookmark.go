package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newBookmarkCmd() *cobra.Command {
	var remove bool
	var force bool

	cmd := &cobra.Command{
		Use:   "bookmark [name]",
		Short: "List bookmarks, set one, or remove one with --delete",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if len(args) == 0 {
					bookmarks, err := rc.Model.Bookmarks(ctx)
					if err != nil {
						return err
					}
					if len(bookmarks) == 0 {
						rc.Splog.Info("no bookmarks set")
						return nil
					}
					for _, b := range bookmarks {
						marker := " "
						if b.Active {
							marker = "*"
						}
						rc.Splog.Info("%s %s", marker, b.Name)
					}
					return nil
				}
				if remove {
					return rc.Model.RemoveBookmark(ctx, args[0])
				}
				return rc.Model.SetBookmark(ctx, args[0], force)
			})
		},
	}

	cmd.Flags().BoolVarP(&remove, "delete", "d", false, "remove the bookmark")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "move an existing bookmark")
	return cmd
}
