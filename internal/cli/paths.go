package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/config"
	"hgsc.dev/hgsc/internal/runtime"
)

func newPathsCmd() *cobra.Command {
	var writeTemplate bool

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the configured remote paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}
				paths := rc.Model.Paths()
				if len(paths) == 0 {
					rc.Splog.Info("no remote paths configured")
					if writeTemplate {
						path, err := config.WriteHgrcTemplate(rc.RepoRoot)
						if err != nil {
							return err
						}
						rc.Splog.Info("wrote %s; add a default path under [paths]", path)
					}
					return nil
				}
				for _, p := range paths {
					rc.Splog.Info("%s = %s", p.Name, p.URL)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&writeTemplate, "init-hgrc", false, "write an example .hg/hgrc when no paths exist")
	return cmd
}
