package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/config"
	"hgsc.dev/hgsc/internal/hg"
	"hgsc.dev/hgsc/internal/model"
	"hgsc.dev/hgsc/internal/runtime"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new repository in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			// No repository exists yet, so build the model directly
			// instead of resolving a context.
			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			repo := hg.NewRepository(cfg.HgBinary, cwd)
			m := model.New(repo, cwd, cfg)
			rc := runtime.NewContext(m, cfg, cwd)
			defer rc.Close()

			if err := m.Init(ctx); err != nil {
				return err
			}
			rc.Splog.Info("initialized repository in %s", cwd)
			return nil
		},
	}
}
