package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/runtime"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changesets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				entries, err := rc.Model.LogEntries(ctx, limit)
				if err != nil {
					return err
				}
				for _, e := range entries {
					rc.Splog.Info("%d:%s %s %s  %s", e.Revision, e.Node, e.Branch, e.Author, e.Message)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number of changesets")
	return cmd
}

func newParentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parents",
		Short: "Show the working directory parents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				parents, err := rc.Model.GetParents(ctx)
				if err != nil {
					return err
				}
				for _, p := range parents {
					rc.Splog.Info("%d:%s %s  %s", p.Revision, p.Node, p.Branch, p.Message)
				}
				return nil
			})
		},
	}
}

func newHeadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heads",
		Short: "Show the repository heads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				heads, err := rc.Model.Heads(ctx)
				if err != nil {
					return err
				}
				if len(heads) == 0 {
					rc.Splog.Info("no heads")
					return nil
				}
				for _, h := range heads {
					rc.Splog.Info("%d:%s %s %s  %s", h.Revision, h.Node, h.Branch, h.Author, h.Message)
				}
				return nil
			})
		},
	}
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				tags, err := rc.Model.Tags(ctx)
				if err != nil {
					return err
				}
				for _, tag := range tags {
					rc.Splog.Info("%s", tag)
				}
				return nil
			})
		},
	}
}
