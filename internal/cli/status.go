package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/output"
	"hgsc.dev/hgsc/internal/resources"
	"hgsc.dev/hgsc/internal/runtime"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the reconciled change groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				if err := rc.Model.Refresh(ctx); err != nil {
					return err
				}

				colored := output.ColorEnabled()
				groups := rc.Model.Groups()

				if ref := rc.Model.CurrentRef(); ref != "" {
					rc.Splog.Info("on %s", ref)
				}
				if rc.Model.Summary().IsMerge {
					rc.Splog.Warn("merge in progress")
				}

				printGroup(rc, groups.Conflict, colored)
				printGroup(rc, groups.Merge, colored)
				printGroup(rc, groups.Staging, colored)
				printGroup(rc, groups.Working, colored)
				printGroup(rc, groups.Untracked, colored)

				if groups.TotalLen() == 0 {
					rc.Splog.Info("working directory clean")
				}
				return nil
			})
		},
	}
}

func printGroup(rc *runtime.Context, group resources.Group, colored bool) {
	if group.IsEmpty() {
		return
	}
	rc.Splog.Info("%s:", output.GroupHeader(group.Label(), colored))
	for _, r := range group.Resources() {
		line := fmt.Sprintf("  %s %s", output.StatusLetter(r.Status()), r.Path())
		if r.RenameSource() != "" {
			line += fmt.Sprintf(" (from %s)", r.RenameSource())
		}
		rc.Splog.Info("%s", output.ColorizeStatus(r, line, colored))
	}
}
