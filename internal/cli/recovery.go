package cli

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"hgsc.dev/hgsc/internal/config"
	hgscerrors "hgsc.dev/hgsc/internal/errors"
	"hgsc.dev/hgsc/internal/runtime"
)

// pullWithRecovery pulls, offering the hgrc recovery prompt when no default
// path is configured.
func pullWithRecovery(ctx context.Context, rc *runtime.Context, update bool) error {
	err := rc.Model.Pull(ctx, update)
	if errors.Is(err, hgscerrors.ErrNoDefaultPath) {
		return offerDefaultPathRecovery(rc, err)
	}
	return err
}

// pushWithRecovery pushes, handling the recoverable push refusals: a new
// remote head offers a pull first, new remote branches offer a retry with
// --new-branch.
func pushWithRecovery(ctx context.Context, rc *runtime.Context, path string) error {
	err := rc.Model.Push(ctx, path, false)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hgscerrors.ErrNoDefaultPath):
		return offerDefaultPathRecovery(rc, err)
	case errors.Is(err, hgscerrors.ErrPushCreatesNewRemoteHead):
		pull := false
		prompt := &survey.Confirm{
			Message: "Push would create a new remote head. Pull remote changes first?",
			Default: true,
		}
		if askErr := survey.AskOne(prompt, &pull); askErr != nil || !pull {
			return err
		}
		if pullErr := rc.Model.Pull(ctx, true); pullErr != nil {
			return pullErr
		}
		rc.Splog.Info("pulled remote changes; push again once any merge is resolved")
		return nil
	case errors.Is(err, hgscerrors.ErrPushCreatesNewRemoteBranches):
		allow := false
		prompt := &survey.Confirm{
			Message: "Push would create new remote branches. Push anyway?",
		}
		if askErr := survey.AskOne(prompt, &allow); askErr != nil || !allow {
			return err
		}
		return rc.Model.Push(ctx, path, true)
	}
	return err
}

// offerDefaultPathRecovery offers to write the commented hgrc template so the
// user has somewhere to configure a default path.
func offerDefaultPathRecovery(rc *runtime.Context, cause error) error {
	create := false
	prompt := &survey.Confirm{
		Message: "No default path is configured. Create an example .hg/hgrc to edit?",
		Default: true,
	}
	if err := survey.AskOne(prompt, &create); err != nil || !create {
		return cause
	}
	path, err := config.WriteHgrcTemplate(rc.RepoRoot)
	if err != nil {
		return err
	}
	rc.Splog.Info("wrote %s; add a default path under [paths]", path)
	return cause
}

func newPushCmd() *cobra.Command {
	var allowNewBranch bool

	cmd := &cobra.Command{
		Use:   "push [path]",
		Short: "Push changes to a remote path (default path when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContext(cmd, func(ctx context.Context, rc *runtime.Context) error {
				path := ""
				if len(args) > 0 {
					path = args[0]
				}
				var err error
				if allowNewBranch {
					err = rc.Model.Push(ctx, path, true)
				} else {
					err = pushWithRecovery(ctx, rc, path)
				}
				if err != nil {
					return err
				}
				rc.Splog.Info("push complete")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allowNewBranch, "new-branch", false, "allow pushing a new branch")
	return cmd
}
