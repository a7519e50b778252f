package hg

import (
	"strings"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
)

// classifyStderr maps hg stderr output to one of the sentinel error kinds.
// Returns nil when the output matches no known condition.
//
// The match strings track hg's English output; HGPLAIN=1 keeps localization
// and user aliases from changing them underneath us.
func classifyStderr(stderr string) error {
	out := strings.ToLower(stderr)
	switch {
	case strings.Contains(out, "no repository found"):
		return hgscerrors.ErrNotARepository
	case strings.Contains(out, "authorization failed") ||
		strings.Contains(out, "authentication required") ||
		strings.Contains(out, "http error 401"):
		return hgscerrors.ErrAuthenticationFailed
	case strings.Contains(out, "repository is unrelated"):
		return hgscerrors.ErrUnrelatedRepository
	case strings.Contains(out, "default repository not configured") ||
		strings.Contains(out, "repository default not found") ||
		strings.Contains(out, "repository default does not exist"):
		return hgscerrors.ErrNoDefaultPath
	case strings.Contains(out, "push creates new remote head"):
		return hgscerrors.ErrPushCreatesNewRemoteHead
	case strings.Contains(out, "push creates new remote branches"):
		return hgscerrors.ErrPushCreatesNewRemoteBranches
	case strings.Contains(out, "untracked files in working directory differ"):
		return hgscerrors.ErrUntrackedFilesDiffer
	case strings.Contains(out, "uncommitted changes") ||
		strings.Contains(out, "crosses branches"):
		return hgscerrors.ErrDirtyWorkingDirectory
	}
	return nil
}
