package hg

import (
	"testing"

	"github.com/stretchr/testify/require"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
)

func TestClassifyStderr(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{
			name:   "no repository",
			stderr: "abort: no repository found in '/tmp/x' (.hg not found)",
			want:   hgscerrors.ErrNotARepository,
		},
		{
			name:   "authorization failed",
			stderr: "abort: authorization failed",
			want:   hgscerrors.ErrAuthenticationFailed,
		},
		{
			name:   "http 401",
			stderr: "abort: HTTP Error 401: Unauthorized",
			want:   hgscerrors.ErrAuthenticationFailed,
		},
		{
			name:   "unrelated repository",
			stderr: "abort: repository is unrelated",
			want:   hgscerrors.ErrUnrelatedRepository,
		},
		{
			name:   "no default path",
			stderr: "abort: repository default not found",
			want:   hgscerrors.ErrNoDefaultPath,
		},
		{
			name:   "new remote head",
			stderr: "abort: push creates new remote head 1e108cc5548c",
			want:   hgscerrors.ErrPushCreatesNewRemoteHead,
		},
		{
			name:   "new remote branches",
			stderr: "abort: push creates new remote branches: topic",
			want:   hgscerrors.ErrPushCreatesNewRemoteBranches,
		},
		{
			name:   "untracked files differ",
			stderr: "abort: untracked files in working directory differ from files in requested revision: 'a.txt'",
			want:   hgscerrors.ErrUntrackedFilesDiffer,
		},
		{
			name:   "dirty working directory",
			stderr: "abort: uncommitted changes",
			want:   hgscerrors.ErrDirtyWorkingDirectory,
		},
		{
			name:   "unrecognized output",
			stderr: "abort: connection refused",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, classifyStderr(tt.stderr))
		})
	}
}

func TestHgCommandErrorMatching(t *testing.T) {
	err := hgscerrors.NewHgCommandError("hg", []string{"push"}, "", "abort: push creates new remote head",
		hgscerrors.ErrPushCreatesNewRemoteHead, nil)

	require.ErrorIs(t, err, hgscerrors.ErrPushCreatesNewRemoteHead)
	require.NotErrorIs(t, err, hgscerrors.ErrNotARepository)

	unclassified := hgscerrors.NewHgCommandError("hg", nil, "", "abort: weird", nil, nil)
	require.NotErrorIs(t, unclassified, hgscerrors.ErrNotARepository)
}
