package hg

import (
	"context"
	"errors"
	"os/exec"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
)

func (r *repository) Branch(ctx context.Context, name string, force bool) error {
	args := []string{"branch"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, name)
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) Update(ctx context.Context, ref string, clean bool) error {
	args := []string{"update"}
	if clean {
		args = append(args, "--clean")
	}
	if ref != "" {
		args = append(args, ref)
	}
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) SetBookmark(ctx context.Context, name string, force bool) error {
	args := []string{"bookmark"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, name)
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) RemoveBookmark(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "bookmark", "--delete", name)
	return err
}

func (r *repository) Pull(ctx context.Context, update bool) error {
	args := []string{"pull"}
	if update {
		args = append(args, "--update")
	}
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) Push(ctx context.Context, path string, allowNewBranch bool) error {
	args := []string{"push"}
	if allowNewBranch {
		args = append(args, "--new-branch")
	}
	if path != "" {
		args = append(args, path)
	}
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) Merge(ctx context.Context, revision string) error {
	args := []string{"merge"}
	if revision != "" {
		args = append(args, "--rev", revision)
	}
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) CountIncoming(ctx context.Context) (int, error) {
	return r.countChangesets(ctx, "incoming")
}

func (r *repository) CountOutgoing(ctx context.Context) (int, error) {
	return r.countChangesets(ctx, "outgoing")
}

// countChangesets counts changesets reported by `hg incoming`/`hg outgoing`.
// Both commands exit 1 when there is nothing to report; that is a zero count,
// not a failure.
func (r *repository) countChangesets(ctx context.Context, command string) (int, error) {
	lines, err := r.runner.RunLines(ctx, command, "--quiet", "--template", "{rev}\n")
	if err != nil {
		if isBenignExit1(err) {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for _, line := range lines {
		if line != "" {
			count++
		}
	}
	return count, nil
}

// isBenignExit1 reports whether err is an unclassified hg failure with exit
// code 1, which several hg commands use to mean "nothing found".
func isBenignExit1(err error) bool {
	var cmdErr *hgscerrors.HgCommandError
	if !errors.As(err, &cmdErr) || cmdErr.Kind != nil {
		return false
	}
	var exitErr *exec.ExitError
	return errors.As(cmdErr.Err, &exitErr) && exitErr.ExitCode() == 1
}
