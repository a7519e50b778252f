package hg

import (
	"context"
	"strings"
)

func (r *repository) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) Forget(ctx context.Context, paths ...string) error {
	args := append([]string{"forget"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) AddRemove(ctx context.Context, paths ...string) error {
	args := append([]string{"addremove", "-s", "50"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

// Revert reverts the given paths, or the whole working directory when all is true.
// Backup files are suppressed; the caller is expected to have confirmed the loss.
func (r *repository) Revert(ctx context.Context, all bool, paths ...string) error {
	args := []string{"revert", "--no-backup"}
	if all {
		args = append(args, "--all")
	}
	args = append(args, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) Resolve(ctx context.Context, mark bool, paths ...string) error {
	args := []string{"resolve"}
	if mark {
		args = append(args, "--mark")
	}
	args = append(args, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

func (r *repository) Unresolve(ctx context.Context, paths ...string) error {
	args := append([]string{"resolve", "--unmark"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

// Commit commits the given paths, or all outstanding changes when none are given
func (r *repository) Commit(ctx context.Context, message string, addRemove bool, paths ...string) error {
	args := []string{"commit"}
	if addRemove {
		args = append(args, "--addremove")
	}
	args = append(args, "-m", message)
	args = append(args, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

// GetCommitTemplate returns the configured commit template, empty when unset
func (r *repository) GetCommitTemplate(ctx context.Context) (string, error) {
	out, err := r.runner.Run(ctx, "config", "committemplate.changeset")
	if err != nil {
		// Unset config keys make hg exit non-zero; treat that as no template
		if isBenignExit1(err) {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// GetLastCommitFiles returns the files touched by the working directory's parent commit
func (r *repository) GetLastCommitFiles(ctx context.Context) ([]string, error) {
	lines, err := r.runner.RunLines(ctx, "status", "--change", ".", "-n")
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func (r *repository) Rollback(ctx context.Context, dryRun bool) (RollbackDetails, error) {
	args := []string{"rollback"}
	if dryRun {
		args = append(args, "--dry-run")
	}
	out, err := r.runner.Run(ctx, args...)
	if err != nil {
		return RollbackDetails{}, err
	}
	return parseRollbackOutput(out), nil
}

// parseRollbackOutput extracts the transaction kind and target revision from
// rollback output such as:
//
//	repository tip rolled back to revision 3 (undo commit)
//	working directory now based on revision 2
func parseRollbackOutput(out string) RollbackDetails {
	details := RollbackDetails{Revision: -1}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if idx := strings.Index(line, "(undo "); idx >= 0 {
			kind := line[idx+len("(undo "):]
			details.Kind = strings.TrimSuffix(kind, ")")
		}
		const marker = "rolled back to revision "
		if idx := strings.Index(line, marker); idx >= 0 {
			rest := line[idx+len(marker):]
			if sp := strings.IndexByte(rest, ' '); sp >= 0 {
				rest = rest[:sp]
			}
			details.Revision = parseRevision(rest)
		}
	}
	return details
}
