package model

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
	"hgsc.dev/hgsc/internal/hg"
	"hgsc.dev/hgsc/internal/resources"
)

// Refresh re-derives the full model state. Concurrent calls collapse into the
// in-flight refresh.
func (m *Model) Refresh(ctx context.Context) error {
	return m.coalesced(OperationStatus, func() error {
		return m.run(ctx, OperationStatus, func(context.Context) error { return nil })
	})
}

// Init creates a new repository at the model root
func (m *Model) Init(ctx context.Context) error {
	return m.run(ctx, OperationInit, func(ctx context.Context) error {
		return m.repo.Init(ctx)
	})
}

// Add schedules the given untracked files for addition, or all when none given
func (m *Model) Add(ctx context.Context, paths ...string) error {
	return m.run(ctx, OperationAdd, func(ctx context.Context) error {
		return m.repo.Add(ctx, paths...)
	})
}

// Forget stops tracking the given files without deleting them
func (m *Model) Forget(ctx context.Context, paths ...string) error {
	return m.run(ctx, OperationForget, func(ctx context.Context) error {
		return m.repo.Forget(ctx, paths...)
	})
}

// AddRemove adds new files and forgets missing ones in a single pass
func (m *Model) AddRemove(ctx context.Context, paths ...string) error {
	return m.run(ctx, OperationAddRemove, func(ctx context.Context) error {
		return m.repo.AddRemove(ctx, paths...)
	})
}

// RevertFiles discards uncommitted changes to the given files
func (m *Model) RevertFiles(ctx context.Context, paths ...string) error {
	return m.run(ctx, OperationRevertFiles, func(ctx context.Context) error {
		return m.repo.Revert(ctx, false, paths...)
	})
}

// Clean discards all uncommitted changes in the working directory
func (m *Model) Clean(ctx context.Context) error {
	return m.run(ctx, OperationClean, func(ctx context.Context) error {
		return m.repo.Revert(ctx, true)
	})
}

// Commit commits the staged files, or everything when nothing is staged
func (m *Model) Commit(ctx context.Context, message string, addRemove bool) error {
	m.mu.Lock()
	staged := make([]string, 0, m.groups.Staging.Len())
	for _, r := range m.groups.Staging.Resources() {
		staged = append(staged, r.Path())
	}
	m.mu.Unlock()

	return m.run(ctx, OperationCommit, func(ctx context.Context) error {
		return m.repo.Commit(ctx, message, addRemove, staged...)
	})
}

// GetCommitTemplate returns the configured commit template.
// Read-only: completing it does not refresh model state.
func (m *Model) GetCommitTemplate(ctx context.Context) (string, error) {
	var template string
	err := m.run(ctx, OperationGetCommitTemplate, func(ctx context.Context) error {
		var err error
		template, err = m.repo.GetCommitTemplate(ctx)
		return err
	})
	return template, err
}

// Branch opens a new named branch for the next commit
func (m *Model) Branch(ctx context.Context, name string, force bool) error {
	return m.run(ctx, OperationBranch, func(ctx context.Context) error {
		return m.repo.Branch(ctx, name, force)
	})
}

// Update updates the working directory to the given ref
func (m *Model) Update(ctx context.Context, ref string, clean bool) error {
	return m.run(ctx, OperationUpdate, func(ctx context.Context) error {
		return m.repo.Update(ctx, ref, clean)
	})
}

// SetBookmark creates a bookmark at the working directory parent
func (m *Model) SetBookmark(ctx context.Context, name string, force bool) error {
	return m.run(ctx, OperationSetBookmark, func(ctx context.Context) error {
		return m.repo.SetBookmark(ctx, name, force)
	})
}

// RemoveBookmark deletes a bookmark
func (m *Model) RemoveBookmark(ctx context.Context, name string) error {
	return m.run(ctx, OperationRemoveBookmark, func(ctx context.Context) error {
		return m.repo.RemoveBookmark(ctx, name)
	})
}

// Resolve marks the given files as resolved
func (m *Model) Resolve(ctx context.Context, paths ...string) error {
	return m.run(ctx, OperationResolve, func(ctx context.Context) error {
		return m.repo.Resolve(ctx, true, paths...)
	})
}

// Unresolve marks the given files as unresolved again
func (m *Model) Unresolve(ctx context.Context, paths ...string) error {
	return m.run(ctx, OperationUnresolve, func(ctx context.Context) error {
		return m.repo.Unresolve(ctx, paths...)
	})
}

// Pull pulls from the default path, optionally updating the working directory
func (m *Model) Pull(ctx context.Context, update bool) error {
	return m.run(ctx, OperationPull, func(ctx context.Context) error {
		return m.repo.Pull(ctx, update)
	})
}

// Push pushes to the given path (default path when empty). When the remote
// refuses new heads or branches the typed error reaches the caller, which may
// retry with allowNewBranch or pull first.
func (m *Model) Push(ctx context.Context, path string, allowNewBranch bool) error {
	err := m.run(ctx, OperationPush, func(ctx context.Context) error {
		return m.repo.Push(ctx, path, allowNewBranch)
	})
	if err == nil {
		m.mu.Lock()
		m.lastPushPath = path
		m.mu.Unlock()
	}
	return err
}

// Sync pulls from and then pushes to the default path
func (m *Model) Sync(ctx context.Context) error {
	return m.run(ctx, OperationSync, func(ctx context.Context) error {
		if err := m.repo.Pull(ctx, false); err != nil {
			return err
		}
		err := m.repo.Push(ctx, "", false)
		if err != nil && errors.Is(err, hgscerrors.ErrPushCreatesNewRemoteHead) {
			// Nothing of ours to push after the pull merged in
			return nil
		}
		return err
	})
}

// Merge merges the given revision into the working directory. Untracked-file
// conflicts are rethrown with workspace-relative paths, since callers reason
// in workspace terms.
func (m *Model) Merge(ctx context.Context, revision string) error {
	err := m.run(ctx, OperationMerge, func(ctx context.Context) error {
		return m.repo.Merge(ctx, revision)
	})
	if err != nil && errors.Is(err, hgscerrors.ErrUntrackedFilesDiffer) {
		return m.remapUntrackedConflict(err)
	}
	return err
}

func (m *Model) remapUntrackedConflict(err error) error {
	var cmdErr *hgscerrors.HgCommandError
	if !errors.As(err, &cmdErr) {
		return err
	}
	files := parseQuotedPaths(cmdErr.Stderr)
	if len(files) == 0 {
		return err
	}
	for i, f := range files {
		files[i] = filepath.Join(m.root, filepath.FromSlash(f))
	}
	return fmt.Errorf("untracked files differ from the requested revision: %s: %w",
		strings.Join(files, ", "), err)
}

// parseQuotedPaths extracts 'single quoted' tokens from hg abort output
func parseQuotedPaths(s string) []string {
	var paths []string
	for {
		start := strings.IndexByte(s, '\'')
		if start < 0 {
			break
		}
		s = s[start+1:]
		end := strings.IndexByte(s, '\'')
		if end < 0 {
			break
		}
		if end > 0 {
			paths = append(paths, s[:end])
		}
		s = s[end+1:]
	}
	return paths
}

// Show returns the contents of a file at a revision.
// Read-only: completing it does not refresh model state.
func (m *Model) Show(ctx context.Context, path, ref string) (string, error) {
	var content string
	err := m.run(ctx, OperationShow, func(ctx context.Context) error {
		var err error
		content, err = m.repo.Cat(ctx, path, ref)
		return err
	})
	return content, err
}

// Annotate returns per-line authorship for a file
func (m *Model) Annotate(ctx context.Context, path string) ([]string, error) {
	var lines []string
	err := m.run(ctx, OperationAnnotate, func(ctx context.Context) error {
		var err error
		lines, err = m.repo.Annotate(ctx, path)
		return err
	})
	return lines, err
}

// GetParents returns the working directory parents
func (m *Model) GetParents(ctx context.Context) ([]hg.LogEntry, error) {
	var parents []hg.LogEntry
	err := m.run(ctx, OperationParents, func(ctx context.Context) error {
		var err error
		parents, err = m.repo.GetParents(ctx, "")
		return err
	})
	return parents, err
}

// Rollback undoes the last repository transaction. After a non-dry-run
// rollback of a commit, files from the undone commit that land back in the
// working group are re-staged, preserving the user's staging intent.
func (m *Model) Rollback(ctx context.Context, dryRun bool) (hg.RollbackDetails, error) {
	op := OperationRollback
	if dryRun {
		op = OperationRollbackDryRun
	}

	var commitFiles []string
	if !dryRun {
		peek, err := m.repo.Rollback(ctx, true)
		if err != nil {
			return hg.RollbackDetails{}, err
		}
		if peek.Kind == "commit" {
			commitFiles, err = m.repo.GetLastCommitFiles(ctx)
			if err != nil {
				return hg.RollbackDetails{}, err
			}
		}
	}

	var details hg.RollbackDetails
	err := m.run(ctx, op, func(ctx context.Context) error {
		var err error
		details, err = m.repo.Rollback(ctx, dryRun)
		return err
	})
	if err != nil {
		return details, err
	}

	if !dryRun && details.Kind == "commit" && len(commitFiles) > 0 {
		m.Stage(commitFiles...)
	}
	return details, nil
}

// Stage moves the given working resources into the staging group, or all of
// them when no paths are given. No external state changed, so the groups are
// recombined directly instead of reconciling.
func (m *Model) Stage(paths ...string) {
	m.startOperation(OperationStage)
	defer m.endOperation(OperationStage)

	m.mu.Lock()
	selected := m.selectLocked(m.groups.Working, paths)
	groups := m.groups
	groups.Staging = groups.Staging.Intersect(selected)
	groups.Working = groups.Working.Except(selected)
	m.groups = groups
	m.mu.Unlock()

	m.notifyResourcesChanged()
}

// Unstage moves the given staged resources back to the working group, or all
// of them when no paths are given
func (m *Model) Unstage(paths ...string) {
	m.startOperation(OperationStage)
	defer m.endOperation(OperationStage)

	m.mu.Lock()
	selected := m.selectLocked(m.groups.Staging, paths)
	groups := m.groups
	groups.Working = groups.Working.Intersect(selected)
	groups.Staging = groups.Staging.Except(selected)
	m.groups = groups
	m.mu.Unlock()

	m.notifyResourcesChanged()
}

// SeedStaging pre-populates the staging group with path membership, used to
// restore persisted staging decisions before the first reconciliation. The
// placeholder statuses are replaced by the first refresh; only membership
// matters for routing.
func (m *Model) SeedStaging(paths []string) {
	if len(paths) == 0 {
		return
	}
	seeded := make([]resources.Resource, 0, len(paths))
	for _, path := range paths {
		r, err := resources.NewResource(resources.KindStaging, path, resources.StatusModified, resources.MergeStatusNone, "")
		if err != nil {
			continue
		}
		seeded = append(seeded, r)
	}
	m.mu.Lock()
	groups := m.groups
	groups.Staging = groups.Staging.Intersect(seeded)
	m.groups = groups
	m.mu.Unlock()
}

// StagedPaths returns the paths currently in the staging group
func (m *Model) StagedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, m.groups.Staging.Len())
	for _, r := range m.groups.Staging.Resources() {
		paths = append(paths, r.Path())
	}
	return paths
}

// selectLocked picks the resources with the given paths from a group, all
// resources when paths is empty. Caller holds the mutex.
func (m *Model) selectLocked(group resources.Group, paths []string) []resources.Resource {
	if len(paths) == 0 {
		return group.Resources()
	}
	selected := make([]resources.Resource, 0, len(paths))
	for _, path := range paths {
		if r, ok := group.GetResource(path); ok {
			selected = append(selected, r)
		}
	}
	return selected
}
