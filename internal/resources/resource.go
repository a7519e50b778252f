// Package resources implements the change-tracking core: immutable per-file
// resources, the five resource groups, and the status reconciler that derives
// a fresh group partition from raw hg status output.
package resources

import (
	"fmt"
	"path/filepath"
)

// Status is the semantic per-file status derived from a raw hg status code
type Status int

const (
	StatusModified Status = iota
	StatusAdded
	StatusDeleted
	StatusUntracked
	StatusIgnored
	StatusMissing
	StatusRenamed
	StatusClean
)

// String returns the lowercase name of the status
func (s Status) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusUntracked:
		return "untracked"
	case StatusIgnored:
		return "ignored"
	case StatusMissing:
		return "missing"
	case StatusRenamed:
		return "renamed"
	case StatusClean:
		return "clean"
	}
	return "unknown"
}

// MergeStatus is the per-file conflict-resolution state during a merge
type MergeStatus int

const (
	MergeStatusNone MergeStatus = iota
	MergeStatusUnresolved
	MergeStatusResolved
)

// String returns the lowercase name of the merge status
func (m MergeStatus) String() string {
	switch m {
	case MergeStatusUnresolved:
		return "unresolved"
	case MergeStatusResolved:
		return "resolved"
	}
	return "none"
}

// Resource is one file's tracked status within a single reconciliation
// snapshot. Resources are immutable; moving a path between groups produces a
// new Resource in the destination group.
type Resource struct {
	group        GroupKind
	path         string // repository-relative
	status       Status
	mergeStatus  MergeStatus
	renameSource string
}

// NewResource creates a Resource owned by the given group.
// A rename source is only valid for modified, renamed or added resources.
func NewResource(group GroupKind, path string, status Status, mergeStatus MergeStatus, renameSource string) (Resource, error) {
	if renameSource != "" {
		switch status {
		case StatusModified, StatusRenamed, StatusAdded:
		default:
			return Resource{}, fmt.Errorf("resource %s: rename source %s invalid for status %s", path, renameSource, status)
		}
	}
	return Resource{
		group:        group,
		path:         path,
		status:       status,
		mergeStatus:  mergeStatus,
		renameSource: renameSource,
	}, nil
}

// Group returns the kind of the group that owns this resource
func (r Resource) Group() GroupKind { return r.group }

// Path returns the repository-relative path of the resource
func (r Resource) Path() string { return r.path }

// Status returns the semantic status of the resource
func (r Resource) Status() Status { return r.status }

// MergeStatus returns the conflict-resolution state of the resource
func (r Resource) MergeStatus() MergeStatus { return r.mergeStatus }

// RenameSource returns the path this file was renamed or copied from, empty if none
func (r Resource) RenameSource() string { return r.renameSource }

// AbsolutePath resolves the resource path against the repository root
func (r Resource) AbsolutePath(root string) string {
	return filepath.Join(root, filepath.FromSlash(r.path))
}

// inGroup returns a copy of the resource owned by the given group.
// The status, merge status and rename source carry over unchanged.
func (r Resource) inGroup(group GroupKind) Resource {
	moved := r
	moved.group = group
	return moved
}
