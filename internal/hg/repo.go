package hg

import (
	"context"
	"strconv"
	"strings"
)

// Summary describes the repository state reported by `hg summary`.
type Summary struct {
	// IsMerge is true when the working directory has two parents.
	IsMerge bool
	// Parents holds the short hashes of the working directory parents.
	Parents []string
}

// Path is one named remote path from `hg paths`.
type Path struct {
	Name string
	URL  string
}

// Bookmark is one entry from `hg bookmarks`.
type Bookmark struct {
	Name   string
	Active bool
}

// LogEntry is one changeset from `hg log`.
type LogEntry struct {
	Revision int
	Node     string
	Branch   string
	Author   string
	Date     string
	Message  string
}

// RollbackDetails describes what `hg rollback` undid (or would undo).
type RollbackDetails struct {
	// Kind is the transaction type: "commit", "pull", "push", etc.
	Kind string
	// Revision is the revision number the repository was rolled back to, -1 if unknown.
	Revision int
}

// Repository defines the hg operations consumed by the model.
// This allows the model to be used with both the real binary and fakes in tests.
type Repository interface {
	// Repository state
	Init(ctx context.Context) error
	GetRepoRoot(ctx context.Context) (string, error)
	GetStatus(ctx context.Context, revision string) ([]StatusRecord, error)
	GetResolveList(ctx context.Context) ([]StatusRecord, error)
	GetSummary(ctx context.Context) (Summary, error)
	GetCurrentBranch(ctx context.Context) (string, error)
	GetActiveBookmark(ctx context.Context) (string, error)

	// Working directory operations
	Add(ctx context.Context, paths ...string) error
	Forget(ctx context.Context, paths ...string) error
	AddRemove(ctx context.Context, paths ...string) error
	Revert(ctx context.Context, all bool, paths ...string) error
	Resolve(ctx context.Context, mark bool, paths ...string) error
	Unresolve(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string, addRemove bool, paths ...string) error
	GetCommitTemplate(ctx context.Context) (string, error)
	GetLastCommitFiles(ctx context.Context) ([]string, error)
	Rollback(ctx context.Context, dryRun bool) (RollbackDetails, error)

	// Refs
	Branch(ctx context.Context, name string, force bool) error
	Update(ctx context.Context, ref string, clean bool) error
	SetBookmark(ctx context.Context, name string, force bool) error
	RemoveBookmark(ctx context.Context, name string) error

	// Remote operations
	Pull(ctx context.Context, update bool) error
	Push(ctx context.Context, path string, allowNewBranch bool) error
	Merge(ctx context.Context, revision string) error
	CountIncoming(ctx context.Context) (int, error)
	CountOutgoing(ctx context.Context) (int, error)

	// Read-only queries
	Cat(ctx context.Context, path, ref string) (string, error)
	Annotate(ctx context.Context, path string) ([]string, error)
	GetHeads(ctx context.Context) ([]LogEntry, error)
	GetParents(ctx context.Context, revision string) ([]LogEntry, error)
	GetBranches(ctx context.Context) ([]string, error)
	GetTags(ctx context.Context) ([]string, error)
	GetBookmarks(ctx context.Context) ([]Bookmark, error)
	GetPaths(ctx context.Context) ([]Path, error)
	GetLogEntries(ctx context.Context, limit int) ([]LogEntry, error)
}

// repository implements Repository by shelling out to the hg binary
type repository struct {
	runner *CommandRunner
}

// NewRepository creates a Repository bound to the given hg binary and working directory
func NewRepository(binary, workingDir string) Repository {
	return &repository{runner: NewCommandRunner(binary, workingDir)}
}

func (r *repository) Init(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "init")
	return err
}

func (r *repository) GetRepoRoot(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, "root")
}

func (r *repository) GetStatus(ctx context.Context, revision string) ([]StatusRecord, error) {
	args := []string{"status", "-C"}
	if revision != "" {
		args = append(args, "--change", revision)
	}
	lines, err := r.runner.RunLines(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseStatusLines(lines), nil
}

func (r *repository) GetResolveList(ctx context.Context) ([]StatusRecord, error) {
	lines, err := r.runner.RunLines(ctx, "resolve", "--list")
	if err != nil {
		return nil, err
	}
	return ParseResolveLines(lines), nil
}

func (r *repository) GetSummary(ctx context.Context) (Summary, error) {
	lines, err := r.runner.RunLines(ctx, "parents", "--template", "{node|short}\n")
	if err != nil {
		return Summary{}, err
	}
	parents := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			parents = append(parents, line)
		}
	}
	return Summary{
		IsMerge: len(parents) > 1,
		Parents: parents,
	}, nil
}

func (r *repository) GetCurrentBranch(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, "branch")
}

func (r *repository) GetActiveBookmark(ctx context.Context) (string, error) {
	bookmarks, err := r.GetBookmarks(ctx)
	if err != nil {
		return "", err
	}
	for _, b := range bookmarks {
		if b.Active {
			return b.Name, nil
		}
	}
	return "", nil
}

// parseRevision parses a "rev:node" or plain revision number, -1 on failure
func parseRevision(s string) int {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		s = s[:idx]
	}
	rev, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return rev
}
