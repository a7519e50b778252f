package model

import (
	"context"

	"hgsc.dev/hgsc/internal/hg"
)

// Read-only queries pass straight through to the repository: they touch no
// model state and need no operation tracking or refresh.

// Bookmarks returns all bookmarks
func (m *Model) Bookmarks(ctx context.Context) ([]hg.Bookmark, error) {
	return m.repo.GetBookmarks(ctx)
}

// Branches returns all named branches
func (m *Model) Branches(ctx context.Context) ([]string, error) {
	return m.repo.GetBranches(ctx)
}

// Tags returns all tags
func (m *Model) Tags(ctx context.Context) ([]string, error) {
	return m.repo.GetTags(ctx)
}

// Heads returns the repository heads
func (m *Model) Heads(ctx context.Context) ([]hg.LogEntry, error) {
	return m.repo.GetHeads(ctx)
}

// LogEntries returns up to limit recent changesets
func (m *Model) LogEntries(ctx context.Context, limit int) ([]hg.LogEntry, error) {
	return m.repo.GetLogEntries(ctx, limit)
}
