package resources

import (
	"testing"

	"github.com/stretchr/testify/require"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
	"hgsc.dev/hgsc/internal/hg"
)

func noFiles(string) bool { return false }

func allFiles(string) bool { return true }

func TestGroupStatuses(t *testing.T) {
	t.Run("modified file lands in working", func(t *testing.T) {
		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "a.txt", Code: 'M'}},
			false, nil, NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		require.Equal(t, 1, groups.Working.Len())
		r, ok := groups.Working.GetResource("a.txt")
		require.True(t, ok)
		require.Equal(t, StatusModified, r.Status())
		require.True(t, groups.Staging.IsEmpty())
		require.True(t, groups.Merge.IsEmpty())
		require.True(t, groups.Conflict.IsEmpty())
		require.True(t, groups.Untracked.IsEmpty())
	})

	t.Run("previously staged file returns to staging", func(t *testing.T) {
		prev := NewGroup(KindStaging)
		staged, err := NewResource(KindStaging, "a.txt", StatusModified, MergeStatusNone, "")
		require.NoError(t, err)
		prev = prev.Intersect([]Resource{staged})

		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "a.txt", Code: 'M'}},
			false, nil, prev, noFiles)
		require.NoError(t, err)

		require.True(t, groups.Working.IsEmpty())
		require.Equal(t, 1, groups.Staging.Len())
		require.True(t, groups.Staging.IncludesPath("a.txt"))
	})

	t.Run("rename produces renamed status with source", func(t *testing.T) {
		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "b.txt", Code: 'A', Rename: "a.txt"}},
			false, nil, NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		r, ok := groups.Working.GetResource("b.txt")
		require.True(t, ok)
		require.Equal(t, StatusRenamed, r.Status())
		require.Equal(t, "a.txt", r.RenameSource())
	})

	t.Run("add without rename stays added", func(t *testing.T) {
		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "b.txt", Code: 'A'}},
			false, nil, NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		r, ok := groups.Working.GetResource("b.txt")
		require.True(t, ok)
		require.Equal(t, StatusAdded, r.Status())
	})

	t.Run("merge routes unresolved to conflict and the rest to merge", func(t *testing.T) {
		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{
				{Path: "u.txt", Code: 'M'},
				{Path: "r.txt", Code: 'M'},
			},
			true,
			[]hg.StatusRecord{
				{Path: "u.txt", Code: 'U'},
				{Path: "r.txt", Code: 'R'},
			},
			NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		require.True(t, groups.Conflict.IncludesPath("u.txt"))
		require.True(t, groups.Merge.IncludesPath("r.txt"))
		require.True(t, groups.Working.IsEmpty())

		u, _ := groups.Conflict.GetResource("u.txt")
		require.Equal(t, MergeStatusUnresolved, u.MergeStatus())
		r, _ := groups.Merge.GetResource("r.txt")
		require.Equal(t, MergeStatusResolved, r.MergeStatus())
	})

	t.Run("merge routing overrides previous staging", func(t *testing.T) {
		prev := NewGroup(KindStaging)
		staged, err := NewResource(KindStaging, "a.txt", StatusModified, MergeStatusNone, "")
		require.NoError(t, err)
		prev = prev.Intersect([]Resource{staged})

		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "a.txt", Code: 'M'}},
			true, nil, prev, noFiles)
		require.NoError(t, err)

		require.True(t, groups.Merge.IncludesPath("a.txt"))
		require.True(t, groups.Staging.IsEmpty())
	})

	t.Run("untracked and ignored always land in untracked", func(t *testing.T) {
		prev := NewGroup(KindStaging)
		staged, err := NewResource(KindStaging, "new.txt", StatusModified, MergeStatusNone, "")
		require.NoError(t, err)
		prev = prev.Intersect([]Resource{staged})

		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{
				{Path: "new.txt", Code: '?'},
				{Path: "junk.o", Code: 'I'},
			},
			true, nil, prev, noFiles)
		require.NoError(t, err)

		require.Equal(t, 2, groups.Untracked.Len())
		require.True(t, groups.Untracked.IncludesPath("new.txt"))
		require.True(t, groups.Untracked.IncludesPath("junk.o"))
		require.True(t, groups.Merge.IsEmpty())
		require.True(t, groups.Staging.IsEmpty())
	})

	t.Run("resolve-only path is synthesized as deleted when missing on disk", func(t *testing.T) {
		groups, err := GroupStatuses("/repo", nil,
			true,
			[]hg.StatusRecord{{Path: "c.txt", Code: 'U'}},
			NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		r, ok := groups.Conflict.GetResource("c.txt")
		require.True(t, ok)
		require.Equal(t, StatusDeleted, r.Status())
		require.Equal(t, MergeStatusUnresolved, r.MergeStatus())
	})

	t.Run("resolve-only path is synthesized as clean when present on disk", func(t *testing.T) {
		groups, err := GroupStatuses("/repo", nil,
			true,
			[]hg.StatusRecord{{Path: "c.txt", Code: 'U'}},
			NewGroup(KindStaging), allFiles)
		require.NoError(t, err)

		r, ok := groups.Conflict.GetResource("c.txt")
		require.True(t, ok)
		require.Equal(t, StatusClean, r.Status())
	})

	t.Run("first pass wins for duplicated paths", func(t *testing.T) {
		groups, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "c.txt", Code: 'M'}},
			true,
			[]hg.StatusRecord{{Path: "c.txt", Code: 'U'}},
			NewGroup(KindStaging), allFiles)
		require.NoError(t, err)

		require.Equal(t, 1, groups.TotalLen())
		r, ok := groups.Conflict.GetResource("c.txt")
		require.True(t, ok)
		require.Equal(t, StatusModified, r.Status())
	})

	t.Run("unknown status code fails loudly", func(t *testing.T) {
		_, err := GroupStatuses("/repo",
			[]hg.StatusRecord{{Path: "a.txt", Code: 'X'}},
			false, nil, NewGroup(KindStaging), noFiles)
		require.Error(t, err)
		require.ErrorIs(t, err, hgscerrors.ErrUnknownStatusCode)
	})

	t.Run("every path lands in exactly one group", func(t *testing.T) {
		statuses := []hg.StatusRecord{
			{Path: "m.txt", Code: 'M'},
			{Path: "a.txt", Code: 'A'},
			{Path: "r.txt", Code: 'R'},
			{Path: "q.txt", Code: '?'},
			{Path: "i.txt", Code: 'I'},
			{Path: "x.txt", Code: '!'},
			{Path: "c.txt", Code: 'C'},
		}
		groups, err := GroupStatuses("/repo", statuses, false, nil, NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		require.Equal(t, len(statuses), groups.TotalLen())
		for _, record := range statuses {
			count := 0
			for _, g := range []Group{groups.Conflict, groups.Merge, groups.Staging, groups.Working, groups.Untracked} {
				if g.IncludesPath(record.Path) {
					count++
				}
			}
			require.Equal(t, 1, count, "path %s", record.Path)
		}
	})

	t.Run("reconciliation is deterministic", func(t *testing.T) {
		statuses := []hg.StatusRecord{
			{Path: "m.txt", Code: 'M'},
			{Path: "a.txt", Code: 'A'},
			{Path: "q.txt", Code: '?'},
		}
		first, err := GroupStatuses("/repo", statuses, false, nil, NewGroup(KindStaging), noFiles)
		require.NoError(t, err)
		second, err := GroupStatuses("/repo", statuses, false, nil, NewGroup(KindStaging), noFiles)
		require.NoError(t, err)

		require.Equal(t, first.Working.Resources(), second.Working.Resources())
		require.Equal(t, first.Untracked.Resources(), second.Untracked.Resources())
	})
}

func TestToMergeStatus(t *testing.T) {
	// R means resolved on the resolve list even though it means removed
	// in status output; the two mappings stay separate.
	require.Equal(t, MergeStatusResolved, toMergeStatus('R'))
	require.Equal(t, MergeStatusUnresolved, toMergeStatus('U'))
	require.Equal(t, MergeStatusNone, toMergeStatus('?'))

	status, err := toStatus('R', false, "f.txt")
	require.NoError(t, err)
	require.Equal(t, StatusDeleted, status)
}
