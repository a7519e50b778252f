package resources

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustResource(t *testing.T, group GroupKind, path string, status Status) Resource {
	t.Helper()
	r, err := NewResource(group, path, status, MergeStatusNone, "")
	require.NoError(t, err)
	return r
}

func TestNewResource(t *testing.T) {
	t.Run("rename source requires a rename-capable status", func(t *testing.T) {
		_, err := NewResource(KindWorking, "b.txt", StatusDeleted, MergeStatusNone, "a.txt")
		require.Error(t, err)
	})

	t.Run("renamed resource carries its source", func(t *testing.T) {
		r, err := NewResource(KindWorking, "b.txt", StatusRenamed, MergeStatusNone, "a.txt")
		require.NoError(t, err)
		require.Equal(t, "a.txt", r.RenameSource())
	})

	t.Run("absolute path joins the root", func(t *testing.T) {
		r := mustResource(t, KindWorking, "dir/a.txt", StatusModified)
		require.Equal(t, "/repo/dir/a.txt", r.AbsolutePath("/repo"))
	})
}

func TestGroupIntersect(t *testing.T) {
	working := NewGroup(KindWorking)
	a := mustResource(t, KindWorking, "a.txt", StatusModified)
	b := mustResource(t, KindWorking, "b.txt", StatusAdded)
	working = working.Intersect([]Resource{a, b})

	t.Run("newcomers are re-homed into the receiving group", func(t *testing.T) {
		staging := NewGroup(KindStaging).Intersect([]Resource{a})
		require.Equal(t, 1, staging.Len())
		r, ok := staging.GetResource("a.txt")
		require.True(t, ok)
		require.Equal(t, KindStaging, r.Group())
		require.Equal(t, StatusModified, r.Status())
	})

	t.Run("existing members are kept rather than replaced", func(t *testing.T) {
		again := working.Intersect([]Resource{mustResource(t, KindWorking, "a.txt", StatusDeleted)})
		r, ok := again.GetResource("a.txt")
		require.True(t, ok)
		require.Equal(t, StatusModified, r.Status())
		require.Equal(t, 2, again.Len())
	})

	t.Run("the receiver is not mutated", func(t *testing.T) {
		empty := NewGroup(KindStaging)
		grown := empty.Intersect([]Resource{a})
		require.True(t, empty.IsEmpty())
		require.Equal(t, 1, grown.Len())
	})
}

func TestGroupExcept(t *testing.T) {
	a := mustResource(t, KindWorking, "a.txt", StatusModified)
	b := mustResource(t, KindWorking, "b.txt", StatusAdded)
	working := NewGroup(KindWorking).Intersect([]Resource{a, b})

	t.Run("removes by path", func(t *testing.T) {
		rest := working.Except([]Resource{a})
		require.Equal(t, 1, rest.Len())
		require.False(t, rest.IncludesPath("a.txt"))
		require.True(t, rest.IncludesPath("b.txt"))
	})

	t.Run("unknown paths are ignored", func(t *testing.T) {
		rest := working.Except([]Resource{mustResource(t, KindWorking, "missing.txt", StatusModified)})
		require.Equal(t, 2, rest.Len())
	})

	t.Run("the receiver is not mutated", func(t *testing.T) {
		working.Except([]Resource{a, b})
		require.Equal(t, 2, working.Len())
	})
}

func TestStatusGroups(t *testing.T) {
	groups := NewStatusGroups()
	require.Equal(t, 0, groups.TotalLen())

	for _, kind := range []GroupKind{KindConflict, KindMerge, KindStaging, KindWorking, KindUntracked} {
		g, ok := groups.Group(kind)
		require.True(t, ok)
		require.Equal(t, kind, g.Kind())
		require.NotEmpty(t, g.Label())
	}

	_, ok := groups.Group(GroupKind("bogus"))
	require.False(t, ok)
}
