package resources

// GroupKind identifies one of the five resource groups
type GroupKind string

const (
	KindConflict  GroupKind = "conflict"
	KindMerge     GroupKind = "merge"
	KindStaging   GroupKind = "staging"
	KindWorking   GroupKind = "working"
	KindUntracked GroupKind = "untracked"
)

// Label returns the display label for the group kind
func (k GroupKind) Label() string {
	switch k {
	case KindConflict:
		return "Conflicted Changes"
	case KindMerge:
		return "Merged Changes"
	case KindStaging:
		return "Staged Changes"
	case KindWorking:
		return "Changes"
	case KindUntracked:
		return "Untracked Files"
	}
	return string(k)
}

// Group is an ordered set of resources belonging to one group kind.
// Groups are immutable values: Intersect and Except return new groups and the
// zero-ish empty group produced by NewGroup is always safe to share.
type Group struct {
	kind      GroupKind
	resources []Resource
	index     map[string]struct{}
}

// NewGroup creates an empty group of the given kind
func NewGroup(kind GroupKind) Group {
	return Group{kind: kind, index: map[string]struct{}{}}
}

// newGroupWith creates a group holding the given resources, building the path index
func newGroupWith(kind GroupKind, rs []Resource) Group {
	index := make(map[string]struct{}, len(rs))
	for _, r := range rs {
		index[r.Path()] = struct{}{}
	}
	return Group{kind: kind, resources: rs, index: index}
}

// Kind returns the group kind
func (g Group) Kind() GroupKind { return g.kind }

// Label returns the display label for the group
func (g Group) Label() string { return g.kind.Label() }

// Resources returns the resources in group order.
// The returned slice must not be modified.
func (g Group) Resources() []Resource { return g.resources }

// Len returns the number of resources in the group
func (g Group) Len() int { return len(g.resources) }

// IsEmpty reports whether the group holds no resources
func (g Group) IsEmpty() bool { return len(g.resources) == 0 }

// GetResource returns the resource at the given path, false if absent
func (g Group) GetResource(path string) (Resource, bool) {
	if _, ok := g.index[path]; !ok {
		return Resource{}, false
	}
	for _, r := range g.resources {
		if r.Path() == path {
			return r, true
		}
	}
	return Resource{}, false
}

// Includes reports whether a resource with the same path is in the group
func (g Group) Includes(r Resource) bool {
	return g.IncludesPath(r.Path())
}

// IncludesPath reports whether the path is in the group
func (g Group) IncludesPath(path string) bool {
	_, ok := g.index[path]
	return ok
}

// Intersect returns a new group containing this group's resources plus any
// input resources not already present by path. Resources already present are
// kept as-is; newcomers are re-homed into this group.
func (g Group) Intersect(incoming []Resource) Group {
	merged := make([]Resource, len(g.resources), len(g.resources)+len(incoming))
	copy(merged, g.resources)
	for _, r := range incoming {
		if g.IncludesPath(r.Path()) {
			continue
		}
		merged = append(merged, r.inGroup(g.kind))
	}
	return newGroupWith(g.kind, merged)
}

// Except returns a new group with all resources matching the input paths removed
func (g Group) Except(outgoing []Resource) Group {
	drop := make(map[string]struct{}, len(outgoing))
	for _, r := range outgoing {
		drop[r.Path()] = struct{}{}
	}
	kept := make([]Resource, 0, len(g.resources))
	for _, r := range g.resources {
		if _, ok := drop[r.Path()]; ok {
			continue
		}
		kept = append(kept, r)
	}
	return newGroupWith(g.kind, kept)
}

// StatusGroups is the atomic five-group snapshot. It is replaced wholesale on
// every reconciliation or staging change, never partially updated.
type StatusGroups struct {
	Conflict  Group
	Merge     Group
	Staging   Group
	Working   Group
	Untracked Group
}

// NewStatusGroups creates a snapshot of five empty groups
func NewStatusGroups() StatusGroups {
	return StatusGroups{
		Conflict:  NewGroup(KindConflict),
		Merge:     NewGroup(KindMerge),
		Staging:   NewGroup(KindStaging),
		Working:   NewGroup(KindWorking),
		Untracked: NewGroup(KindUntracked),
	}
}

// Group returns the group with the given kind, false for an unknown kind
func (s StatusGroups) Group(kind GroupKind) (Group, bool) {
	switch kind {
	case KindConflict:
		return s.Conflict, true
	case KindMerge:
		return s.Merge, true
	case KindStaging:
		return s.Staging, true
	case KindWorking:
		return s.Working, true
	case KindUntracked:
		return s.Untracked, true
	}
	return Group{}, false
}

// TotalLen returns the number of resources across all five groups
func (s StatusGroups) TotalLen() int {
	return s.Conflict.Len() + s.Merge.Len() + s.Staging.Len() + s.Working.Len() + s.Untracked.Len()
}
