package resources

import (
	"os"
	"path/filepath"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
	"hgsc.dev/hgsc/internal/hg"
)

// FileChecker reports whether a file exists on disk. Injectable for tests.
type FileChecker func(absPath string) bool

func statFile(absPath string) bool {
	_, err := os.Stat(absPath)
	return err == nil
}

// toStatus maps a raw hg status code to a semantic Status.
// An unknown code is a fatal classification error: reconciliation aborts
// rather than silently dropping a tracked file.
func toStatus(code byte, hasRename bool, path string) (Status, error) {
	switch code {
	case 'M':
		return StatusModified, nil
	case 'A':
		if hasRename {
			return StatusRenamed, nil
		}
		return StatusAdded, nil
	case 'R':
		return StatusDeleted, nil
	case 'I':
		return StatusIgnored, nil
	case '?':
		return StatusUntracked, nil
	case '!':
		return StatusMissing, nil
	case 'C':
		return StatusClean, nil
	}
	return 0, hgscerrors.NewClassificationError(code, path)
}

// toMergeStatus maps a resolve-list code to a MergeStatus.
// Deliberately a separate mapping from toStatus: in resolve output R means
// resolved, while in status output the same letter means removed.
func toMergeStatus(code byte) MergeStatus {
	switch code {
	case 'U':
		return MergeStatusUnresolved
	case 'R':
		return MergeStatusResolved
	}
	return MergeStatusNone
}

// GroupStatuses partitions raw status records into the five resource groups.
//
// Every record lands in exactly one group: untracked and ignored files go to
// the untracked group regardless of merge state; during a merge, unresolved
// files go to conflict and the rest to merge; otherwise membership in the
// previous staging group decides between staging and working, preserving the
// user's staging decisions across refreshes.
//
// Paths on the resolve list that the status output missed (e.g. locally clean
// but needing resolution) are synthesized in a second pass, inferring their
// status from disk existence. The previous staging group is consulted, never
// mutated. exists may be nil, in which case the filesystem is consulted.
func GroupStatuses(root string, statuses []hg.StatusRecord, inMerge bool, resolveList []hg.StatusRecord, prevStaging Group, exists FileChecker) (StatusGroups, error) {
	if exists == nil {
		exists = statFile
	}

	resolveByPath := make(map[string]byte, len(resolveList))
	for _, record := range resolveList {
		resolveByPath[record.Path] = record.Code
	}

	var conflict, merge, staging, working, untracked []Resource
	seen := make(map[string]struct{}, len(statuses))

	route := func(record hg.StatusRecord) error {
		status, err := toStatus(record.Code, record.Rename != "", record.Path)
		if err != nil {
			return err
		}
		mergeStatus := MergeStatusNone
		if code, ok := resolveByPath[record.Path]; ok {
			mergeStatus = toMergeStatus(code)
		}

		var kind GroupKind
		switch {
		case status == StatusIgnored || status == StatusUntracked:
			kind = KindUntracked
		case inMerge:
			if mergeStatus == MergeStatusUnresolved {
				kind = KindConflict
			} else {
				kind = KindMerge
			}
		case prevStaging.IncludesPath(record.Path):
			kind = KindStaging
		default:
			kind = KindWorking
		}

		resource, err := NewResource(kind, record.Path, status, mergeStatus, record.Rename)
		if err != nil {
			return err
		}
		switch kind {
		case KindConflict:
			conflict = append(conflict, resource)
		case KindMerge:
			merge = append(merge, resource)
		case KindStaging:
			staging = append(staging, resource)
		case KindWorking:
			working = append(working, resource)
		case KindUntracked:
			untracked = append(untracked, resource)
		}
		seen[record.Path] = struct{}{}
		return nil
	}

	for _, record := range statuses {
		if _, ok := seen[record.Path]; ok {
			continue
		}
		if err := route(record); err != nil {
			return StatusGroups{}, err
		}
	}

	// Files needing resolution that status did not report, e.g. locally
	// clean but deleted on the other side of the merge.
	for _, record := range resolveList {
		if _, ok := seen[record.Path]; ok {
			continue
		}
		inferred := byte('R')
		if exists(filepath.Join(root, filepath.FromSlash(record.Path))) {
			inferred = 'C'
		}
		if err := route(hg.StatusRecord{Path: record.Path, Code: inferred}); err != nil {
			return StatusGroups{}, err
		}
	}

	return StatusGroups{
		Conflict:  newGroupWith(KindConflict, conflict),
		Merge:     newGroupWith(KindMerge, merge),
		Staging:   newGroupWith(KindStaging, staging),
		Working:   newGroupWith(KindWorking, working),
		Untracked: newGroupWith(KindUntracked, untracked),
	}, nil
}
