// Package model implements the repository model: the operation tracker that
// serializes access to the repository and the orchestrator that runs hg
// operations and keeps the resource-group snapshot current.
package model

// Operation is a bit flag for one named repository operation
type Operation uint32

const (
	OperationStatus Operation = 1 << iota
	OperationAdd
	OperationRevertFiles
	OperationCommit
	OperationClean
	OperationBranch
	OperationUpdate
	OperationRollback
	OperationRollbackDryRun
	OperationPull
	OperationPush
	OperationSync
	OperationInit
	OperationShow
	OperationStage
	OperationGetCommitTemplate
	OperationResolve
	OperationUnresolve
	OperationParents
	OperationForget
	OperationMerge
	OperationAddRemove
	OperationSetBookmark
	OperationRemoveBookmark
	OperationAnnotate
)

var operationNames = map[Operation]string{
	OperationStatus:            "status",
	OperationAdd:               "add",
	OperationRevertFiles:       "revert",
	OperationCommit:            "commit",
	OperationClean:             "clean",
	OperationBranch:            "branch",
	OperationUpdate:            "update",
	OperationRollback:          "rollback",
	OperationRollbackDryRun:    "rollback-dry-run",
	OperationPull:              "pull",
	OperationPush:              "push",
	OperationSync:              "sync",
	OperationInit:              "init",
	OperationShow:              "show",
	OperationStage:             "stage",
	OperationGetCommitTemplate: "commit-template",
	OperationResolve:           "resolve",
	OperationUnresolve:         "unresolve",
	OperationParents:           "parents",
	OperationForget:            "forget",
	OperationMerge:             "merge",
	OperationAddRemove:         "addremove",
	OperationSetBookmark:       "bookmark",
	OperationRemoveBookmark:    "bookmark-remove",
	OperationAnnotate:          "annotate",
}

// String returns the operation name
func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown"
}

// IsReadOnly reports whether completing the operation requires no state refresh
func (op Operation) IsReadOnly() bool {
	return op == OperationShow || op == OperationGetCommitTemplate
}

// Operations tracks which operations are currently running. It is an
// immutable value: Start and End return a new value, so a snapshot handed to
// an observer stays valid while the model moves on.
type Operations struct {
	mask Operation
}

// Start returns a new value with the operation marked running
func (o Operations) Start(op Operation) Operations {
	return Operations{mask: o.mask | op}
}

// End returns a new value with the operation marked not running
func (o Operations) End(op Operation) Operations {
	return Operations{mask: o.mask &^ op}
}

// IsRunning reports whether the operation is currently running
func (o Operations) IsRunning(op Operation) bool {
	return o.mask&op != 0
}

// IsIdle reports whether no operation is running
func (o Operations) IsIdle() bool {
	return o.mask == 0
}
