// Package errors provides sentinel errors and custom error types for the hgsc application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that the working directory is not inside a Mercurial repository
	ErrNotARepository = errors.New("not a mercurial repository")

	// ErrAuthenticationFailed indicates that the remote rejected the provided credentials
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnrelatedRepository indicates that the remote repository shares no history with the local one
	ErrUnrelatedRepository = errors.New("unrelated repository")

	// ErrNoDefaultPath indicates that no default remote path is configured in hgrc
	ErrNoDefaultPath = errors.New("no default path configured")

	// ErrPushCreatesNewRemoteHead indicates that a push would create a new head on the remote
	ErrPushCreatesNewRemoteHead = errors.New("push creates new remote head")

	// ErrPushCreatesNewRemoteBranches indicates that a push would create new branches on the remote
	ErrPushCreatesNewRemoteBranches = errors.New("push creates new remote branches")

	// ErrUntrackedFilesDiffer indicates that a merge was aborted because untracked files differ
	ErrUntrackedFilesDiffer = errors.New("untracked files in working directory differ")

	// ErrDirtyWorkingDirectory indicates that an update was refused because of uncommitted changes
	ErrDirtyWorkingDirectory = errors.New("uncommitted changes in working directory")

	// ErrUnknownStatusCode indicates that hg reported a status code the reconciler does not know
	ErrUnknownStatusCode = errors.New("unknown status code")
)

// ClassificationError represents a fatal failure to classify a raw status record.
// Reconciliation aborts rather than silently dropping a tracked file.
type ClassificationError struct {
	Code byte
	Path string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("unknown status code %q for %s", string(e.Code), e.Path)
}

// Is returns true if the target error is ErrUnknownStatusCode
func (e *ClassificationError) Is(target error) bool {
	return target == ErrUnknownStatusCode
}

// NewClassificationError creates a new ClassificationError
func NewClassificationError(code byte, path string) *ClassificationError {
	return &ClassificationError{Code: code, Path: path}
}

// HgCommandError represents an error from an hg command execution.
// Kind carries the sentinel the stderr output was classified as, or nil
// when the failure did not match any known condition.
type HgCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Kind    error
	Err     error
}

func (e *HgCommandError) Error() string {
	msg := fmt.Sprintf("hg command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *HgCommandError) Unwrap() error {
	return e.Err
}

// Is returns true if the target matches the classified error kind
func (e *HgCommandError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewHgCommandError creates a new HgCommandError
func NewHgCommandError(command string, args []string, stdout, stderr string, kind, err error) *HgCommandError {
	return &HgCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Kind:    kind,
		Err:     err,
	}
}
