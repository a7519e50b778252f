// Package hg provides a wrapper around the hg binary for repository operations.
package hg

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
)

// DefaultCommandTimeout is the default timeout for hg commands
const DefaultCommandTimeout = 5 * time.Minute

// DefaultBinary is the hg executable used when none is configured
const DefaultBinary = "hg"

// CommandRunner handles execution of hg commands
type CommandRunner struct {
	binary     string
	workingDir string
}

// NewCommandRunner creates a new CommandRunner rooted at workingDir
func NewCommandRunner(binary, workingDir string) *CommandRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandRunner{binary: binary, workingDir: workingDir}
}

// SetWorkingDir sets the working directory for the runner.
func (r *CommandRunner) SetWorkingDir(dir string) {
	r.workingDir = dir
}

// GetWorkingDir returns the current working directory setting for the runner.
func (r *CommandRunner) GetWorkingDir() string {
	return r.workingDir
}

// Run executes an hg command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", true, args...)
}

// RunRaw executes an hg command and returns the raw output (no trimming)
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", false, args...)
}

// RunLines executes an hg command and returns output as lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.runInternal(ctx, "", false, args...)
	if err != nil {
		return nil, err
	}
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// RunWithInput executes an hg command with input on stdin and returns the trimmed output
func (r *CommandRunner) RunWithInput(ctx context.Context, input string, args ...string) (string, error) {
	return r.runInternal(ctx, input, true, args...)
}

// runInternal is the internal implementation that handles input and trimming.
// Commands run non-interactively so that hg never blocks waiting on a prompt.
func (r *CommandRunner) runInternal(ctx context.Context, input string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	fullArgs := append([]string{"--noninteractive"}, args...)
	cmd := exec.CommandContext(ctx, r.binary, fullArgs...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	cmd.Env = append(os.Environ(), "HGPLAIN=1")
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		kind := classifyStderr(stderr.String())
		return "", hgscerrors.NewHgCommandError(r.binary, args, stdout.String(), stderr.String(), kind, err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}
