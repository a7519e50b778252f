package model

import (
	"context"
	"errors"
	"strings"

	hgscerrors "hgsc.dev/hgsc/internal/errors"
)

// CountIncomingAfterDelay applies an optimistic delta to the incoming counter
// for immediate feedback, waits the configured delay, then overwrites the
// counter with the authoritative count.
func (m *Model) CountIncomingAfterDelay(ctx context.Context, delta int) error {
	m.mu.Lock()
	m.syncCounts.Incoming += delta
	if m.syncCounts.Incoming < 0 {
		m.syncCounts.Incoming = 0
	}
	m.mu.Unlock()
	m.notifySyncChanged()

	if err := m.sleep(ctx, m.cfg.CountDelay()); err != nil {
		return err
	}

	count, err := m.repo.CountIncoming(ctx)
	if err != nil {
		return m.handleCountError(err)
	}

	m.mu.Lock()
	m.syncCounts.Incoming = count
	m.autoRefreshError = ""
	m.mu.Unlock()
	m.notifySyncChanged()
	return nil
}

// CountOutgoingAfterDelay is the outgoing-counter counterpart of
// CountIncomingAfterDelay.
func (m *Model) CountOutgoingAfterDelay(ctx context.Context, delta int) error {
	m.mu.Lock()
	m.syncCounts.Outgoing += delta
	if m.syncCounts.Outgoing < 0 {
		m.syncCounts.Outgoing = 0
	}
	m.mu.Unlock()
	m.notifySyncChanged()

	if err := m.sleep(ctx, m.cfg.CountDelay()); err != nil {
		return err
	}

	count, err := m.repo.CountOutgoing(ctx)
	if err != nil {
		return m.handleCountError(err)
	}

	m.mu.Lock()
	m.syncCounts.Outgoing = count
	m.autoRefreshError = ""
	m.mu.Unlock()
	m.notifySyncChanged()
	return nil
}

// handleCountError moves background counting into an error state for the
// known recoverable causes, then rethrows either way.
func (m *Model) handleCountError(err error) error {
	if errors.Is(err, hgscerrors.ErrAuthenticationFailed) ||
		errors.Is(err, hgscerrors.ErrUnrelatedRepository) ||
		errors.Is(err, hgscerrors.ErrNoDefaultPath) {
		m.mu.Lock()
		m.autoRefreshError = sanitizeHgError(err)
		m.mu.Unlock()
		m.notifySyncChanged()
	}
	return err
}

// sanitizeHgError reduces an hg failure to a single human-readable line,
// stripping the "abort: " prefix hg puts on fatal messages.
func sanitizeHgError(err error) string {
	var cmdErr *hgscerrors.HgCommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
		for _, line := range strings.Split(cmdErr.Stderr, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			return strings.TrimPrefix(line, "abort: ")
		}
	}
	line := err.Error()
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return line
}
