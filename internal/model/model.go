package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hgsc.dev/hgsc/internal/config"
	hgscerrors "hgsc.dev/hgsc/internal/errors"
	"hgsc.dev/hgsc/internal/hg"
	"hgsc.dev/hgsc/internal/resources"
)

// State is the model lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateIdle
	StateNotAnHgRepository
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNotAnHgRepository:
		return "no-repository"
	}
	return "uninitialized"
}

// SyncCounts holds the incoming/outgoing changeset counters
type SyncCounts struct {
	Incoming int
	Outgoing int
}

// Repository lock backoff: best-effort wait for hg's own lock files to
// disappear, proceeding anyway once the retries are exhausted.
const (
	lockWaitInitial = 100 * time.Millisecond
	lockWaitFactor  = 1.4
	lockWaitRetries = 10
)

// inflight tracks one in-progress coalesced call
type inflight struct {
	done chan struct{}
	err  error
}

// Model is the repository orchestrator. It owns the current group partition,
// current ref, sync counters and operation mask. The group snapshot and the
// operation mask are replaced wholesale under the mutex, never field-mutated,
// so reads always observe a consistent value.
type Model struct {
	repo hg.Repository
	root string
	cfg  *config.Config

	mu               sync.Mutex
	state            State
	groups           resources.StatusGroups
	operations       Operations
	currentBranch    string
	activeBookmark   string
	summary          hg.Summary
	syncCounts       SyncCounts
	paths            []hg.Path
	lastPushPath     string
	autoRefreshError string
	idleWaiters      []chan struct{}
	inflightOps      map[Operation]*inflight

	onOperationStart   []func(Operation)
	onOperationEnd     []func(Operation)
	onResourcesChanged []func()
	onStateChanged     []func(State)
	onSyncChanged      []func()

	rearmWatch func()

	// injectable for tests
	fileExists func(string) bool
	sleep      func(context.Context, time.Duration) error
}

// New creates a model for the repository at root
func New(repo hg.Repository, root string, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Model{
		repo:        repo,
		root:        root,
		cfg:         cfg,
		state:       StateUninitialized,
		groups:      resources.NewStatusGroups(),
		inflightOps: map[Operation]*inflight{},
		fileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		sleep: sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Root returns the repository root path
func (m *Model) Root() string { return m.root }

// State returns the current lifecycle state
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Groups returns the current five-group snapshot
func (m *Model) Groups() resources.StatusGroups {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groups
}

// Operations returns the current operation tracker value
func (m *Model) Operations() Operations {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operations
}

// CurrentBranch returns the current named branch, empty in bookmarks mode
func (m *Model) CurrentBranch() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentBranch
}

// ActiveBookmark returns the active bookmark, empty in branch mode
func (m *Model) ActiveBookmark() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeBookmark
}

// CurrentRef returns the active bookmark in bookmarks mode, else the branch
func (m *Model) CurrentRef() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg.UseBookmarks {
		return m.activeBookmark
	}
	return m.currentBranch
}

// Summary returns the last known repository summary
func (m *Model) Summary() hg.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary
}

// SyncCounts returns the current incoming/outgoing counters
func (m *Model) SyncCounts() SyncCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncCounts
}

// Paths returns the configured remote paths
func (m *Model) Paths() []hg.Path {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paths
}

// LastPushPath returns the path used by the most recent push
func (m *Model) LastPushPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPushPath
}

// AutoRefreshError returns the sanitized error that put background sync
// counting into an error state, empty when healthy
func (m *Model) AutoRefreshError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoRefreshError
}

// OnOperationStart registers an observer for operation starts
func (m *Model) OnOperationStart(f func(Operation)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOperationStart = append(m.onOperationStart, f)
}

// OnOperationEnd registers an observer for operation completions
func (m *Model) OnOperationEnd(f func(Operation)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOperationEnd = append(m.onOperationEnd, f)
}

// OnResourcesChanged registers an observer for group snapshot replacements
func (m *Model) OnResourcesChanged(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onResourcesChanged = append(m.onResourcesChanged, f)
}

// OnStateChanged registers an observer for lifecycle transitions
func (m *Model) OnStateChanged(f func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChanged = append(m.onStateChanged, f)
}

// OnSyncChanged registers an observer for sync counter updates
func (m *Model) OnSyncChanged(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSyncChanged = append(m.onSyncChanged, f)
}

// SetRearmWatch installs the callback invoked when the model loses its
// repository and needs the filesystem watch re-armed for recovery
func (m *Model) SetRearmWatch(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rearmWatch = f
}

// WhenIdle blocks until no operation is running
func (m *Model) WhenIdle(ctx context.Context) error {
	m.mu.Lock()
	if m.operations.IsIdle() {
		m.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	m.idleWaiters = append(m.idleWaiters, ch)
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// run executes a repository operation under the fixed protocol: mark started,
// wait out any external lock, run the body, refresh state unless the
// operation is read-only, and always mark ended, even on failure.
func (m *Model) run(ctx context.Context, op Operation, body func(context.Context) error) error {
	m.startOperation(op)
	defer m.endOperation(op)

	m.waitForRepositoryLock(ctx)

	if err := body(ctx); err != nil {
		m.handleRepositoryLoss(err)
		return err
	}

	if !op.IsReadOnly() {
		if err := m.refresh(ctx); err != nil {
			m.handleRepositoryLoss(err)
			return err
		}
	}
	return nil
}

// handleRepositoryLoss transitions to NotAnHgRepository and re-arms the
// filesystem watch when the error says the repository is gone, so the model
// can recover once one appears again.
func (m *Model) handleRepositoryLoss(err error) {
	if !errors.Is(err, hgscerrors.ErrNotARepository) {
		return
	}
	m.setState(StateNotAnHgRepository)
	m.mu.Lock()
	rearm := m.rearmWatch
	m.mu.Unlock()
	if rearm != nil {
		rearm()
	}
}

// waitForRepositoryLock waits for hg's own lock files to disappear with
// exponential backoff. Absence/presence is plain boolean state; after the
// retry cap the operation proceeds regardless.
func (m *Model) waitForRepositoryLock(ctx context.Context) {
	locks := []string{
		filepath.Join(m.root, ".hg", "wlock"),
		filepath.Join(m.root, ".hg", "store", "lock"),
	}
	wait := lockWaitInitial
	for attempt := 0; attempt < lockWaitRetries; attempt++ {
		locked := false
		for _, lock := range locks {
			if m.fileExists(lock) {
				locked = true
				break
			}
		}
		if !locked {
			return
		}
		if m.sleep(ctx, wait) != nil {
			return
		}
		wait = time.Duration(float64(wait) * lockWaitFactor)
	}
}

// refresh re-derives the full model state: summary, current ref, per-file
// status, resolve list when mid-merge, then reconciles the groups and swaps
// the snapshot in atomically.
func (m *Model) refresh(ctx context.Context) error {
	summary, err := m.repo.GetSummary(ctx)
	if err != nil {
		return err
	}

	var branch, bookmark string
	if m.cfg.UseBookmarks {
		bookmark, err = m.repo.GetActiveBookmark(ctx)
	} else {
		branch, err = m.repo.GetCurrentBranch(ctx)
	}
	if err != nil {
		return err
	}

	statuses, err := m.repo.GetStatus(ctx, "")
	if err != nil {
		return err
	}

	var resolveList []hg.StatusRecord
	if summary.IsMerge {
		resolveList, err = m.repo.GetResolveList(ctx)
		if err != nil {
			return err
		}
	}

	paths, err := m.repo.GetPaths(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	prevStaging := m.groups.Staging
	m.mu.Unlock()

	groups, err := resources.GroupStatuses(m.root, statuses, summary.IsMerge, resolveList, prevStaging, m.fileExists)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.groups = groups
	m.summary = summary
	m.currentBranch = branch
	m.activeBookmark = bookmark
	m.paths = paths
	becameIdle := m.state == StateUninitialized || m.state == StateNotAnHgRepository
	if becameIdle {
		m.state = StateIdle
	}
	m.mu.Unlock()

	if becameIdle {
		m.notifyStateChanged(StateIdle)
	}
	m.notifyResourcesChanged()
	return nil
}

func (m *Model) setState(state State) {
	m.mu.Lock()
	changed := m.state != state
	m.state = state
	m.mu.Unlock()
	if changed {
		m.notifyStateChanged(state)
	}
}

func (m *Model) startOperation(op Operation) {
	m.mu.Lock()
	m.operations = m.operations.Start(op)
	handlers := append([](func(Operation))(nil), m.onOperationStart...)
	m.mu.Unlock()
	for _, h := range handlers {
		h(op)
	}
}

func (m *Model) endOperation(op Operation) {
	m.mu.Lock()
	m.operations = m.operations.End(op)
	var waiters []chan struct{}
	if m.operations.IsIdle() {
		waiters = m.idleWaiters
		m.idleWaiters = nil
	}
	handlers := append([](func(Operation))(nil), m.onOperationEnd...)
	m.mu.Unlock()
	for _, ch := range waiters {
		close(ch)
	}
	for _, h := range handlers {
		h(op)
	}
}

func (m *Model) notifyResourcesChanged() {
	m.mu.Lock()
	handlers := append([](func())(nil), m.onResourcesChanged...)
	m.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}

func (m *Model) notifyStateChanged(state State) {
	m.mu.Lock()
	handlers := append([](func(State))(nil), m.onStateChanged...)
	m.mu.Unlock()
	for _, h := range handlers {
		h(state)
	}
}

func (m *Model) notifySyncChanged() {
	m.mu.Lock()
	handlers := append([](func())(nil), m.onSyncChanged...)
	m.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}

// coalesced collapses concurrent identical calls into the single in-flight
// call: late arrivals wait for the running call and share its result.
func (m *Model) coalesced(op Operation, fn func() error) error {
	m.mu.Lock()
	if f, ok := m.inflightOps[op]; ok {
		m.mu.Unlock()
		<-f.done
		return f.err
	}
	f := &inflight{done: make(chan struct{})}
	m.inflightOps[op] = f
	m.mu.Unlock()

	f.err = fn()

	m.mu.Lock()
	delete(m.inflightOps, op)
	m.mu.Unlock()
	close(f.done)
	return f.err
}
