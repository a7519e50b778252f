// Package runtime provides a context type that holds the model and logger
// for use throughout the application. This avoids passing multiple parameters.
package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"hgsc.dev/hgsc/internal/config"
	"hgsc.dev/hgsc/internal/hg"
	"hgsc.dev/hgsc/internal/model"
	"hgsc.dev/hgsc/internal/output"
	"hgsc.dev/hgsc/internal/watch"
)

// Context provides access to the model and output for commands
type Context struct {
	Model    *model.Model
	Splog    *output.Splog
	Config   *config.Config
	RepoRoot string
	Watcher  *watch.Service
}

// NewContext creates a new context around an existing model
func NewContext(m *model.Model, cfg *config.Config, repoRoot string) *Context {
	return &Context{
		Model:    m,
		Splog:    newSplog(),
		Config:   cfg,
		RepoRoot: repoRoot,
	}
}

func newSplog() *output.Splog {
	if logPath := os.Getenv("HGSC_LOG_FILE"); logPath != "" {
		if splog, err := output.NewSplogWithConfig(logPath); err == nil {
			return splog
		}
	}
	return output.NewSplog()
}

// GetContext locates the repository, builds the model and arms the watcher.
func GetContext(ctx context.Context) (*Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	probe := hg.NewRepository(os.Getenv("HGSC_HG_BINARY"), cwd)
	repoRoot, err := probe.GetRepoRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("not a mercurial repository (or any parent): %w", err)
	}
	repoRoot = filepath.Clean(repoRoot)

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	repo := hg.NewRepository(cfg.HgBinary, repoRoot)
	m := model.New(repo, repoRoot, cfg)
	m.SeedStaging(config.LoadStagedPaths(repoRoot))

	rc := NewContext(m, cfg, repoRoot)

	if cfg.AutoRefresh {
		watcher := watch.New(repoRoot, rc.Splog.Debug)
		if err := watcher.Start(); err == nil {
			rc.Watcher = watcher
			m.SetRearmWatch(watcher.Rearm)
		}
	}

	return rc, nil
}

// Close persists staging decisions and releases resources held by the context
func (c *Context) Close() {
	if c.Model != nil && c.Model.State() == model.StateIdle {
		_ = config.SaveStagedPaths(c.RepoRoot, c.Model.StagedPaths())
	}
	if c.Watcher != nil {
		c.Watcher.Stop()
	}
	_ = c.Splog.Close()
}
