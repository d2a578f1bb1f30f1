package app

import (
	"context"
	"errors"

	"github.com/hiredesk/hiredesk/internal/config"
	"github.com/hiredesk/hiredesk/internal/logger"
	"github.com/hiredesk/hiredesk/internal/registry"
	"github.com/hiredesk/hiredesk/internal/repository"
)

// App is the server's application container (immutable dependencies +
// lifecycle context). It is not a request context; handlers should still use
// gin's request context.
type App struct {
	Config   *config.Config
	Repo     repository.Repository
	Registry registry.AppStore

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, repo repository.Repository, store registry.AppStore) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if store == nil {
		return nil, errors.New("registry store is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:   cfg,
		Repo:     repo,
		Registry: store,
		BaseCtx:  ctx,
		Cancel:   cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers wires the data-file watcher and the persistence scheduler to
// the app lifecycle.
func (a *App) StartWatchers() error {
	if err := a.Repo.StartWatcher(a.BaseCtx, a.Registry); err != nil {
		return err
	}

	registry.StartPersistenceScheduler(a.BaseCtx, a.Registry, a.Repo, a.Config.Data.PersistInterval)
	logger.WithComponent("app").Debug("watchers started")
	return nil
}
