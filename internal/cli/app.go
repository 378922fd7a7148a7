package cli

import (
	"context"
	"fmt"

	"github.com/caslab/casvc/internal/config"
	"github.com/caslab/casvc/internal/engine"
	"github.com/caslab/casvc/internal/memstore"
	"github.com/caslab/casvc/internal/pgstore"
)

// App wires a config-selected storage backend into an Engine for the
// CLI commands to share. A memory backend only lives for the duration
// of one process — there is no working directory to persist an index
// in between invocations, so it is useful for a single scripted
// session but not for separate "add" then "commit" invocations. The
// postgres backend is what makes the CLI useful across runs.
type App struct {
	Engine *engine.Engine
	cfg    *config.Config
	pg     *pgstore.Store
	mem    *memstore.Store
}

func newApp(ctx context.Context, cfg *config.Config) (*App, error) {
	switch cfg.Core.Backend {
	case config.BackendPostgres:
		if cfg.Core.PostgresURL == "" {
			return nil, fmt.Errorf("core.backend is %q but core.postgres_url is empty", config.BackendPostgres)
		}
		store, err := pgstore.Connect(ctx, cfg.Core.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := store.InitSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
		return &App{
			Engine: engine.New(store.Blobs(), store.Trees(), store.Commits(), store.Refs(), store.Staging()),
			cfg:    cfg,
			pg:     store,
		}, nil

	case config.BackendMemory, "":
		store := memstore.New()
		return &App{
			Engine: engine.New(store.Blobs(), store.Trees(), store.Commits(), store.Refs(), store.Staging()),
			cfg:    cfg,
			mem:    store,
		}, nil

	default:
		return nil, fmt.Errorf("unknown core.backend %q (want %q or %q)", cfg.Core.Backend, config.BackendMemory, config.BackendPostgres)
	}
}

func (a *App) Close() {
	if a.pg != nil {
		a.pg.Close()
	}
}

// lockGC serializes gc against concurrent commits on the memory
// backend, purely as a caller-side convenience — the engine itself
// takes no internal lock (spec's GC/commit concurrency requires
// external mutual exclusion). On the postgres backend no lock is
// taken, and gc is not serialized against commits from other processes.
func (a *App) lockGC() {
	if a.mem != nil {
		a.mem.Lock()
	}
}

func (a *App) unlockGC() {
	if a.mem != nil {
		a.mem.Unlock()
	}
}
