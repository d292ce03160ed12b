package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/noxhq/nox/internal/config"
	"github.com/noxhq/nox/internal/events"
	"github.com/noxhq/nox/internal/models"
	"github.com/noxhq/nox/internal/orchestrator"
	"github.com/noxhq/nox/internal/tasks"
	"github.com/noxhq/nox/internal/tools"
)

// runtime wires the pieces one command needs: config, store, bus, session.
type runtime struct {
	cfg     *config.Config
	store   *tasks.FileStore
	bus     *events.Bus
	session *orchestrator.Session

	// degraded is non-empty when no credential could be resolved. The
	// session exists but must not run turns.
	degraded string
}

func (r *runtime) close() {
	if r.bus != nil {
		r.bus.Close()
	}
}

// buildRuntime loads config and assembles a session. A missing credential is
// not an error here; callers decide whether degraded mode is acceptable.
func buildRuntime(ctx context.Context, cmd *cli.Command) (*runtime, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store := tasks.NewFileStore(cfg.Tasks.File)
	registry := tools.NewRegistry(store)
	bus := events.NewBus(cfg.Events.BufferSize)

	r := &runtime{cfg: cfg, store: store, bus: bus}

	m, err := models.CreateModel(ctx, cfg.Model)
	if err != nil {
		if !errors.Is(err, models.ErrMissingCredential) {
			bus.Close()
			return nil, fmt.Errorf("create model: %w", err)
		}
		r.degraded = "missing credential"
	}

	r.session = orchestrator.NewSession(m, registry, store, bus, cfg)
	return r, nil
}
