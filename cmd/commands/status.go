package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/noxhq/nox/internal/config"
	"github.com/noxhq/nox/internal/models"
	"github.com/noxhq/nox/internal/tasks"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show NOX configuration and store health",
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			fmt.Printf("Config:     %s\n", path)
			fmt.Printf("Driver:     %s\n", cfg.Model.Driver)
			fmt.Printf("Model:      %s\n", cfg.Model.Model)

			switch _, err := models.ResolveAPIKey(cfg.Model); {
			case err == nil:
				fmt.Println("Credential: OK")
			case errors.Is(err, models.ErrMissingCredential):
				fmt.Println("Credential: MISSING (degraded mode)")
			default:
				fmt.Printf("Credential: %v\n", err)
			}

			store := tasks.NewFileStore(cfg.Tasks.File)
			list, err := store.List()
			if err != nil {
				fmt.Printf("Tasks:      UNREADABLE (%v)\n", err)
				return nil
			}
			active, completed := 0, 0
			for _, t := range list {
				if t.Completed {
					completed++
				} else {
					active++
				}
			}
			fmt.Printf("Tasks:      %s (%d active, %d completed)\n", cfg.Tasks.File, active, completed)

			return nil
		},
	}
}
