package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/noxhq/nox/clients/tui"
)

// NewChatCommand returns the chat subcommand.
func NewChatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Open the NOX chat window",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := buildRuntime(ctx, cmd)
			if err != nil {
				return err
			}
			defer r.close()

			return tui.Run(r.session, r.cfg.Model.Driver, r.cfg.Model.Model, r.degraded)
		},
	}
}
