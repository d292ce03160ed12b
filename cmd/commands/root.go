// Package commands holds the nox CLI surface.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/noxhq/nox/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "nox",
		Usage: "Your personal assistant with task management",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
		},
		Commands: []*cli.Command{
			NewChatCommand(),
			NewAskCommand(),
			NewTasksCommand(),
			NewStatusCommand(),
		},
	}
}
