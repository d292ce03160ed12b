package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/noxhq/nox/internal/config"
	"github.com/noxhq/nox/internal/tasks"
)

// NewTasksCommand returns the tasks subcommand: direct store access with no
// model involved.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage the task list directly",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the task summary",
				Action: runTasksList,
			},
			{
				Name:      "add",
				Usage:     "Add a task",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
					&cli.StringFlag{Name: "timeline", Aliases: []string{"t"}},
					&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Value: tasks.PriorityMedium},
					&cli.StringFlag{Name: "notes", Aliases: []string{"n"}},
				},
				Action: runTasksAdd,
			},
			{
				Name:      "done",
				Usage:     "Complete a task by id, title fragment, or list number",
				ArgsUsage: "<identifier>",
				Action:    runTasksDone,
			},
		},
	}
}

func openStore(cmd *cli.Command) (*tasks.FileStore, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return tasks.NewFileStore(cfg.Tasks.File), nil
}

func runTasksList(_ context.Context, cmd *cli.Command) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	summary, err := store.Summarize()
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func runTasksAdd(_ context.Context, cmd *cli.Command) error {
	title := cmd.Args().First()
	if title == "" {
		return fmt.Errorf("usage: nox tasks add <title>")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	task, err := store.Add(tasks.AddParams{
		Title:       title,
		Description: cmd.String("description"),
		Timeline:    cmd.String("timeline"),
		Priority:    cmd.String("priority"),
		Notes:       cmd.String("notes"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %q [ID: %s]\n", task.Title, task.ID)
	return nil
}

func runTasksDone(_ context.Context, cmd *cli.Command) error {
	identifier := cmd.Args().First()
	if identifier == "" {
		return fmt.Errorf("usage: nox tasks done <identifier>")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	task, err := store.ResolveAndComplete(identifier)
	if err != nil {
		if errors.Is(err, tasks.ErrNoMatch) {
			return fmt.Errorf("no active task matches %q", identifier)
		}
		return err
	}

	fmt.Printf("Completed %q\n", task.Title)
	return nil
}
