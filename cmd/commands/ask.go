package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// NewAskCommand returns the ask subcommand: one orchestrated turn, reply on
// stdout, cost and tool diagnostics on stderr.
func NewAskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Run a single turn and print the reply",
		ArgsUsage: "<message>",
		Action:    runAsk,
	}
}

func runAsk(ctx context.Context, cmd *cli.Command) error {
	message := cmd.Args().First()
	if message == "" {
		return fmt.Errorf("usage: nox ask <message>")
	}

	r, err := buildRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	if r.degraded != "" {
		return fmt.Errorf("%s: add your API key to api_key.txt or set the driver env var", r.degraded)
	}

	result, err := r.session.Run(ctx, message)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, result.Reply)

	if trace := result.ToolTrace; trace != nil {
		mark := "✓"
		if !trace.Success {
			mark = "✗"
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", mark, trace.Message)
	}
	fmt.Fprintf(os.Stderr, "cost: $%.6f (tokens: %d in / %d out)\n",
		result.CostDelta, result.Usage.PromptTokens, result.Usage.CompletionTokens)

	return nil
}
