package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/vasyly71/oom/pkg/logging"
)

// version is embedded at build time using ldflags.
var version = "dev"

// Shared flags across commands.
var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "table",
		Usage:   "output format (yaml, json, table)",
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:  "kubeconfig",
		Usage: "path to the kubeconfig file (default: $KUBECONFIG, then ~/.kube/config)",
	}
)

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  "oom",
		Usage:                 "Deploy and undeploy composite Helm releases",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Setup(cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			deployCmd(),
			undeployCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			commandLister(ctx, cmd)
			return nil
		},
	}
}

// commandLister prints the visible subcommands when no command is given.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	fmt.Println("Available commands:")
	for _, sub := range cmd.Commands {
		if sub.Hidden {
			continue
		}
		fmt.Printf("  %-12s %s\n", sub.Name, sub.Usage)
	}
	fmt.Printf("\nRun '%s <command> --help' for command usage.\n", cmd.Name)
}
