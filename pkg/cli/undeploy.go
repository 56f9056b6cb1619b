package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/vasyly71/oom/pkg/deploy"
	oomerrors "github.com/vasyly71/oom/pkg/errors"
	"github.com/vasyly71/oom/pkg/helm"
	"github.com/vasyly71/oom/pkg/serializer"
)

func undeployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "undeploy",
		EnableShellCompletion: true,
		Usage:                 "Remove a composite release and everything deployed under it",
		ArgsUsage:             "RELEASE",
		Description: `Removes a previously deployed composite release. Every release named
RELEASE or RELEASE-<subchart> is deleted with its history purged,
subchart releases first and the parent last.

# Examples

Remove the dev release and all its subchart releases:
  oom undeploy dev

Remove a single subchart release:
  oom undeploy dev-mariadb`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "helm-bin",
				Value: helm.DefaultBinary,
				Usage: "helm binary to execute",
			},
			&cli.StringFlag{
				Name:  "workdir",
				Usage: "workspace cache root (default: per-user cache directory)",
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() != 1 {
				return oomerrors.New(oomerrors.ErrCodeInvalidArgument,
					"undeploy requires exactly one release name")
			}
			release := cmd.Args().First()

			d, err := deploy.New(
				deploy.WithHelmBinary(cmd.String("helm-bin")),
				deploy.WithWorkRoot(cmd.String("workdir")),
			)
			if err != nil {
				return err
			}

			slog.Info("undeploying composite release", "release", release)

			report, err := d.Undeploy(ctx, release)
			if err != nil {
				slog.Error("undeploy failed", "release", release, "error", err)
				return err
			}

			if err := serializer.NewStdoutWriter(outFormat).Serialize(report); err != nil {
				return err
			}
			if !report.Succeeded() {
				return oomerrors.New(oomerrors.ErrCodeApplyFailed,
					fmt.Sprintf("failed to remove one or more releases under %s", release))
			}
			return nil
		},
	}
}
