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

func deployCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deploy",
		EnableShellCompletion: true,
		Usage:                 "Deploy a composite chart as independent per-subchart releases",
		ArgsUsage:             "RELEASE CHART [-- HELM_FLAGS...]",
		Description: `Deploys a composite (umbrella) Helm chart by splitting it into
independently managed releases, one per subchart plus the parent.

The chart reference may be a local directory, a chart archive, an
HTTP(S) URL, or an OCI reference (oci://registry/repo:tag). The merged
configuration is computed with a dry run against the full chart, split
into a global override document plus one override document per subchart,
and each subchart is then installed or upgraded as <release>-<subchart>.
Subcharts disabled in the merged values (<name>.enabled: false) are
removed instead.

Naming the release as <release>-<subchart> for a known subchart scopes
the run to that one subchart:

  oom deploy dev ./oom-umbrella            # parent plus every subchart
  oom deploy dev-mariadb ./oom-umbrella    # only the mariadb subchart

Flags after -- are passed through to every install/upgrade unchanged;
value flags (-f, --set, --set-string) found there join the merge dry run
instead:

  oom deploy dev ./oom-umbrella -f prod.yaml -- --timeout 900

# Examples

Deploy from an OCI registry into a fresh namespace:
  oom deploy dev oci://registry.example.io/onap/umbrella:16.0.0 \
    --namespace onap --create-namespace

Override values and watch the per-release logs:
  oom deploy dev ./umbrella --set mariadb.enabled=false --verbose`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Kubernetes namespace for every release",
			},
			&cli.BoolFlag{
				Name:  "create-namespace",
				Usage: "Create the target namespace if it does not exist",
			},
			&cli.StringSliceFlag{
				Name:    "values",
				Aliases: []string{"f"},
				Usage:   "values file merged into the configuration (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "set a value on the command line (format: path.to.field=value, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "set-string",
				Usage: "set a string value on the command line (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Echo per-release engine logs to stdout",
			},
			&cli.StringFlag{
				Name:  "helm-bin",
				Value: helm.DefaultBinary,
				Usage: "helm binary to execute",
			},
			&cli.StringFlag{
				Name:  "workdir",
				Usage: "workspace cache root (default: per-user cache directory)",
			},
			kubeconfigFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			args := cmd.Args().Slice()
			if len(args) < 2 {
				return oomerrors.New(oomerrors.ErrCodeInvalidArgument,
					"deploy requires a release name and a chart reference")
			}
			release, chartRef := args[0], args[1]

			overrides, passthrough := helm.SplitOverrideArgs(args[2:])
			overrides = append(collectValueFlags(cmd), overrides...)

			d, err := deploy.New(
				deploy.WithNamespace(cmd.String("namespace")),
				deploy.WithCreateNamespace(cmd.Bool("create-namespace")),
				deploy.WithKubeconfig(cmd.String("kubeconfig")),
				deploy.WithHelmBinary(cmd.String("helm-bin")),
				deploy.WithWorkRoot(cmd.String("workdir")),
				deploy.WithVerbose(cmd.Bool("verbose")),
				deploy.WithOverrideArgs(overrides),
				deploy.WithPassThroughArgs(passthrough),
			)
			if err != nil {
				return err
			}

			slog.Info("deploying composite chart", "release", release, "chart", chartRef)

			report, err := d.Deploy(ctx, release, chartRef)
			if err != nil {
				slog.Error("deploy failed", "release", release, "error", err)
				return err
			}

			if err := serializer.NewStdoutWriter(outFormat).Serialize(report); err != nil {
				return err
			}
			if !report.Succeeded() {
				return oomerrors.New(oomerrors.ErrCodeApplyFailed,
					fmt.Sprintf("one or more releases failed, inspect the report and the logs for run %s", report.RunID))
			}
			return nil
		},
	}
}

// collectValueFlags turns the value flags into dry-run arguments, files
// first so command-line sets win the merge.
func collectValueFlags(cmd *cli.Command) []string {
	var args []string
	for _, path := range cmd.StringSlice("values") {
		args = append(args, "-f", path)
	}
	for _, kv := range cmd.StringSlice("set") {
		args = append(args, "--set", kv)
	}
	for _, kv := range cmd.StringSlice("set-string") {
		args = append(args, "--set-string", kv)
	}
	return args
}
