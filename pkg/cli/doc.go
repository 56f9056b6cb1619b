// Package cli implements the command-line interface for the oom deploy tool.
//
// # Overview
//
// The oom CLI manages composite (umbrella) Helm charts as fleets of
// independent releases. Deploying a composite chart computes the merged
// configuration once, splits it into a global override plus one override
// per subchart, and installs or upgrades each subchart as its own release.
// Undeploying removes the parent and every release under it.
//
// # Commands
//
// deploy - Roll out a composite chart:
//
//	oom deploy RELEASE CHART [flags] [-- helm flags...]
//	oom deploy dev ./umbrella --namespace onap --create-namespace
//	oom deploy dev oci://registry.example.io/onap/umbrella:16.0.0
//	oom deploy dev-mariadb ./umbrella   # scoped to one subchart
//
// undeploy - Remove a composite release:
//
//	oom undeploy RELEASE
//	oom undeploy dev
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Each command accepts --format (yaml, json, table) for its run report.
// The table format is the terminal default; yaml and json suit scripting.
//
// # Environment Variables
//
//	LOG_LEVEL    Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG   Path to kubeconfig file
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, a failed release)
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/deploy - Deploy and undeploy orchestration
//   - pkg/fetcher - Chart retrieval (local, HTTP, OCI)
//   - pkg/values - Merged values partitioning
//   - pkg/reconciler - Per-release transitions
//   - pkg/helm - Release engine
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/vasyly71/oom/pkg/cli.version=1.0.0'"
package cli
