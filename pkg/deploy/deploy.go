package deploy

import (
	"context"
	"fmt"
	"log/slog"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
	"github.com/vasyly71/oom/pkg/fetcher"
	"github.com/vasyly71/oom/pkg/helm"
	"github.com/vasyly71/oom/pkg/k8s"
	"github.com/vasyly71/oom/pkg/reconciler"
	"github.com/vasyly71/oom/pkg/values"
	"github.com/vasyly71/oom/pkg/workspace"
)

// Deployer runs umbrella chart deploys and undeploys.
type Deployer struct {
	cfg    Config
	engine helm.Engine
}

// New creates a deployer from the given options.
func New(opts ...Option) (*Deployer, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.WorkRoot == "" {
		root, err := workspace.DefaultRoot()
		if err != nil {
			return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal,
				"failed to resolve workspace root", err)
		}
		cfg.WorkRoot = root
	}

	engine := cfg.Engine
	if engine == nil {
		var engineOpts []helm.ExecOption
		if cfg.HelmBinary != "" {
			engineOpts = append(engineOpts, helm.WithBinary(cfg.HelmBinary))
		}
		engine = helm.NewExecEngine(engineOpts...)
	}

	return &Deployer{cfg: cfg, engine: engine}, nil
}

// Deploy rolls out a composite chart under the given release name.
//
// When release carries a known subchart name as its suffix the run is
// scoped to that one subchart; otherwise the parent and every subchart are
// reconciled. The returned report always covers every attempted target,
// failures included.
func (d *Deployer) Deploy(ctx context.Context, release, chartRef string) (*reconciler.Report, error) {
	ws, err := workspace.New(d.cfg.WorkRoot, release)
	if err != nil {
		return nil, err
	}

	if err := fetcher.Fetch(ctx, chartRef, ws.ChartDir()); err != nil {
		return nil, err
	}

	// The merge dry run must see the intact parent chart, so it runs
	// before the subcharts are detached.
	computed, err := d.computeValues(ctx, ws, release)
	if err != nil {
		return nil, err
	}
	computedPath, err := ws.WriteComputedOverrides(computed)
	if err != nil {
		return nil, err
	}

	if err := ws.DetachSubcharts(); err != nil {
		return nil, err
	}
	subcharts, err := ws.Subcharts()
	if err != nil {
		return nil, err
	}

	base, scoped := reconciler.ResolveScope(release, subcharts)
	slog.Info("deploy scope resolved",
		"release", base, "scoped_subchart", scoped, "subcharts", len(subcharts))

	doc, err := values.Parse(computed)
	if err != nil {
		return nil, err
	}

	valueFiles, err := d.writeOverrides(ws, doc, subcharts)
	if err != nil {
		return nil, err
	}
	valueFiles.computed = computedPath

	if err := d.ensureNamespace(ctx); err != nil {
		return nil, err
	}

	targets := d.buildTargets(ws, doc, base, scoped, subcharts, valueFiles)
	exec := reconciler.NewExecutor(d.engine, ws, d.cfg.Verbose)
	results := exec.Run(ctx, targets)

	report := &reconciler.Report{
		Release: base,
		RunID:   ws.RunID(),
		Results: results,
	}
	failed, err := reconciler.FailedReleases(ctx, d.engine, base)
	if err != nil {
		slog.Warn("failed to inspect release status after run", "error", err)
	} else {
		report.Failed = failed
	}
	return report, nil
}

// computeValues runs the merge dry run. The engine returns the merged
// document already extracted from the trace.
func (d *Deployer) computeValues(ctx context.Context, ws *workspace.Workspace, release string) ([]byte, error) {
	flags := append([]string{}, d.cfg.OverrideArgs...)
	if d.cfg.Namespace != "" {
		flags = append(flags, "--namespace", d.cfg.Namespace)
	}

	return d.engine.ComputedValues(ctx, release, ws.ChartDir(), flags)
}

// overrideFiles maps each target to its value file list.
type overrideFiles struct {
	computed  string
	global    string
	subcharts map[string]string
}

// writeOverrides partitions the merged document and persists the override
// files the targets deploy with.
func (d *Deployer) writeOverrides(ws *workspace.Workspace, doc *values.Document, subcharts []string) (*overrideFiles, error) {
	working := make(map[string]bool, len(subcharts))
	for _, name := range subcharts {
		working[name] = true
	}

	part, err := doc.Partition(working)
	if err != nil {
		return nil, err
	}

	files := &overrideFiles{subcharts: make(map[string]string, len(part.Subcharts))}
	if files.global, err = ws.WriteGlobalOverrides(part.Global); err != nil {
		return nil, err
	}
	for name, data := range part.Subcharts {
		path, err := ws.WriteSubchartOverrides(name, data)
		if err != nil {
			return nil, err
		}
		files.subcharts[name] = path
	}
	return files, nil
}

// buildTargets assembles the ordered reconcile list: parent first, then
// subcharts in lexical order. A scoped run reduces to the one subchart,
// released under the original composite name.
func (d *Deployer) buildTargets(ws *workspace.Workspace, doc *values.Document, base, scoped string, subcharts []string, files *overrideFiles) []reconciler.Target {
	extraArgs := append([]string{}, d.cfg.PassThroughArgs...)
	if d.cfg.Namespace != "" {
		extraArgs = append(extraArgs, "--namespace", d.cfg.Namespace)
	}

	subTarget := func(name string) reconciler.Target {
		valueFiles := []string{files.global}
		if path, ok := files.subcharts[name]; ok {
			valueFiles = append(valueFiles, path)
		}
		return reconciler.Target{
			Name:       name,
			Release:    base + "-" + name,
			Kind:       reconciler.KindSubchart,
			ChartDir:   ws.SubchartDir(name),
			ValueFiles: valueFiles,
			ExtraArgs:  extraArgs,
			Enabled:    doc.Enabled(name),
		}
	}

	if scoped != "" {
		return []reconciler.Target{subTarget(scoped)}
	}

	targets := make([]reconciler.Target, 0, len(subcharts)+1)
	targets = append(targets, reconciler.Target{
		Name:     base,
		Release:  base,
		Kind:     reconciler.KindParent,
		ChartDir: ws.ChartDir(),
		// The parent applies with the full merged document so its own
		// top-level templates render with the same inputs the dry run saw.
		ValueFiles: []string{files.computed},
		ExtraArgs:  extraArgs,
	})
	for _, name := range subcharts {
		targets = append(targets, subTarget(name))
	}
	return targets
}

// ensureNamespace creates the target namespace when asked to.
func (d *Deployer) ensureNamespace(ctx context.Context) error {
	if !d.cfg.CreateNamespace || d.cfg.Namespace == "" {
		return nil
	}

	client := d.cfg.KubeClient
	if client == nil {
		var err error
		if client, err = k8s.BuildClient(d.cfg.Kubeconfig); err != nil {
			return oomerrors.Wrap(oomerrors.ErrCodeApplyFailed,
				fmt.Sprintf("failed to build client for namespace %s", d.cfg.Namespace), err)
		}
	}
	return k8s.EnsureNamespace(ctx, client, d.cfg.Namespace)
}
