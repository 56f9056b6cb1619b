package deploy

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/vasyly71/oom/pkg/helm"
	"github.com/vasyly71/oom/pkg/reconciler"
	"github.com/vasyly71/oom/pkg/workspace"
)

// Undeploy purges the release and everything deployed under it.
//
// Every listed release whose name is the given name or starts with it
// followed by a hyphen is deleted, subchart releases first and the parent
// last. The run's workspace is cleared as part of the removal.
func (d *Deployer) Undeploy(ctx context.Context, release string) (*reconciler.Report, error) {
	ws, err := workspace.New(d.cfg.WorkRoot, release)
	if err != nil {
		return nil, err
	}

	releases, err := d.engine.Releases(ctx)
	if err != nil {
		return nil, err
	}

	matches := matchReleases(releases, release)
	if len(matches) == 0 {
		slog.Info("nothing deployed under release", "release", release)
		return &reconciler.Report{Release: release, RunID: ws.RunID()}, nil
	}

	log, err := ws.LogFile(release)
	if err != nil {
		return nil, err
	}
	defer log.Close()

	report := &reconciler.Report{Release: release, RunID: ws.RunID()}
	for _, name := range matches {
		res := reconciler.Result{
			Target:  name,
			Release: name,
			Action:  reconciler.ActionRemove,
			State:   reconciler.StateSucceeded,
		}
		if err := d.engine.Destroy(ctx, name, log); err != nil {
			res.State = reconciler.StateFailed
			res.Err = err
			res.Error = err.Error()
			slog.Error("failed to remove release", "release", name, "error", err)
		} else {
			slog.Info("release removed", "release", name)
		}
		report.Results = append(report.Results, res)
	}

	failed, err := reconciler.FailedReleases(ctx, d.engine, release)
	if err != nil {
		slog.Warn("failed to inspect release status after removal", "error", err)
	} else {
		report.Failed = failed
	}
	return report, nil
}

// matchReleases selects the deployed releases belonging to a release name,
// ordered subcharts first and the parent itself last.
func matchReleases(releases []helm.Release, release string) []string {
	var matches []string
	for _, rel := range releases {
		if rel.Name == release || strings.HasPrefix(rel.Name, release+"-") {
			matches = append(matches, rel.Name)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if (matches[i] == release) != (matches[j] == release) {
			return matches[j] == release
		}
		return matches[i] < matches[j]
	})
	return matches
}
