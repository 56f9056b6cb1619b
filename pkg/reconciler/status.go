package reconciler

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/vasyly71/oom/pkg/helm"
)

// Report summarizes a deploy run: per-target outcomes plus the releases the
// engine still lists as failed under the run's release name.
type Report struct {
	Release string         `json:"release" yaml:"release"`
	RunID   string         `json:"runId" yaml:"runId"`
	Results []Result       `json:"results" yaml:"results"`
	Failed  []helm.Release `json:"failedReleases,omitempty" yaml:"failedReleases,omitempty"`
}

// Succeeded reports whether every target completed cleanly.
func (r Report) Succeeded() bool {
	for _, res := range r.Results {
		if res.State != StateSucceeded {
			return false
		}
	}
	return true
}

// MarshalTable renders the report for terminal output.
func (r Report) MarshalTable() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "TARGET\tRELEASE\tACTION\tSTATE\tERROR")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			res.Target, res.Release, res.Action, res.State, res.Error)
	}
	tw.Flush()

	if len(r.Failed) > 0 {
		sb.WriteString("\nFailed releases:\n")
		for _, rel := range r.Failed {
			fmt.Fprintf(&sb, "  %s (revision %s)\n", rel.Name, rel.Revision)
		}
	}
	return sb.String()
}

// FailedReleases lists engine releases under the given release name that
// are stuck in the failed state after a run.
func FailedReleases(ctx context.Context, engine helm.Engine, release string) ([]helm.Release, error) {
	releases, err := engine.Releases(ctx)
	if err != nil {
		return nil, err
	}

	var failed []helm.Release
	for _, rel := range releases {
		if rel.Status == helm.StatusFailed && strings.Contains(rel.Name, release) {
			failed = append(failed, rel)
		}
	}
	return failed, nil
}
