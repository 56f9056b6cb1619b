package reconciler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
	"github.com/vasyly71/oom/pkg/helm"
	"github.com/vasyly71/oom/pkg/workspace"
)

// Executor reconciles a target list against the release engine.
type Executor struct {
	engine  helm.Engine
	ws      *workspace.Workspace
	verbose bool
}

// NewExecutor creates an executor. With verbose set, each target's engine
// log is echoed to stdout as the target completes.
func NewExecutor(engine helm.Engine, ws *workspace.Workspace, verbose bool) *Executor {
	return &Executor{engine: engine, ws: ws, verbose: verbose}
}

// Run reconciles every target in order and returns one result per target.
//
// A failed target never stops the loop and nothing is rolled back; callers
// inspect the results for per-target outcomes. The concurrency limit of one
// keeps execution strictly sequential in submission order.
func (e *Executor) Run(ctx context.Context, targets []Target) []Result {
	results := make([]Result, len(targets))

	var g errgroup.Group
	g.SetLimit(1)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = e.reconcile(ctx, target)
			return nil
		})
	}
	_ = g.Wait() // reconcile never returns an error; failures live in results

	return results
}

// reconcile runs one target's transition to completion.
func (e *Executor) reconcile(ctx context.Context, target Target) Result {
	res := Result{
		Target:  target.Name,
		Release: target.Release,
		Action:  target.action(),
		State:   StateApplying,
	}

	slog.Info("reconciling target",
		"target", target.Name,
		"release", target.Release,
		"kind", string(target.Kind),
		"action", string(res.Action),
	)

	start := time.Now()
	var err error
	switch res.Action {
	case ActionApply:
		err = e.applyTarget(ctx, target)
	case ActionRemove:
		err = e.removeTarget(ctx, target)
	}
	targetDuration.WithLabelValues(string(res.Action)).Observe(time.Since(start).Seconds())

	if e.verbose {
		e.echoLog(target.Release)
	}

	if err != nil {
		res.State = StateFailed
		res.Err = err
		res.Error = err.Error()
		targetTotal.WithLabelValues(string(res.Action), "failed").Inc()
		slog.Error("target failed", "target", target.Name, "release", target.Release, "error", err)
		return res
	}

	res.State = StateSucceeded
	targetTotal.WithLabelValues(string(res.Action), "succeeded").Inc()
	slog.Info("target succeeded", "target", target.Name, "release", target.Release)
	return res
}

func (e *Executor) applyTarget(ctx context.Context, target Target) error {
	log, err := e.ws.LogFile(target.Release)
	if err != nil {
		return err
	}
	defer log.Close()

	return e.engine.Apply(ctx, helm.ApplyRequest{
		Release:    target.Release,
		ChartDir:   target.ChartDir,
		ValueFiles: target.ValueFiles,
		ExtraArgs:  target.ExtraArgs,
	}, log)
}

// removeTarget deletes every deployed release matching the target's release
// name, most-recently-listed first, purging history. Several releases can
// match after naming drift across earlier runs.
func (e *Executor) removeTarget(ctx context.Context, target Target) error {
	log, err := e.ws.LogFile(target.Release)
	if err != nil {
		return err
	}
	defer log.Close()

	releases, err := e.engine.Releases(ctx)
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeApplyFailed,
			fmt.Sprintf("failed to list releases for removal of %s", target.Release), err)
	}

	var matches []string
	for _, rel := range releases {
		if nameMatches(rel.Name, target.Release) {
			matches = append(matches, rel.Name)
		}
	}
	if len(matches) == 0 {
		fmt.Fprintf(log, "no deployed release matches %s, nothing to remove\n", target.Release)
		return nil
	}

	var firstErr error
	for i := len(matches) - 1; i >= 0; i-- {
		if err := e.engine.Destroy(ctx, matches[i], log); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// nameMatches reports whether a deployed release belongs to a target
// release name. Substring matching covers releases left behind by earlier
// naming schemes.
func nameMatches(deployed, release string) bool {
	return strings.Contains(deployed, release)
}

// echoLog streams a target's engine log to stdout.
func (e *Executor) echoLog(release string) {
	path := filepath.Join(e.ws.LogDir(), release+".log")
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	fmt.Printf("--- %s ---\n", release)
	_, _ = io.Copy(os.Stdout, f)
}
