package helm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
	utilexec "k8s.io/utils/exec"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
)

// DefaultBinary is the engine binary resolved from PATH.
const DefaultBinary = "helm"

// ExecEngine runs the release engine as a subprocess.
type ExecEngine struct {
	binary  string
	execer  utilexec.Interface
	limiter *rate.Limiter
}

// ExecOption configures an ExecEngine.
type ExecOption func(*ExecEngine)

// WithBinary overrides the engine binary path.
func WithBinary(path string) ExecOption {
	return func(e *ExecEngine) {
		if path != "" {
			e.binary = path
		}
	}
}

// WithExecer overrides the process execution layer. Used by tests.
func WithExecer(execer utilexec.Interface) ExecOption {
	return func(e *ExecEngine) {
		e.execer = execer
	}
}

// WithRateLimit overrides the engine invocation throttle.
func WithRateLimit(limiter *rate.Limiter) ExecOption {
	return func(e *ExecEngine) {
		e.limiter = limiter
	}
}

// NewExecEngine creates an exec-backed engine client.
// Invocations are throttled to one every 200ms: the engine backend handles
// rapid-fire release operations poorly and a deploy run issues one call per
// subchart.
func NewExecEngine(opts ...ExecOption) *ExecEngine {
	e := &ExecEngine{
		binary:  DefaultBinary,
		execer:  utilexec.New(),
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputedValues renders the chart with "upgrade --install --dry-run --debug"
// and extracts the merged values document from the trace.
// The flags slice must carry the operator's original flag order so the
// engine's right-most-wins precedence applies to the same-key conflicts.
func (e *ExecEngine) ComputedValues(ctx context.Context, release, chartDir string, flags []string) ([]byte, error) {
	args := append([]string{"upgrade", "--install", release, chartDir, "--dry-run", "--debug"}, flags...)

	out, err := e.run(ctx, args)
	if err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeRenderFailed,
			fmt.Sprintf("dry-run render of %s failed: %s", release, firstLine(out)), err)
	}

	return ExtractComputedValues(out)
}

// Apply installs or upgrades a release in place.
func (e *ExecEngine) Apply(ctx context.Context, req ApplyRequest, log io.Writer) error {
	args := []string{"upgrade", "--install", req.Release, req.ChartDir}
	for _, f := range req.ValueFiles {
		args = append(args, "-f", f)
	}
	args = append(args, req.ExtraArgs...)

	out, err := e.run(ctx, args)
	if log != nil {
		_, _ = log.Write(out)
	}
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeApplyFailed,
			fmt.Sprintf("upgrade of %s failed: %s", req.Release, firstLine(out)), err)
	}
	return nil
}

// Destroy removes a release and purges its history.
func (e *ExecEngine) Destroy(ctx context.Context, release string, log io.Writer) error {
	out, err := e.run(ctx, []string{"delete", "--purge", release})
	if log != nil {
		_, _ = log.Write(out)
	}
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeApplyFailed,
			fmt.Sprintf("delete of %s failed: %s", release, firstLine(out)), err)
	}
	return nil
}

// Releases lists all releases, including deleted and failed ones.
func (e *ExecEngine) Releases(ctx context.Context) ([]Release, error) {
	out, err := e.run(ctx, []string{"ls", "--all"})
	if err != nil {
		return nil, fmt.Errorf("release listing failed: %w", err)
	}
	return parseReleaseListing(out), nil
}

func (e *ExecEngine) run(ctx context.Context, args []string) ([]byte, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeTimeout, "waiting for engine slot", err)
	}

	slog.Debug("invoking release engine", "binary", e.binary, "args", strings.Join(args, " "))

	cmd := e.execer.CommandContext(ctx, e.binary, args...)
	return cmd.CombinedOutput()
}

// parseReleaseListing parses the engine's tabular release listing.
// Column widths vary between engine versions and the UPDATED column contains
// spaces, so fields are matched positionally only for the name and the
// status is located by token against the known status set.
func parseReleaseListing(out []byte) []Release {
	var releases []Release

	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] == "NAME" {
			continue
		}

		statusIdx := -1
		for i, f := range fields {
			if _, ok := knownStatuses[f]; ok {
				statusIdx = i
				break
			}
		}
		if statusIdx < 1 {
			continue
		}

		rel := Release{
			Name:   fields[0],
			Status: fields[statusIdx],
		}
		if statusIdx >= 2 {
			rel.Revision = fields[1]
		}
		if statusIdx+1 < len(fields) {
			rel.Chart = fields[statusIdx+1]
		}
		if statusIdx+2 < len(fields) {
			rel.Namespace = fields[len(fields)-1]
		}
		releases = append(releases, rel)
	}

	return releases
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
