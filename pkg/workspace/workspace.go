// Package workspace owns the working tree for a single deploy run.
//
// Every run gets a cleared, rebuilt directory under the cache root holding
// the unpacked parent chart, the detached subchart directories, the computed
// override documents, and the per-target log files. The Workspace value is
// passed explicitly to every component; there is no package-level state, so
// a future parallel run only needs a second Workspace.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
)

// Override document file names inside the overrides directory.
const (
	ComputedOverridesFile = "computed-overrides.yaml"
	GlobalOverridesFile   = "global-overrides.yaml"
)

// Workspace is the run-scoped working tree for one release.
type Workspace struct {
	root  string
	runID string
}

// DefaultRoot returns the per-user cache root for deploy workspaces.
func DefaultRoot() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(cache, "oom", "deploy"), nil
}

// New creates the workspace for a release under root, clearing any previous
// run's tree first. Concurrent runs against the same root are not supported.
func New(root, release string) (*Workspace, error) {
	ws := &Workspace{
		root:  filepath.Join(root, release),
		runID: uuid.New().String(),
	}

	if err := os.RemoveAll(ws.root); err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal,
			fmt.Sprintf("failed to clear workspace %s", ws.root), err)
	}

	for _, dir := range []string{ws.ChartDir(), ws.subchartsDir(), ws.overridesDir(), ws.LogDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal,
				fmt.Sprintf("failed to create workspace directory %s", dir), err)
		}
	}

	slog.Debug("workspace ready", "root", ws.root, "run_id", ws.runID)
	return ws, nil
}

// RunID identifies this run; the log directory is keyed by it.
func (w *Workspace) RunID() string { return w.runID }

// ChartDir is where the parent chart is unpacked.
func (w *Workspace) ChartDir() string { return filepath.Join(w.root, "chart") }

func (w *Workspace) subchartsDir() string { return filepath.Join(w.root, "subcharts") }

func (w *Workspace) overridesDir() string { return filepath.Join(w.root, "overrides") }

// LogDir holds one log file per target for this run.
func (w *Workspace) LogDir() string { return filepath.Join(w.root, "logs", w.runID) }

// DetachSubcharts moves every directory under the parent chart's charts/
// into the workspace subcharts tree. The parent release must not deploy the
// subchart templates itself, and the detached listing is the reconciler's
// working set.
func (w *Workspace) DetachSubcharts() error {
	chartsDir := filepath.Join(w.ChartDir(), "charts")

	entries, err := os.ReadDir(chartsDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return oomerrors.Wrap(oomerrors.ErrCodeInternal, "failed to list parent subcharts", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		src := filepath.Join(chartsDir, entry.Name())
		dst := filepath.Join(w.subchartsDir(), entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return oomerrors.Wrap(oomerrors.ErrCodeInternal,
				fmt.Sprintf("failed to detach subchart %s", entry.Name()), err)
		}
	}
	return nil
}

// Subcharts returns the detached subchart names in lexical order.
func (w *Workspace) Subcharts() ([]string, error) {
	entries, err := os.ReadDir(w.subchartsDir())
	if err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal, "failed to list subcharts", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// HasSubchart reports whether a detached subchart directory exists.
func (w *Workspace) HasSubchart(name string) bool {
	info, err := os.Stat(filepath.Join(w.subchartsDir(), name))
	return err == nil && info.IsDir()
}

// SubchartDir returns the detached directory for a subchart.
func (w *Workspace) SubchartDir(name string) string {
	return filepath.Join(w.subchartsDir(), name)
}

// WriteComputedOverrides persists the full merged values document.
func (w *Workspace) WriteComputedOverrides(data []byte) (string, error) {
	return w.writeOverride(ComputedOverridesFile, data)
}

// WriteGlobalOverrides persists the global override document.
func (w *Workspace) WriteGlobalOverrides(data []byte) (string, error) {
	return w.writeOverride(GlobalOverridesFile, data)
}

// WriteSubchartOverrides persists a subchart's override document.
func (w *Workspace) WriteSubchartOverrides(name string, data []byte) (string, error) {
	return w.writeOverride(name+"-overrides.yaml", data)
}

func (w *Workspace) writeOverride(name string, data []byte) (string, error) {
	path := filepath.Join(w.overridesDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", oomerrors.Wrap(oomerrors.ErrCodeInternal,
			fmt.Sprintf("failed to write override file %s", name), err)
	}

	slog.Debug("override file written", "path", path, "size_bytes", len(data))
	return path, nil
}

// LogFile creates (or truncates) the log file for a target.
func (w *Workspace) LogFile(target string) (*os.File, error) {
	path := filepath.Join(w.LogDir(), target+".log")
	f, err := os.Create(path)
	if err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal,
			fmt.Sprintf("failed to create log file for %s", target), err)
	}
	return f, nil
}
