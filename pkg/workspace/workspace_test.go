package workspace

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := New(t.TempDir(), "demo")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ws
}

func seedChart(t *testing.T, ws *Workspace, subcharts ...string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(ws.ChartDir(), "Chart.yaml"), []byte("name: onap\n"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, name := range subcharts {
		dir := filepath.Join(ws.ChartDir(), "charts", name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "Chart.yaml"), []byte("name: "+name+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNewClearsPreviousRun(t *testing.T) {
	root := t.TempDir()

	ws1, err := New(root, "demo")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	stale := filepath.Join(ws1.ChartDir(), "stale.yaml")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(root, "demo"); err != nil {
		t.Fatalf("second New failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("previous run's file survived workspace rebuild")
	}
}

func TestDetachSubcharts(t *testing.T) {
	ws := newTestWorkspace(t)
	seedChart(t, ws, "vid", "log", "db")

	if err := ws.DetachSubcharts(); err != nil {
		t.Fatalf("DetachSubcharts failed: %v", err)
	}

	names, err := ws.Subcharts()
	if err != nil {
		t.Fatalf("Subcharts failed: %v", err)
	}
	if want := []string{"db", "log", "vid"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Subcharts() = %v, want %v", names, want)
	}

	// The parent chart must no longer carry the subchart templates.
	if _, err := os.Stat(filepath.Join(ws.ChartDir(), "charts", "vid")); !os.IsNotExist(err) {
		t.Error("subchart vid still present under parent chart")
	}
	if !ws.HasSubchart("vid") {
		t.Error("HasSubchart(vid) = false after detach")
	}
	if ws.HasSubchart("unknown") {
		t.Error("HasSubchart(unknown) = true")
	}
}

func TestDetachSubchartsWithoutChartsDir(t *testing.T) {
	ws := newTestWorkspace(t)

	if err := ws.DetachSubcharts(); err != nil {
		t.Fatalf("DetachSubcharts failed on chart without subcharts: %v", err)
	}
	names, err := ws.Subcharts()
	if err != nil {
		t.Fatalf("Subcharts failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Subcharts() = %v, want empty", names)
	}
}

func TestWriteOverrides(t *testing.T) {
	ws := newTestWorkspace(t)

	computed, err := ws.WriteComputedOverrides([]byte("a: 1\n"))
	if err != nil {
		t.Fatalf("WriteComputedOverrides failed: %v", err)
	}
	global, err := ws.WriteGlobalOverrides([]byte("global: {}\n"))
	if err != nil {
		t.Fatalf("WriteGlobalOverrides failed: %v", err)
	}
	sub, err := ws.WriteSubchartOverrides("vid", []byte("enabled: true\n"))
	if err != nil {
		t.Fatalf("WriteSubchartOverrides failed: %v", err)
	}

	for _, path := range []string{computed, global, sub} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("override file %s missing: %v", path, err)
		}
	}

	data, err := os.ReadFile(sub)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "enabled: true\n" {
		t.Errorf("subchart override content = %q", data)
	}
}

func TestLogFilePerTarget(t *testing.T) {
	ws := newTestWorkspace(t)

	f, err := ws.LogFile("demo-vid")
	if err != nil {
		t.Fatalf("LogFile failed: %v", err)
	}
	if _, err := f.WriteString("upgrade ok\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(filepath.Join(ws.LogDir(), "demo-vid.log"))
	if err != nil {
		t.Fatalf("log file not where expected: %v", err)
	}
	if string(data) != "upgrade ok\n" {
		t.Errorf("log content = %q", data)
	}
}
