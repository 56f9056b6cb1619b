package values

import (
	"bytes"
	"strings"
	"testing"
)

const mergedDoc = `global:
  repository: nexus3.example.org:10001
  pullPolicy: IfNotPresent
  common:
    serviceName: shared
  consul:
    replicas: 3
  nodePortPrefix: 302
log:
  enabled: false
  elasticsearch:
    replicas: 1
vid:
  enabled: true
  config:
    logstashServiceName: log-ls
db:
  enabled: true
extraList:
  - one
  - two
`

func parseDoc(t *testing.T, data string) *Document {
	t.Helper()
	d, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return d
}

func TestTopLevelKeysPreserveOrder(t *testing.T) {
	d := parseDoc(t, mergedDoc)

	want := []string{"global", "log", "vid", "db", "extraList"}
	got := d.TopLevelKeys()
	if len(got) != len(want) {
		t.Fatalf("TopLevelKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopLevelKeys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPartitionEmitsOnlyWorkingSetEntries(t *testing.T) {
	d := parseDoc(t, mergedDoc)

	subcharts := map[string]bool{"log": true, "vid": true}
	p, err := d.Partition(subcharts)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if len(p.Subcharts) != 2 {
		t.Fatalf("len(Subcharts) = %d, want 2", len(p.Subcharts))
	}
	if _, ok := p.Subcharts["db"]; ok {
		t.Error("db emitted despite missing working-set directory")
	}
	if _, ok := p.Subcharts["extraList"]; ok {
		t.Error("extraList emitted despite being a plain value block")
	}
	if p.Global == nil {
		t.Error("global override document not emitted")
	}
}

func TestPartitionStripsIndentation(t *testing.T) {
	d := parseDoc(t, mergedDoc)

	p, err := d.Partition(map[string]bool{"vid": true})
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	want := "enabled: true\nconfig:\n  logstashServiceName: log-ls\n"
	if string(p.Subcharts["vid"]) != want {
		t.Errorf("vid override = %q, want %q", p.Subcharts["vid"], want)
	}
}

func TestPartitionGlobalExclusion(t *testing.T) {
	d := parseDoc(t, mergedDoc)

	p, err := d.Partition(nil)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	global := string(p.Global)
	if !strings.HasPrefix(global, "global:\n") {
		t.Errorf("global override missing header: %q", global)
	}
	if strings.Contains(global, "common") || strings.Contains(global, "serviceName") {
		t.Errorf("excluded common block leaked into global override: %q", global)
	}
	if !strings.Contains(global, "consul") {
		t.Errorf("consul member must survive exclusion (range is half-open): %q", global)
	}
	if !strings.Contains(global, "nodePortPrefix: 302") {
		t.Errorf("member after excluded range missing: %q", global)
	}
}

func TestPartitionExclusionWithoutStopKey(t *testing.T) {
	doc := `global:
  common:
    serviceName: shared
  repository: nexus3.example.org:10001
`
	d := parseDoc(t, doc)

	p, err := d.Partition(nil)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if strings.Contains(string(p.Global), "common") {
		t.Errorf("common block leaked without a consul stop key: %q", p.Global)
	}
	if !strings.Contains(string(p.Global), "repository") {
		t.Errorf("unrelated member dropped: %q", p.Global)
	}
}

func TestPartitionIdempotent(t *testing.T) {
	d := parseDoc(t, mergedDoc)
	subcharts := map[string]bool{"log": true, "vid": true, "db": true}

	first, err := d.Partition(subcharts)
	if err != nil {
		t.Fatalf("first Partition failed: %v", err)
	}
	second, err := d.Partition(subcharts)
	if err != nil {
		t.Fatalf("second Partition failed: %v", err)
	}

	if !bytes.Equal(first.Global, second.Global) {
		t.Error("global override differs between runs")
	}
	for name := range first.Subcharts {
		if !bytes.Equal(first.Subcharts[name], second.Subcharts[name]) {
			t.Errorf("%s override differs between runs", name)
		}
	}
}

func TestPartitionLastEntryExtendsToEnd(t *testing.T) {
	doc := "vid:\n  enabled: true\ndb:\n  enabled: true\n  mariadb:\n    replicas: 2\n"
	d := parseDoc(t, doc)

	p, err := d.Partition(map[string]bool{"db": true})
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if !strings.Contains(string(p.Subcharts["db"]), "replicas: 2") {
		t.Errorf("last entry truncated: %q", p.Subcharts["db"])
	}
}

func TestPartitionPreservesComments(t *testing.T) {
	doc := "vid:\n  # operator note\n  enabled: true\n"
	d := parseDoc(t, doc)

	p, err := d.Partition(map[string]bool{"vid": true})
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if !strings.Contains(string(p.Subcharts["vid"]), "# operator note") {
		t.Errorf("comment dropped from override document: %q", p.Subcharts["vid"])
	}
}

func TestPartitionEmptyDocument(t *testing.T) {
	d := parseDoc(t, "")

	p, err := d.Partition(map[string]bool{"vid": true})
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if p.Global != nil || len(p.Subcharts) != 0 {
		t.Errorf("empty document produced output: %+v", p)
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	if _, err := Parse([]byte("- just\n- a\n- list\n")); err == nil {
		t.Error("expected error for non-mapping document")
	}
}
