package serializer

import (
	"bytes"
	"strings"
	"testing"
)

type fakeReport struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
}

func (f fakeReport) MarshalTable() string {
	return "NAME\tSTATUS\n" + f.Name + "\t" + f.Status + "\n"
}

func TestFormatIsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatYAML, false},
		{FormatJSON, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		if got := tt.format.IsUnknown(); got != tt.want {
			t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatYAML)

	if err := w.Serialize(fakeReport{Name: "demo-db", Status: "FAILED"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "name: demo-db") {
		t.Errorf("yaml output missing name field: %q", buf.String())
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)

	if err := w.Serialize(fakeReport{Name: "demo-db", Status: "FAILED"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "FAILED"`) {
		t.Errorf("json output missing status field: %q", buf.String())
	}
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatTable)

	if err := w.Serialize(fakeReport{Name: "demo-db", Status: "FAILED"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "NAME\tSTATUS") {
		t.Errorf("table output missing header: %q", buf.String())
	}
}

func TestSerializeTableFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatTable)

	// Plain maps have no table form.
	if err := w.Serialize(map[string]string{"a": "b"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "a: b") {
		t.Errorf("fallback yaml output = %q", buf.String())
	}
}
