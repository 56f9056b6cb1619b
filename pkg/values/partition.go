package values

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalKey is the reserved top-level entry holding overrides that
	// propagate to every subchart.
	GlobalKey = "global"

	// excludeStart..excludeStop marks the member range of the global entry
	// that never propagates: those keys configure shared infrastructure
	// subcharts, not application settings. The range is half-open; the
	// excludeStop member itself stays.
	excludeStart = "common"
	excludeStop  = "consul"
)

// Partition is the result of splitting a merged document.
type Partition struct {
	// Global is the global-override document, or nil when the source has no
	// global entry.
	Global []byte

	// Subcharts maps subchart name to its override document. Only names
	// present in the working set appear; other top-level entries are value
	// blocks with no deployable counterpart and are skipped.
	Subcharts map[string][]byte
}

// Partition splits the document by its top-level entries. subcharts is the
// set of subchart directories present in the working set.
//
// Running Partition twice over the same document and working set produces
// byte-identical output.
func (d *Document) Partition(subcharts map[string]bool) (*Partition, error) {
	p := &Partition{Subcharts: make(map[string][]byte)}
	if d.root == nil || d.root.Kind != yaml.MappingNode {
		return p, nil
	}

	for i := 0; i+1 < len(d.root.Content); i += 2 {
		key := d.root.Content[i]
		value := d.root.Content[i+1]

		if key.Value == GlobalKey {
			doc, err := encodeGlobal(key, value)
			if err != nil {
				return nil, err
			}
			p.Global = doc
			continue
		}

		if !subcharts[key.Value] {
			slog.Debug("no subchart directory for top-level entry, skipping", "key", key.Value)
			continue
		}

		doc, err := encodeNode(value)
		if err != nil {
			return nil, err
		}
		p.Subcharts[key.Value] = doc
	}

	return p, nil
}

// encodeGlobal emits the global entry as a standalone document, keeping the
// global: header and dropping the excluded member range first.
func encodeGlobal(key, value *yaml.Node) ([]byte, error) {
	pruned := pruneExcludedRange(value)

	wrapper := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: key.Value},
			pruned,
		},
	}
	return encodeNode(wrapper)
}

// pruneExcludedRange returns a copy of the global value node with members
// from excludeStart up to (not including) excludeStop removed. When
// excludeStop is absent, only the excludeStart member is dropped.
func pruneExcludedRange(value *yaml.Node) *yaml.Node {
	if value.Kind != yaml.MappingNode {
		return value
	}

	startIdx := -1
	stopIdx := -1
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch value.Content[i].Value {
		case excludeStart:
			if startIdx < 0 {
				startIdx = i
			}
		case excludeStop:
			if startIdx >= 0 && stopIdx < 0 {
				stopIdx = i
			}
		}
	}
	if startIdx < 0 {
		return value
	}
	if stopIdx < 0 {
		stopIdx = startIdx + 2
	}

	pruned := *value
	pruned.Content = make([]*yaml.Node, 0, len(value.Content)-(stopIdx-startIdx))
	pruned.Content = append(pruned.Content, value.Content[:startIdx]...)
	pruned.Content = append(pruned.Content, value.Content[stopIdx:]...)
	return &pruned
}
