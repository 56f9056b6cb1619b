package values

import (
	"bytes"

	"gopkg.in/yaml.v3"

	oomerrors "github.com/vasyly71/oom/pkg/errors"
)

// Document is a merged configuration document parsed into an ordered node
// tree. Top-level member order matches the source document.
type Document struct {
	root *yaml.Node
}

// Parse builds a Document from merged values bytes.
// The bytes come straight out of the engine's dry-run trace; a parse failure
// means the render step produced garbage and carries the render error code.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeRenderFailed,
			"merged values document is not valid YAML", err)
	}

	d := &Document{}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		d.root = doc.Content[0]
	}

	if d.root != nil && d.root.Kind != yaml.MappingNode && d.root.Tag != "!!null" {
		return nil, oomerrors.New(oomerrors.ErrCodeRenderFailed,
			"merged values document is not a mapping")
	}

	return d, nil
}

// TopLevelKeys returns the document's top-level keys in source order.
func (d *Document) TopLevelKeys() []string {
	if d.root == nil || d.root.Kind != yaml.MappingNode {
		return nil
	}

	keys := make([]string, 0, len(d.root.Content)/2)
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		keys = append(keys, d.root.Content[i].Value)
	}
	return keys
}

// encodeNode serializes a node as a standalone document with two-space
// indentation. Encoding the same node twice yields identical bytes, which is
// what makes partitioning idempotent.
func encodeNode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal, "failed to encode override document", err)
	}
	if err := enc.Close(); err != nil {
		return nil, oomerrors.Wrap(oomerrors.ErrCodeInternal, "failed to finalize override document", err)
	}
	return buf.Bytes(), nil
}
