package values

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Flatten returns the document as dotted-path → scalar-string pairs.
// Container keys contribute path segments only; scalar members with a
// non-empty value produce a pair. Sequences are containers without
// addressable keys and are not descended into.
func (d *Document) Flatten() map[string]string {
	table := make(map[string]string)
	if d.root != nil {
		flattenInto("", d.root, table)
	}
	return table
}

// Enabled reports whether the subchart's <name>.enabled path is truthy.
// The engine normalizes booleans in computed values, but hand-written
// override files can still carry the other YAML 1.1 spellings. A missing
// path is disabled: removal is the safe default for a subchart the merged
// configuration says nothing about.
func (d *Document) Enabled(name string) bool {
	switch strings.ToLower(d.Flatten()[name+".enabled"]) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

func flattenInto(prefix string, node *yaml.Node, table map[string]string) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenInto(path, node.Content[i+1], table)
		}

	case yaml.ScalarNode:
		if prefix != "" && node.Value != "" && node.Tag != "!!null" {
			table[prefix] = node.Value
		}

	case yaml.AliasNode:
		if node.Alias != nil {
			flattenInto(prefix, node.Alias, table)
		}
	}
}
