// Package values handles the merged configuration document produced by the
// engine's dry-run render.
//
// The document is parsed into an ordered YAML node tree and sliced by node
// identity. Member order and comments survive the round trip, and the
// indentation handling that a raw line-range split would need disappears
// entirely: re-rooting a subchart's mapping at the document top level is the
// indentation strip.
//
// Three operations are exposed:
//
//   - Parse builds a Document from the raw merged values.
//   - Document.Partition splits it into one global override document (the
//     global: entry minus its common:..consul: member range, which belongs
//     to shared infrastructure subcharts and never propagates) plus one
//     override document per subchart that exists in the working set.
//   - Document.Flatten / Document.Enabled derive the dotted-path enablement
//     table used to decide install-or-remove per subchart.
package values
