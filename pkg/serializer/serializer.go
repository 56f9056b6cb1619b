// Package serializer formats tool output for stdout or files.
//
// It is used for the final release status report. Logs go through slog on
// stderr; only serialized output is written to stdout, so reports stay
// machine-parseable.
package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatYAML is the default, human-readable output format.
	FormatYAML Format = "yaml"

	// FormatJSON is the compact machine-parseable output format.
	FormatJSON Format = "json"

	// FormatTable is a plain-text tabular representation.
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return false
	}
	return true
}

// TableMarshaler is implemented by types that render themselves as a table.
// Types without it fall back to YAML when FormatTable is requested.
type TableMarshaler interface {
	MarshalTable() string
}

// Writer serializes values to an output stream in a fixed format.
type Writer struct {
	out    io.Writer
	format Format
}

// NewStdoutWriter creates a Writer that serializes to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(os.Stdout, format)
}

// NewWriter creates a Writer for the given stream and format.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format}
}

// Serialize writes v to the output stream in the writer's format.
func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(w.out, string(data))
		return err

	case FormatTable:
		if tm, ok := v.(TableMarshaler); ok {
			_, err := fmt.Fprint(w.out, tm.MarshalTable())
			return err
		}
		fallthrough

	default:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = w.out.Write(data)
		return err
	}
}
