package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat is the rendering of a command report.
type OutputFormat string

const (
	// FormatText is human-readable output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON output.
	FormatJSON OutputFormat = "json"
)

// TextWriter is implemented by reports with a custom text rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// Formatter writes command reports.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter renders TextWriter values with WriteText and anything else
// with %v.
type TextFormatter struct{}

// FormatTo writes data to w as text.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	if tw, ok := data.(TextWriter); ok {
		return tw.WriteText(w)
	}
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter renders data as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to w as JSON.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter returns the formatter for format. An empty format means text.
func NewFormatter(format OutputFormat) (Formatter, error) {
	switch format {
	case FormatText, "":
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, NewConfigError("format", fmt.Sprintf("unsupported output format %q (valid: text, json)", format))
	}
}
