package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputWriter handles formatted output for commands.
type OutputWriter struct {
	w      io.Writer
	isJSON bool
}

// NewOutputWriter creates a new OutputWriter.
func NewOutputWriter(w io.Writer, isJSON bool) *OutputWriter {
	return &OutputWriter{w: w, isJSON: isJSON}
}

// IsJSON reports whether machine-readable output was requested.
func (o *OutputWriter) IsJSON() bool {
	return o.isJSON
}

// WriteJSON writes data as formatted JSON.
func (o *OutputWriter) WriteJSON(data interface{}) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteResult writes the result in the appropriate format.
func (o *OutputWriter) WriteResult(data interface{}) error {
	if o.isJSON {
		return o.WriteJSON(data)
	}
	// For non-JSON output, commands format their own output
	return nil
}

// PrintSection prints a section header.
func (o *OutputWriter) PrintSection(title string) {
	fmt.Fprintf(o.w, "\n%s\n", title)
	fmt.Fprintln(o.w, strings.Repeat("-", len(title)))
}

// PrintKeyValue prints a key-value pair.
func (o *OutputWriter) PrintKeyValue(key, value string) {
	fmt.Fprintf(o.w, "%-20s %s\n", key+":", value)
}

// PrintLine prints a line of text.
func (o *OutputWriter) PrintLine(format string, args ...interface{}) {
	fmt.Fprintf(o.w, format+"\n", args...)
}

// PrintError prints an error message.
func PrintError(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "Error: "+format+"\n", args...)
}
