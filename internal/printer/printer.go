// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/bethropolis/phind/internal/walker"
)

// Printer writes matched entries to the configured output destination.
type Printer struct {
	output      io.Writer
	count       atomic.Int64
	useColors   bool
	absolute    bool
	jsonOutput  bool
	jsonStarted bool
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithAbsolute switches output to absolute paths
func (p *Printer) WithAbsolute(enabled bool) *Printer {
	p.absolute = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// JSONEntry represents one match in JSON output
type JSONEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// PrintMatch outputs one matched entry
func (p *Printer) PrintMatch(m walker.Match) {
	p.count.Add(1)

	path := m.RelPath
	if p.absolute {
		path = m.Path
	}

	if p.jsonOutput {
		if !p.jsonStarted {
			fmt.Fprint(p.output, "[\n")
			p.jsonStarted = true
		} else {
			fmt.Fprint(p.output, ",\n")
		}

		jsonData, err := json.Marshal(JSONEntry{Path: path, Type: m.Type()})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
			return
		}
		fmt.Fprintf(p.output, "  %s", jsonData)
		return
	}

	if p.useColors && m.IsDir {
		fmt.Fprintf(p.output, "\033[1;34m%s\033[0m\n", path)
	} else {
		fmt.Fprintf(p.output, "%s\n", path)
	}
}

// Finalize completes any pending operations (like closing the JSON array)
func (p *Printer) Finalize() {
	if p.jsonOutput {
		if p.jsonStarted {
			fmt.Fprint(p.output, "\n]\n")
		} else {
			fmt.Fprint(p.output, "[]\n")
		}
	}
}

// GetCount returns the number of matches printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}
