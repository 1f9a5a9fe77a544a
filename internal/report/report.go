// Package report renders calculation results, fuel listings and batch reports as
// tables, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghg-emissions-engine/internal/emissions"
	"github.com/rshade/ghg-emissions-engine/internal/fuel"
	"github.com/rshade/ghg-emissions-engine/internal/inventory"
)

type constError string

func (e constError) Error() string { return string(e) }

// Errors returned by Render.
const (
	ErrUnknownFormat   = constError("unknown output format")
	ErrUnsupportedData = constError("unsupported report data")
)

// Format is an output encoding.
type Format string

// Formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every output format.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat parses an output format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes data to w in format. Supported data are emissions.Result,
// []emissions.Result, []fuel.Definition and *inventory.Report.
func Render(w io.Writer, format Format, data any) error {
	view, err := toView(data)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
		t := &tableWriter{out: w, styled: isTerminal(w)}
		return t.render(view)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func toView(data any) (any, error) {
	switch v := data.(type) {
	case emissions.Result:
		return NewResultView(v), nil
	case *emissions.Result:
		return NewResultView(*v), nil
	case []emissions.Result:
		views := make([]ResultView, len(v))
		for i, r := range v {
			views[i] = NewResultView(r)
		}
		return views, nil
	case []fuel.Definition:
		views := make([]FuelView, len(v))
		for i, d := range v {
			views[i] = NewFuelView(d)
		}
		return views, nil
	case *inventory.Report:
		return NewBatchView(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedData, data)
	}
}
