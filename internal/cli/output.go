package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/soireeapp/soiree-events/internal/event"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ListResult contains the data written by the list command.
type ListResult struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Filter    string         `json:"filter,omitempty"`
	Count     int            `json:"count"`
	Events    []*event.Event `json:"events"`
}

// WriteOutput writes the result in the specified format.
func WriteOutput(w io.Writer, result *ListResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *ListResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *ListResult) error {
	if result.Filter != "" && result.Filter != "No active filters" {
		fmt.Fprintf(w, "Filter: %s\n", result.Filter)
	}

	if result.Count == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	fmt.Fprintf(w, "%d events:\n\n", result.Count)
	for _, e := range result.Events {
		fmt.Fprintf(w, "  %s [%s]\n", e.Name, e.Category)
		fmt.Fprintf(w, "    %s", e.Date)
		if e.Time != "" {
			fmt.Fprintf(w, " at %s", e.Time)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    %s", e.Location)
		if e.Price != "" {
			fmt.Fprintf(w, " | %s", e.Price)
		}
		if e.Source != "" {
			fmt.Fprintf(w, " | via %s", e.Source)
		}
		fmt.Fprintln(w)
		if e.URL != "" {
			fmt.Fprintf(w, "    %s\n", e.URL)
		}
		fmt.Fprintln(w)
	}
	return nil
}
