package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/soireeapp/soiree-events/internal/event"
)

func sampleResult() *ListResult {
	return &ListResult{
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Count:     2,
		Events: []*event.Event{
			{
				Name:     "Rooftop Jazz Night",
				Category: "music",
				Date:     "Sat, Mar 7",
				Time:     "7:00 PM",
				Location: "Chelsea",
				Price:    "free",
				Source:   "NYC For Free",
				URL:      "https://example.com/jazz",
			},
			{
				Name:     "Gallery Opening",
				Category: "art",
				Date:     "March 10, 2026",
				Location: "SoHo",
			},
		},
	}
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"2 events:",
		"Rooftop Jazz Night [music]",
		"Sat, Mar 7 at 7:00 PM",
		"Chelsea | free | via NYC For Free",
		"https://example.com/jazz",
		"Gallery Opening [art]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOutputTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &ListResult{FetchedAt: time.Now(), Events: []*event.Event{}}
	if err := WriteOutput(&buf, result, FormatText); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	var decoded ListResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if decoded.Count != 2 || len(decoded.Events) != 2 {
		t.Errorf("decoded count = %d, events = %d", decoded.Count, len(decoded.Events))
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("yaml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSortEvents(t *testing.T) {
	events := []*event.Event{
		{Name: "Beta", Category: "music", StartDate: "2026-03-10"},
		{Name: "Alpha", Category: "art", StartDate: "2026-03-05"},
		{Name: "Gamma", Category: "art"},
	}

	if err := sortEvents(events, SortByDate); err != nil {
		t.Fatalf("sortEvents: %v", err)
	}
	if events[0].Name != "Alpha" || events[2].Name != "Gamma" {
		t.Errorf("date order = %s, %s, %s", events[0].Name, events[1].Name, events[2].Name)
	}

	if err := sortEvents(events, SortByCategory); err != nil {
		t.Fatalf("sortEvents: %v", err)
	}
	if events[0].Category != "art" || events[2].Category != "music" {
		t.Errorf("category order = %s, %s, %s", events[0].Category, events[1].Category, events[2].Category)
	}

	if err := sortEvents(events, SortByName); err != nil {
		t.Fatalf("sortEvents: %v", err)
	}
	if events[0].Name != "Alpha" || events[1].Name != "Beta" {
		t.Errorf("name order = %s, %s, %s", events[0].Name, events[1].Name, events[2].Name)
	}

	if err := sortEvents(events, SortOrder("price")); err == nil {
		t.Error("expected error for unknown sort order")
	}
}
