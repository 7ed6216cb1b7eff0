package event

import (
	"strings"
	"testing"
)

func validCandidate() Candidate {
	return Candidate{
		Name:      "Brooklyn Street Art Walk",
		Category:  "art",
		URL:       "https://example.com/events/street-art-walk",
		StartDate: "2026-01-24",
		Source:    "NYC For Free",
	}
}

func TestNormalizeRejectsInvalidCandidates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
	}{
		{"missing name", func(c *Candidate) { c.Name = "" }},
		{"name too short after trim", func(c *Candidate) { c.Name = " a " }},
		{"missing url", func(c *Candidate) { c.URL = "" }},
		{"relative url", func(c *Candidate) { c.URL = "/events/foo" }},
		{"missing start date", func(c *Candidate) { c.StartDate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)
			if got := Normalize(c); got != nil {
				t.Errorf("Normalize() = %+v, want nil", got)
			}
		})
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	evt := Normalize(validCandidate())
	if evt == nil {
		t.Fatal("Normalize() returned nil for a valid candidate")
	}

	if evt.Date != "Upcoming" {
		t.Errorf("Date = %q, want %q", evt.Date, "Upcoming")
	}
	if evt.Time != "See details" {
		t.Errorf("Time = %q, want %q", evt.Time, "See details")
	}
	if evt.Location != "New York City" {
		t.Errorf("Location = %q, want %q", evt.Location, "New York City")
	}
	if evt.Price != "free" {
		t.Errorf("Price = %q, want %q", evt.Price, "free")
	}
	if evt.Spots != defaultSpots {
		t.Errorf("Spots = %d, want %d", evt.Spots, defaultSpots)
	}
	if evt.EndDate != evt.StartDate {
		t.Errorf("EndDate = %q, want StartDate %q", evt.EndDate, evt.StartDate)
	}
	if evt.Description != evt.Name {
		t.Errorf("Description = %q, want name %q", evt.Description, evt.Name)
	}
	if len(evt.Highlights) == 0 {
		t.Error("expected generated highlights for candidate without any")
	}
}

func TestNormalizeBoundsFields(t *testing.T) {
	c := validCandidate()
	c.Name = strings.Repeat("n", 300)
	c.Description = strings.Repeat("d", 1000)
	c.Address = strings.Repeat("a", 600)
	c.Category = "  ART "
	c.Highlights = []string{"one", "two", "three", "four", "five", "six", "seven"}
	c.Spots = "not-a-number"

	evt := Normalize(c)
	if evt == nil {
		t.Fatal("Normalize() returned nil")
	}

	if len(evt.Name) != maxNameLen {
		t.Errorf("Name length = %d, want %d", len(evt.Name), maxNameLen)
	}
	if len(evt.Description) != maxDescriptionLen {
		t.Errorf("Description length = %d, want %d", len(evt.Description), maxDescriptionLen)
	}
	if len(evt.Address) != maxAddressLen {
		t.Errorf("Address length = %d, want %d", len(evt.Address), maxAddressLen)
	}
	if evt.Category != "art" {
		t.Errorf("Category = %q, want lower-cased %q", evt.Category, "art")
	}
	if len(evt.Highlights) != maxHighlights {
		t.Errorf("Highlights length = %d, want %d", len(evt.Highlights), maxHighlights)
	}
	if evt.Spots != defaultSpots {
		t.Errorf("Spots = %d, want fallback %d", evt.Spots, defaultSpots)
	}
}

func TestNormalizeCoercesSpots(t *testing.T) {
	c := validCandidate()
	c.Spots = " 120 "
	evt := Normalize(c)
	if evt == nil {
		t.Fatal("Normalize() returned nil")
	}
	if evt.Spots != 120 {
		t.Errorf("Spots = %d, want 120", evt.Spots)
	}
}

func TestNormalizeKeepsExplicitEndDate(t *testing.T) {
	c := validCandidate()
	c.EndDate = "2026-01-26"
	evt := Normalize(c)
	if evt == nil {
		t.Fatal("Normalize() returned nil")
	}
	if evt.EndDate != "2026-01-26" {
		t.Errorf("EndDate = %q, want 2026-01-26", evt.EndDate)
	}
}
