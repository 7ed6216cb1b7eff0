package event

import (
	"strconv"
	"strings"
)

// Field length limits enforced by Normalize. They mirror the column widths
// of the events table.
const (
	maxNameLen        = 255
	maxDateLen        = 100
	maxTimeLen        = 100
	maxLocationLen    = 255
	maxAddressLen     = 500
	maxPriceLen       = 50
	maxDescriptionLen = 500
	maxURLLen         = 500
	maxHighlights     = 5

	defaultSpots = 50
)

// Normalize validates and coerces a Candidate into an Event. It returns nil
// when the candidate has no usable name, no absolute URL, or no resolved
// start date. An event without a start date is never persisted; a missing
// date is preferred over a wrong one.
func Normalize(c Candidate) *Event {
	name := strings.TrimSpace(c.Name)
	if len(name) < 2 {
		return nil
	}

	url := strings.TrimSpace(c.URL)
	if !strings.HasPrefix(url, "http") {
		return nil
	}

	if c.StartDate == "" {
		return nil
	}

	category := strings.ToLower(strings.TrimSpace(c.Category))
	if category == "" {
		category = CategoryCommunity
	}

	endDate := c.EndDate
	if endDate == "" {
		endDate = c.StartDate
	}

	description := strings.TrimSpace(c.Description)
	if description == "" {
		description = name
	}

	highlights := c.Highlights
	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}
	if len(highlights) == 0 {
		highlights = GenerateHighlights(name, description, category, c.Location, c.Source)
	}

	return &Event{
		Name:        truncate(name, maxNameLen),
		Category:    category,
		Date:        truncate(defaultString(c.Date, "Upcoming"), maxDateLen),
		Time:        truncate(defaultString(c.Time, "See details"), maxTimeLen),
		Location:    truncate(defaultString(c.Location, "New York City"), maxLocationLen),
		Address:     truncate(defaultString(c.Address, "NYC"), maxAddressLen),
		Price:       truncate(defaultString(c.Price, "free"), maxPriceLen),
		Spots:       parseSpots(c.Spots),
		Image:       strings.TrimSpace(c.Image),
		Description: truncate(description, maxDescriptionLen),
		Highlights:  Highlights(highlights),
		URL:         truncate(url, maxURLLen),
		Source:      defaultString(c.Source, "Unknown"),
		StartDate:   c.StartDate,
		EndDate:     endDate,
	}
}

// parseSpots coerces the scraped spots text to a non-negative integer,
// falling back to the default capacity when absent or unparseable.
func parseSpots(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return defaultSpots
	}
	return n
}

func defaultString(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// truncate limits s to max runes without splitting a multi-byte character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
