// Package filter narrows event listings by category, source, location and
// date criteria.
//
// Example usage:
//
//	f := filter.New()
//	f.Categories = []string{"music"}
//	f.WeekendsOnly = true
//	upcoming := f.Apply(events)
package filter

import (
	"strings"
	"time"

	"github.com/soireeapp/soiree-events/internal/event"
)

// Filter represents listing criteria. A zero filter matches everything.
type Filter struct {
	// Date window over the event's start date (inclusive).
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Category filtering (case-insensitive exact match against the fixed
	// category set).
	Categories []string `json:"categories,omitempty"`

	// Source filtering (case-insensitive exact match).
	Sources []string `json:"sources,omitempty"`

	// Location filtering (case-insensitive substring match against
	// location and address).
	Locations []string `json:"locations,omitempty"`

	// Weekend-only filtering (start date on Saturday or Sunday).
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	// FreeOnly keeps events whose price reads as free.
	FreeOnly bool `json:"free_only,omitempty"`
}

// New creates an empty filter that matches all events.
func New() *Filter {
	return &Filter{
		Categories: []string{},
		Sources:    []string{},
		Locations:  []string{},
	}
}

// IsEmpty reports whether the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Categories) == 0 &&
		len(f.Sources) == 0 &&
		len(f.Locations) == 0 &&
		!f.WeekendsOnly &&
		!f.FreeOnly
}

// Matches reports whether evt passes every active criterion. Events without
// a resolved start date pass the date criteria; rejecting them would hide
// recurring listings from every dated view.
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	start := parseISODate(evt.StartDate)

	if f.DateFrom != nil && start != nil && start.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && start != nil && start.After(*f.DateTo) {
		return false
	}

	if f.WeekendsOnly && start != nil {
		if wd := start.Weekday(); wd != time.Saturday && wd != time.Sunday {
			return false
		}
	}

	if len(f.Categories) > 0 && !containsFold(f.Categories, evt.Category) {
		return false
	}

	if len(f.Sources) > 0 && !containsFold(f.Sources, evt.Source) {
		return false
	}

	if len(f.Locations) > 0 {
		matched := false
		haystack := strings.ToLower(evt.Location + " " + evt.Address)
		for _, loc := range f.Locations {
			if strings.Contains(haystack, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.FreeOnly && !isFree(evt.Price) {
		return false
	}

	return true
}

// Apply returns the events matching all active criteria. An empty filter
// returns the input unchanged.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	filtered := []*event.Event{}
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria, for
// example "From: Mar 1, 2026 | Categories: music | Weekends only".
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.DateFrom != nil {
		parts = append(parts, "From: "+f.DateFrom.Format("Jan 2, 2006"))
	}
	if f.DateTo != nil {
		parts = append(parts, "To: "+f.DateTo.Format("Jan 2, 2006"))
	}
	if len(f.Categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(f.Categories, ", "))
	}
	if len(f.Sources) > 0 {
		parts = append(parts, "Sources: "+strings.Join(f.Sources, ", "))
	}
	if len(f.Locations) > 0 {
		parts = append(parts, "Locations: "+strings.Join(f.Locations, ", "))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}
	if f.FreeOnly {
		parts = append(parts, "Free only")
	}
	return strings.Join(parts, " | ")
}

func parseISODate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(event.ISODate, s)
	if err != nil {
		return nil
	}
	return &t
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func isFree(price string) bool {
	p := strings.ToLower(strings.TrimSpace(price))
	return p == "" || p == "free" || strings.HasPrefix(p, "free ") || p == "$0" || p == "0"
}
