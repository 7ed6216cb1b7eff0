package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soireeapp/soiree-events/internal/event"
)

// SortOrder represents the available sorting options.
type SortOrder string

const (
	SortByDate     SortOrder = "date"
	SortByCategory SortOrder = "category"
	SortByName     SortOrder = "name"
)

// sortEvents sorts events in place. Date order puts dated events first,
// soonest start date leading; category and name orders fall back to date
// within equal keys.
func sortEvents(events []*event.Event, order SortOrder) error {
	switch order {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return beforeByDate(events[i], events[j])
		})
	case SortByCategory:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Category != events[j].Category {
				return events[i].Category < events[j].Category
			}
			return beforeByDate(events[i], events[j])
		})
	case SortByName:
		sort.SliceStable(events, func(i, j int) bool {
			ni, nj := strings.ToLower(events[i].Name), strings.ToLower(events[j].Name)
			if ni != nj {
				return ni < nj
			}
			return beforeByDate(events[i], events[j])
		})
	default:
		return fmt.Errorf("unknown sort order: %s", order)
	}
	return nil
}

// beforeByDate compares ISO start dates lexicographically, which matches
// chronological order for YYYY-MM-DD. Undated events sort last.
func beforeByDate(a, b *event.Event) bool {
	if a.StartDate == "" {
		return false
	}
	if b.StartDate == "" {
		return true
	}
	return a.StartDate < b.StartDate
}
