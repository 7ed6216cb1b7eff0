// Package calendar renders events as iCalendar (.ics) documents so
// listings can be added to a personal calendar with one click.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/soireeapp/soiree-events/internal/event"
)

// GenerateICS renders a single event as an RFC 5545 VCALENDAR document.
// Events with a parseable start time get a two-hour timed block; everything
// else becomes an all-day entry spanning the start and end dates.
func GenerateICS(evt *event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Soiree//soiree-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%d@soiree.events\r\n", evt.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(time.Now().UTC())))

	writeEventWindow(&ics, evt)

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Name)))

	description := evt.Description
	if evt.URL != "" {
		description += "\n\nDetails: " + evt.URL
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	location := evt.Location
	if evt.Address != "" && evt.Address != evt.Location {
		location = evt.Location + ", " + evt.Address
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if evt.URL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.URL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// writeEventWindow emits DTSTART/DTEND. A missing start date falls back to
// one week out so the entry still lands somewhere visible.
func writeEventWindow(ics *strings.Builder, evt *event.Event) {
	start, err := time.Parse(event.ISODate, evt.StartDate)
	if err != nil {
		start = time.Now().UTC().AddDate(0, 0, 7)
	}

	if clock, ok := parseClock(evt.Time); ok {
		startTime := time.Date(start.Year(), start.Month(), start.Day(),
			clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(startTime)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(startTime.Add(2*time.Hour))))
		return
	}

	end := start
	if e, err := time.Parse(event.ISODate, evt.EndDate); err == nil && e.After(start) {
		end = e
	}
	// All-day DTEND is exclusive.
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.AddDate(0, 0, 1).Format("20060102")))
}

// parseClock extracts a wall-clock time from display text like "7:00 PM" or
// "7:00 PM - 10:00 PM" (the range start wins).
func parseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "-–"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	for _, layout := range []string{"3:04 PM", "3:04PM", "15:04"} {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes text per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
