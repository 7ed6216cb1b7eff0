package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the serialization format for resolved calendar dates.
const ISODate = "2006-01-02"

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var daysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	reToday    = regexp.MustCompile(`\b(today|tonight)\b`)
	reTomorrow = regexp.MustCompile(`\btomorrow\b`)
	reWeekday  = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	// Explicit-year forms are checked before the year-less "Month Day"
	// pattern so the rollover-to-next-year logic never applies when the
	// text already names a year.
	reFullDate = regexp.MustCompile(`([a-z]+)[,\s]+([a-z]+)\s+(\d{1,2})[,\s]+(\d{4})`)
	reAltDate  = regexp.MustCompile(`([a-z]+)\s+(\d{1,2})[,\s]+(\d{4})`)

	// ISO comes before numeric so "2026-02-27" is not misread as 26-02-27.
	reISODate  = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	reNumeric  = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})(?:[/\-](\d{2,4}))?`)
	reMonthDay = regexp.MustCompile(`(?i)([A-Za-z]+)\s+(\d{1,2})`)

	reDayRange  = regexp.MustCompile(`(\d{1,2})\s*[-\x{2013}]\s*(\d{1,2})`)
	reISOPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	reWeekend   = regexp.MustCompile(`\b(this\s+)?weekend\b`)
	reWeek      = regexp.MustCompile(`\b(this\s+)?week\b`)
)

// ParseDateText interprets free-form human date/time text and returns a
// normalized start/end pair as ISO date strings. Both values are empty when
// nothing resolves: a missing date is preferred over a guessed one, and
// partial results are never returned.
//
// The two inputs are matched as a lower-cased concatenation except for the
// year-less "Month Day" and day-range patterns, which only consider the raw
// date text. Unknown month or weekday names fail their branch silently and
// fall through to later branches.
func ParseDateText(dateText, timeText string) (string, string) {
	return parseDateTextAt(dateText, timeText, time.Now())
}

func parseDateTextAt(dateText, timeText string, now time.Time) (string, string) {
	combined := strings.ToLower(strings.TrimSpace(dateText + " " + timeText))

	var start, end time.Time

	switch {
	case reToday.MatchString(combined):
		start, end = now, now
	case reTomorrow.MatchString(combined):
		start = now.AddDate(0, 0, 1)
		end = start
	default:
		if m := reWeekday.FindStringSubmatch(combined); m != nil {
			start = nextWeekday(daysByName[m[1]], now)
			end = start
		}
	}

	if start.IsZero() {
		if m := reFullDate.FindStringSubmatch(combined); m != nil {
			if month, ok := monthsByName[m[2]]; ok {
				day, _ := strconv.Atoi(m[3])
				year, _ := strconv.Atoi(m[4])
				start = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				end = start
			}
		}
	}

	if start.IsZero() {
		if m := reAltDate.FindStringSubmatch(combined); m != nil {
			if month, ok := monthsByName[m[1]]; ok {
				day, _ := strconv.Atoi(m[2])
				year, _ := strconv.Atoi(m[3])
				start = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				end = start
			}
		}
	}

	if start.IsZero() {
		if m := reISODate.FindStringSubmatch(combined); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			end = start
		}
	}

	if start.IsZero() {
		if m := reNumeric.FindStringSubmatch(combined); m != nil {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year := now.Year()
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
				if len(m[3]) == 2 {
					year += 2000
				}
			}
			start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			end = start
		}
	}

	if start.IsZero() {
		if m := reMonthDay.FindStringSubmatch(dateText); m != nil {
			if month, ok := monthsByName[strings.ToLower(m[1])]; ok {
				day, _ := strconv.Atoi(m[2])
				start = monthDayWithRollover(month, day, now)
				end = start
			}
		}
	}

	// A trailing day range like "Jan 24-26" extends the end date within the
	// start's month. Skipped for ISO-shaped date text, where the dashes are
	// date separators rather than a range.
	if !start.IsZero() && !reISOPrefix.MatchString(dateText) {
		if m := reDayRange.FindStringSubmatch(dateText); m != nil {
			endDay, _ := strconv.Atoi(m[2])
			end = time.Date(start.Year(), start.Month(), endDay, 0, 0, 0, 0, time.UTC)
		}
	}

	if start.IsZero() && reWeekend.MatchString(combined) {
		start = nextWeekday(time.Friday, now)
		end = nextWeekday(time.Sunday, now)
	}

	if start.IsZero() && reWeek.MatchString(combined) {
		start = now
		end = now.AddDate(0, 0, 7)
	}

	if start.IsZero() {
		return "", ""
	}

	return start.Format(ISODate), end.Format(ISODate)
}

// nextWeekday returns the next occurrence of target strictly after now.
// When now already falls on target, the result rolls a full week forward.
func nextWeekday(target time.Weekday, now time.Time) time.Time {
	days := int(target) - int(now.Weekday())
	if days <= 0 {
		days += 7
	}
	return now.AddDate(0, 0, days)
}

// monthDayWithRollover resolves a year-less month/day in the current year,
// rolling to next year when that date has already passed.
func monthDayWithRollover(month time.Month, day int, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		d = time.Date(now.Year()+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return d
}
