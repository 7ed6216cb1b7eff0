package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlt = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|september|oct|october|nov|november|dec|december`

var (
	reSameMonthRange  = regexp.MustCompile(`(?i)^(` + monthAlt + `)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	reCrossMonthRange = regexp.MustCompile(`(?i)^(` + monthAlt + `)\s+(\d{1,2})\s*-\s*(` + monthAlt + `)\s+(\d{1,2})$`)
	reWholeMonth      = regexp.MustCompile(`(?i)^(` + monthAlt + `)$`)
)

// ParseDateRange parses a human date range into an inclusive window.
//
// Supported forms:
//   - "Mar 1-15" (same month)
//   - "March 1 - April 15" (cross-month; a wrapped end month lands in the
//     next year)
//   - "March" (the whole month)
//
// The year is inferred: months already past resolve to next year. The start
// lands at 00:00:00 UTC and the end at 23:59:59 UTC.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := reSameMonthRange.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		day2, err := parseDay(m[3])
		if err != nil {
			return nil, nil, err
		}

		year := yearFor(month)
		from := time.Date(year, month, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month, day2, 23, 59, 59, 0, time.UTC)
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if m := reCrossMonthRange.FindStringSubmatch(input); m != nil {
		month1 := parseMonth(m[1])
		day1, err := parseDay(m[2])
		if err != nil {
			return nil, nil, err
		}
		month2 := parseMonth(m[3])
		day2, err := parseDay(m[4])
		if err != nil {
			return nil, nil, err
		}

		year1 := yearFor(month1)
		year2 := yearFor(month2)
		if month2 < month1 {
			year2 = year1 + 1
		}

		from := time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year2, month2, day2, 23, 59, 59, 0, time.UTC)
		if from.After(to) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return &from, &to, nil
	}

	if m := reWholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearFor(month)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format, use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return day, nil
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parseMonth maps a month name matched by monthAlt to its time.Month.
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) > 3 {
		name = name[:3]
	}
	return monthsByPrefix[name]
}

// yearFor picks the current year for this and future months, next year for
// months already past.
func yearFor(month time.Month) int {
	now := time.Now()
	if month < now.Month() {
		return now.Year() + 1
	}
	return now.Year()
}
