package scraper

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/soireeapp/soiree-events/internal/event"
	"github.com/soireeapp/soiree-events/internal/fetch"
	"github.com/soireeapp/soiree-events/internal/workers"
)

const nycForFreeURL = "https://www.nycforfree.co/events"

var timeOfDayPattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*[AP]M`)

// NYCForFree extracts free-event listings from nycforfree.co.
type NYCForFree struct {
	fetcher fetch.Fetcher
	url     string
	limit   int
}

// NewNYCForFree creates the nycforfree.co source with a per-run candidate cap.
func NewNYCForFree(f fetch.Fetcher, limit int) *NYCForFree {
	return &NYCForFree{fetcher: f, url: nycForFreeURL, limit: limit}
}

// Name implements Source.
func (s *NYCForFree) Name() string { return "NYC For Free" }

// Scrape fetches the events listing and extracts one candidate per event
// link, deduplicated by href.
func (s *NYCForFree) Scrape(ctx context.Context) ([]event.Candidate, error) {
	body, err := s.fetcher.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var candidates []event.Candidate
	seen := workers.NewSeenSet()

	doc.Find(`a[href*="/events/"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(candidates) >= s.limit {
			return false
		}

		href, _ := sel.Attr("href")
		if href == "" || href == "/events" || href == "/events/" {
			return true
		}
		href = absoluteURL(href, "https://www.nycforfree.co")
		if !seen.Add(href) {
			return true
		}

		name := strings.TrimSpace(sel.Text())
		if len(name) < 5 {
			return true
		}

		// Listing metadata lives on the enclosing summary container.
		parent := sel.Closest(".summary-item, .blog-item, .eventitem")

		description := firstText(parent, ".summary-excerpt", ".blog-excerpt", "p")
		if description == "" {
			description = name
		}

		date, timeStr := "Upcoming", "See details"
		if dateText := firstText(parent, ".summary-metadata-item--date", ".eventitem-meta-date"); dateText != "" {
			if d := strings.TrimSpace(strings.Split(dateText, "-")[0]); d != "" {
				date = d
			}
			if m := timeOfDayPattern.FindString(dateText); m != "" {
				timeStr = m
			}
		}

		location, address := "New York City", "NYC"
		if locText := firstText(parent, ".summary-metadata-item--location", ".eventitem-meta-address"); locText != "" {
			if l := strings.TrimSpace(strings.Split(locText, ",")[0]); l != "" {
				location = l
			}
			address = locText
		}

		category := event.Categorize(name, description, location)
		start, end := event.ParseDateText(date, timeStr)

		candidates = append(candidates, event.Candidate{
			Name:        name,
			Category:    category,
			Date:        date,
			Time:        timeStr,
			Location:    location,
			Address:     address,
			Price:       "free",
			Spots:       randomSpots(50, 200),
			Image:       placeholderImage(category),
			Description: description,
			URL:         href,
			Source:      s.Name(),
			StartDate:   start,
			EndDate:     end,
		})
		return true
	})

	return candidates, nil
}
