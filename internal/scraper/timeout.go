package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/soireeapp/soiree-events/internal/event"
	"github.com/soireeapp/soiree-events/internal/fetch"
	"github.com/soireeapp/soiree-events/internal/workers"
)

const timeOutURL = "https://www.timeout.com/newyork/things-to-do/free-things-to-do-in-nyc"

// TimeOut extracts free-activity cards from Time Out New York's roundup page.
type TimeOut struct {
	fetcher fetch.Fetcher
	url     string
	limit   int
}

// NewTimeOut creates the Time Out New York source with a per-run candidate cap.
func NewTimeOut(f fetch.Fetcher, limit int) *TimeOut {
	return &TimeOut{fetcher: f, url: timeOutURL, limit: limit}
}

// Name implements Source.
func (s *TimeOut) Name() string { return "Time Out New York" }

// Scrape fetches the roundup page and extracts one candidate per article
// card that carries a usable title and link.
func (s *TimeOut) Scrape(ctx context.Context) ([]event.Candidate, error) {
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

	doc.Find(`article, .card, [class*="Card"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(candidates) >= s.limit {
			return false
		}

		name := firstText(card, "h3", "h2", `[class*="title"]`)
		if len(name) < 5 {
			return true
		}

		href := firstAttr(card, "href", "a")
		if href == "" {
			return true
		}
		href = absoluteURL(href, "https://www.timeout.com")
		if !strings.HasPrefix(href, "http") || !seen.Add(href) {
			return true
		}

		description := firstText(card, `[class*="summary"]`, `[class*="description"]`, "p")
		if description == "" {
			description = name
		}

		image := firstAttr(card, "src", "img")
		if image == "" {
			image = firstAttr(card, "data-src", "img")
		}
		if strings.HasPrefix(image, "//") {
			image = "https:" + image
		}

		category := event.Categorize(name, description, "")
		if image == "" {
			image = placeholderImage(category)
		}

		// Time Out's free listings are recurring, so date them to the
		// current week rather than a single day.
		dateStr := "This week"
		start, end := event.ParseDateText(dateStr, "")

		candidates = append(candidates, event.Candidate{
			Name:        name,
			Category:    category,
			Date:        dateStr,
			Time:        "Various times",
			Location:    "New York City",
			Address:     "Various locations - see event details",
			Price:       "free",
			Spots:       randomSpots(75, 150),
			Image:       image,
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
