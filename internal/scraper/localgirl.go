package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/soireeapp/soiree-events/internal/event"
	"github.com/soireeapp/soiree-events/internal/fetch"
	"github.com/soireeapp/soiree-events/internal/workers"
)

const localGirlURL = "https://thelocalgirl.com/calendar/hoboken/"

// calendarCategoryLabel tags category links that name the calendar itself
// rather than an event category.
const calendarCategoryLabel = "The Hoboken Girl Calendar"

var detailDatePattern = regexp.MustCompile(`[A-Z][a-z]+ \d{1,2}, \d{4}`)

// LocalGirl extracts calendar listings from thelocalgirl.com covering
// Hoboken and Jersey City. Listing pages carry no usable dates, so each
// candidate's detail page is fetched through a bounded worker pool to
// recover the real date and time.
type LocalGirl struct {
	fetcher fetch.Fetcher
	detail  fetch.Fetcher
	pool    *workers.Pool
	url     string
	limit   int
}

// NewLocalGirl creates the Local Girl source. The detail fetcher should
// carry a shorter timeout than the listing fetcher; pool bounds the
// concurrent detail requests.
func NewLocalGirl(listing, detail fetch.Fetcher, pool *workers.Pool, limit int) *LocalGirl {
	return &LocalGirl{fetcher: listing, detail: detail, pool: pool, url: localGirlURL, limit: limit}
}

// Name implements Source.
func (s *LocalGirl) Name() string { return "The Local Girl" }

// Scrape walks the calendar page h2 by h2, collecting a coarse candidate
// per heading, then refines dates from the detail pages. Detail failures
// leave the coarse candidate untouched.
func (s *LocalGirl) Scrape(ctx context.Context) ([]event.Candidate, error) {
	body, err := s.fetcher.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	candidates := s.collect(doc)
	s.refineDates(ctx, candidates)
	return candidates, nil
}

// collect builds one candidate per h2 heading with a linked title. Event
// metadata sits in the siblings between one h2 and the next, so each
// heading's following siblings are walked until the next h2 (capped at 10
// elements).
func (s *LocalGirl) collect(doc *goquery.Document) []event.Candidate {
	var candidates []event.Candidate
	seen := workers.NewSeenSet()

	doc.Find("h2").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if len(candidates) >= s.limit {
			return false
		}

		title := heading.Find("a").First()
		name := strings.TrimSpace(title.Text())
		href, _ := title.Attr("href")
		if name == "" || href == "" || !seen.Add(href) {
			return true
		}

		var image, address string
		var categories []string

		next := heading.Next()
		for i := 0; i < 10; i++ {
			if next.Length() == 0 || next.Is("h2") {
				break
			}

			if image == "" {
				if src, ok := next.Find("img").First().Attr("src"); ok {
					image = src
				}
			}

			next.Find(`a[href*="/category/"]`).Each(func(_ int, catLink *goquery.Selection) {
				text := strings.TrimSpace(catLink.Text())
				if text != "" && text != calendarCategoryLabel && !contains(categories, text) {
					categories = append(categories, text)
				}
			})

			next.Find(`a[href*="maps.google.com"], a[href*="maps.apple.com"]`).Each(func(_ int, mapLink *goquery.Selection) {
				if address != "" {
					return
				}
				mapHref, _ := mapLink.Attr("href")
				address = mapsQuery(mapHref)
			})

			next = next.Next()
		}

		location := "Hoboken/Jersey City"
		switch {
		case strings.Contains(address, "Jersey City"):
			location = "Jersey City"
		case strings.Contains(address, "Hoboken"):
			location = "Hoboken"
		}
		if address == "" {
			address = location
		}

		category := event.Categorize(name, strings.Join(categories, " "), location)
		if image == "" {
			image = placeholderImage(category)
		}

		highlights := categories
		if len(highlights) > 4 {
			highlights = highlights[:4]
		}
		if len(highlights) == 0 {
			highlights = []string{"Local event", "Community", location}
		}

		candidates = append(candidates, event.Candidate{
			Name:        name,
			Category:    category,
			Date:        "Upcoming",
			Time:        "See details",
			Location:    location,
			Address:     address,
			Price:       "See details",
			Spots:       randomSpots(20, 100),
			Image:       image,
			Description: fmt.Sprintf("Event in %s: %s", location, name),
			Highlights:  highlights,
			URL:         href,
			Source:      s.Name(),
		})
		return true
	})

	return candidates
}

// refineDates fetches each candidate's detail page and, when the listing
// carries a dated byline, replaces the coarse date with it. The byline sits
// in the first paragraph after the h1 and must carry a full month-day-year
// date to be trusted. An "@" separates date from time.
func (s *LocalGirl) refineDates(ctx context.Context, candidates []event.Candidate) {
	var mu sync.Mutex

	for i := range candidates {
		i := i
		s.pool.Submit(func() {
			body, err := s.detail.Get(ctx, candidates[i].URL)
			if err != nil {
				return
			}
			detail, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
			if err != nil {
				return
			}

			dateText := strings.TrimSpace(detail.Find("h1").First().NextFiltered("p").Text())
			if dateText == "" || len(dateText) >= 50 || !detailDatePattern.MatchString(dateText) {
				return
			}

			date, timeStr := dateText, candidates[i].Time
			if idx := strings.Index(dateText, "@"); idx >= 0 {
				date = strings.TrimSpace(dateText[:idx])
				timeStr = strings.TrimSpace(dateText[idx+1:])
			}
			start, end := event.ParseDateText(date, timeStr)

			mu.Lock()
			candidates[i].Date = date
			candidates[i].Time = timeStr
			candidates[i].StartDate = start
			candidates[i].EndDate = end
			mu.Unlock()
		})
	}

	s.pool.Wait()
}

// mapsQuery extracts the place query from a Google or Apple Maps link.
func mapsQuery(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	q := u.Query()
	if v := q.Get("q"); v != "" {
		return v
	}
	return q.Get("query")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
