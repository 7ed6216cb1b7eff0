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

// MuseumConfig describes how to extract calendar listings from one museum
// site. Selector lists are tried in order; the first that yields content
// wins.
type MuseumConfig struct {
	Name            string
	URL             string
	Base            string
	DefaultLocation string
	Container       []string
	Title           []string
	Date            []string
	Location        []string
}

// MuseumConfigs covers the museum calendars worth scraping. All of them
// render client-side, so Museum should be paired with a headless fetcher.
var MuseumConfigs = []MuseumConfig{
	{
		Name:            "MoMA",
		URL:             "https://www.moma.org/calendar",
		Base:            "https://www.moma.org",
		DefaultLocation: "MoMA, New York",
		Container:       []string{`a[href*="/calendar/events/"]`},
		Title:           []string{"h2", "h3", "h4", ".title", `[class*="title"]`},
		Date:            []string{".date", "time", `[class*="date"]`, `[class*="time"]`},
		Location:        []string{".location", ".venue", `[class*="location"]`},
	},
	{
		Name:            "Guggenheim",
		URL:             "https://www.guggenheim.org/events",
		Base:            "https://www.guggenheim.org",
		DefaultLocation: "Guggenheim Museum, New York",
		Container:       []string{"article", `[class*="event"]`},
		Title:           []string{"h2", "h3", "a", `[class*="title"]`},
		Date:            []string{".date", "time", `[class*="date"]`},
		Location:        []string{".location", ".venue", `[class*="location"]`},
	},
	{
		Name:            "American Museum of Natural History",
		URL:             "https://www.amnh.org/calendar",
		Base:            "https://www.amnh.org",
		DefaultLocation: "American Museum of Natural History",
		Container:       []string{".mod.event", ".calendar-event", ".result-item", "article", ".listing-item"},
		Title:           []string{"h3", "h4", "a", ".title"},
		Date:            []string{".date", ".time", ".event-date"},
		Location:        []string{".location", ".venue"},
	},
}

// Museum is a config-driven extractor for museum calendar pages.
type Museum struct {
	fetcher fetch.Fetcher
	cfg     MuseumConfig
	limit   int
}

// NewMuseum creates a museum source from one calendar config.
func NewMuseum(f fetch.Fetcher, cfg MuseumConfig, limit int) *Museum {
	return &Museum{fetcher: f, cfg: cfg, limit: limit}
}

// Name implements Source.
func (s *Museum) Name() string { return s.cfg.Name }

// Scrape renders the calendar page and extracts candidates using the
// config's selector lists.
func (s *Museum) Scrape(ctx context.Context) ([]event.Candidate, error) {
	body, err := s.fetcher.Get(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.cfg.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	containers := s.findContainers(doc)

	var candidates []event.Candidate
	seen := workers.NewSeenSet()

	containers.EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		if len(candidates) >= s.limit {
			return false
		}

		href := s.eventLink(elem)
		if href == "" {
			return true
		}
		href = absoluteURL(href, s.cfg.Base)
		if !seen.Add(href) {
			return true
		}

		name := s.eventTitle(elem, href)
		if len(name) < 5 {
			return true
		}

		dateText := firstText(elem, s.cfg.Date...)
		location := firstText(elem, s.cfg.Location...)
		if location == "" {
			location = s.cfg.DefaultLocation
		}
		description := firstText(elem, "p")
		if description == "" {
			description = name
		}
		image := firstAttr(elem, "src", "img")
		if image == "" {
			image = firstAttr(elem, "data-src", "img")
		}

		category := event.Categorize(name, description, location)
		if image == "" {
			image = placeholderImage(category)
		}

		date := dateText
		if date == "" {
			date = "Ongoing"
		}
		start, end := event.ParseDateText(date, "")

		candidates = append(candidates, event.Candidate{
			Name:        name,
			Category:    category,
			Date:        date,
			Time:        "See details",
			Location:    location,
			Address:     location,
			Price:       "See details",
			Spots:       randomSpots(50, 100),
			Image:       image,
			Description: description,
			Highlights:  []string{s.cfg.Name, capitalize(category)},
			URL:         href,
			Source:      s.Name(),
			StartDate:   start,
			EndDate:     end,
		})
		return true
	})

	return candidates, nil
}

// findContainers tries each container selector in order and falls back to
// plausible event links when none match.
func (s *Museum) findContainers(doc *goquery.Document) *goquery.Selection {
	for _, selector := range s.cfg.Container {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("a").FilterFunction(func(_ int, link *goquery.Selection) bool {
		text := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		return len(text) > 10 && len(text) < 200 && href != "" && !strings.Contains(href, "#")
	})
}

// eventLink picks the container's main link, skipping login and anchor
// links. The container may itself be the link.
func (s *Museum) eventLink(elem *goquery.Selection) string {
	if elem.Is("a") {
		if href, ok := elem.Attr("href"); ok && !strings.Contains(href, "login") && !strings.Contains(href, "#") {
			return href
		}
		return ""
	}

	var found string
	elem.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if href == "" || strings.Contains(href, "login") || strings.Contains(href, "#") {
			return true
		}
		found = href
		return false
	})
	return found
}

// eventTitle resolves a display name for the container, falling back from
// configured title selectors to the element text and finally to the URL
// slug.
func (s *Museum) eventTitle(elem *goquery.Selection, href string) string {
	title := firstText(elem, s.cfg.Title...)
	if len(title) < 5 || isButtonText(title) {
		for _, line := range strings.Split(elem.Text(), "\n") {
			line = strings.TrimSpace(line)
			if len(line) > 10 && len(line) < 150 {
				title = line
				break
			}
		}
	}
	if len(title) < 5 || isButtonText(title) {
		title = slugTitle(href)
	}
	return title
}

func isButtonText(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range []string{"check it out", "favorite", "login", "register"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// slugTitle turns a URL slug into a display title, e.g.
// "members-night-tour" becomes "Members Night Tour".
func slugTitle(href string) string {
	parts := strings.Split(strings.TrimRight(href, "/"), "/")
	slug := parts[len(parts)-1]
	if slug == "" {
		return ""
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
