package scraper

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/soireeapp/soiree-events/internal/event"
	"github.com/soireeapp/soiree-events/internal/logger"
)

// Source is a per-site extractor. Scrape returns the candidates found on
// the source's pages; an error means the whole source contributed nothing
// this run.
type Source interface {
	Name() string
	Scrape(ctx context.Context) ([]event.Candidate, error)
}

// ScrapeAll runs every source concurrently and returns the union of their
// candidates. A failing source is logged and skipped; it never aborts the
// run. The per-source durations and counts are recorded on metrics when
// provided.
func ScrapeAll(ctx context.Context, sources []Source, metrics *logger.Metrics) []event.Candidate {
	var (
		mu  sync.Mutex
		all []event.Candidate
		wg  sync.WaitGroup
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			started := time.Now()
			candidates, err := src.Scrape(ctx)
			if metrics != nil {
				metrics.RecordTiming("source.scrape", time.Since(started))
			}
			if err != nil {
				logger.Error("scrape failed", logger.Fields{"source": src.Name()}, err)
				return
			}

			logger.Info("source scraped", logger.Fields{
				"source": src.Name(),
				"count":  len(candidates),
			})

			mu.Lock()
			all = append(all, candidates...)
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return all
}

// firstText returns the trimmed text of the first selector that yields a
// non-empty match within s.
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(s.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the named attribute from the first selector yielding a
// non-empty value within s.
func firstAttr(s *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if val, ok := s.Find(sel).First().Attr(attr); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// absoluteURL resolves href against base when the page used a relative or
// protocol-relative link.
func absoluteURL(href, base string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimSuffix(base, "/") + href
	default:
		return href
	}
}

// categoryImages are stock placeholders used when a listing carries no
// image of its own.
var categoryImages = map[string]string{
	event.CategoryArt:      "https://images.unsplash.com/photo-1499781350541-7783f6c6a0c8?w=800&q=80",
	event.CategoryMusic:    "https://images.unsplash.com/photo-1415201364774-f6f0bb35f28f?w=800&q=80",
	event.CategoryCulinary: "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800&q=80",
	event.CategoryFashion:  "https://images.unsplash.com/photo-1469334031218-e382a71b716b?w=800&q=80",
}

func placeholderImage(category string) string {
	if img, ok := categoryImages[category]; ok {
		return img
	}
	return "https://images.unsplash.com/photo-1511632765486-a01980e01a18?w=800&q=80"
}

// randomSpots fabricates a plausible capacity for sources that never
// publish one. The scraped sites list free events without RSVP counts, so
// the displayed capacity is decorative.
func randomSpots(base, spread int) string {
	return strconv.Itoa(base + rand.Intn(spread))
}
