package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/soireeapp/soiree-events/internal/event"
)

// stubFetcher serves canned HTML per URL.
type stubFetcher struct {
	pages map[string]string
	fail  map[string]bool
}

func (f *stubFetcher) Get(_ context.Context, url string) ([]byte, error) {
	if f.fail[url] {
		return nil, errors.New("connection refused")
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, errors.New("not found: " + url)
	}
	return []byte(page), nil
}

type stubSource struct {
	name       string
	candidates []event.Candidate
	err        error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Scrape(context.Context) ([]event.Candidate, error) {
	return s.candidates, s.err
}

func TestScrapeAllUnionsSources(t *testing.T) {
	sources := []Source{
		&stubSource{name: "a", candidates: []event.Candidate{{Name: "One"}, {Name: "Two"}}},
		&stubSource{name: "b", candidates: []event.Candidate{{Name: "Three"}}},
	}

	got := ScrapeAll(context.Background(), sources, nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
}

func TestScrapeAllSkipsFailingSource(t *testing.T) {
	sources := []Source{
		&stubSource{name: "broken", err: errors.New("boom")},
		&stubSource{name: "ok", candidates: []event.Candidate{{Name: "Survivor"}}},
	}

	got := ScrapeAll(context.Background(), sources, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Name != "Survivor" {
		t.Errorf("unexpected candidate %q", got[0].Name)
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		href, base, want string
	}{
		{"/events/picnic", "https://example.com", "https://example.com/events/picnic"},
		{"//cdn.example.com/a.jpg", "https://example.com", "https://cdn.example.com/a.jpg"},
		{"https://other.com/x", "https://example.com", "https://other.com/x"},
		{"", "https://example.com", ""},
	}
	for _, tt := range tests {
		if got := absoluteURL(tt.href, tt.base); got != tt.want {
			t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.href, tt.base, got, tt.want)
		}
	}
}

func TestPlaceholderImageCoversAllCategories(t *testing.T) {
	for _, category := range event.Categories {
		if placeholderImage(category) == "" {
			t.Errorf("no placeholder for category %q", category)
		}
	}
	if placeholderImage("unknown") == "" {
		t.Error("no placeholder for unknown category")
	}
}

func TestFallbackEventsHaveResolvedDates(t *testing.T) {
	candidates := FallbackEvents()
	if len(candidates) != 3 {
		t.Fatalf("expected 3 fallback events, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.StartDate == "" {
			t.Errorf("%s: relative date %q did not resolve", c.Name, c.Date)
		}
		if c.URL == "" {
			t.Errorf("%s: missing url", c.Name)
		}
		if !event.ValidCategory(c.Category) {
			t.Errorf("%s: invalid category %q", c.Name, c.Category)
		}
	}
}
