package scraper

import (
	"context"
	"testing"
)

const guggenheimFixture = `<html><body>
<article>
  <h2>Conservation Talk: Restoring the Rotunda</h2>
  <a href="/event/conservation-talk">Details</a>
  <span class="date">March 3, 2026</span>
  <span class="venue">Guggenheim Museum</span>
  <p>Conservators discuss the restoration of the landmark rotunda.</p>
</article>
<article>
  <h2>Members Only Preview</h2>
  <a href="/login?next=/event/preview">Sign in</a>
</article>
</body></html>`

func TestMuseumScrape(t *testing.T) {
	cfg := MuseumConfigs[1]
	fetcher := &stubFetcher{pages: map[string]string{cfg.URL: guggenheimFixture}}
	src := NewMuseum(fetcher, cfg, 20)

	if src.Name() != "Guggenheim" {
		t.Errorf("name = %q", src.Name())
	}

	candidates, err := src.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate (login-only card skipped), got %d", len(candidates))
	}

	talk := candidates[0]
	if talk.Name != "Conservation Talk: Restoring the Rotunda" {
		t.Errorf("name = %q", talk.Name)
	}
	if talk.URL != "https://www.guggenheim.org/event/conservation-talk" {
		t.Errorf("url = %q", talk.URL)
	}
	if talk.Date != "March 3, 2026" {
		t.Errorf("date = %q", talk.Date)
	}
	if talk.StartDate != "2026-03-03" {
		t.Errorf("start date = %q", talk.StartDate)
	}
	if talk.Location != "Guggenheim Museum" {
		t.Errorf("location = %q", talk.Location)
	}
	// Museum venue overrides keyword families.
	if talk.Category != "art" {
		t.Errorf("category = %q", talk.Category)
	}
}

func TestMuseumScrapeDefaultsLocationAndDate(t *testing.T) {
	cfg := MuseumConfigs[0]
	fixture := `<a href="/calendar/events/9021">Sound Series: Ambient Night Performances</a>`
	fetcher := &stubFetcher{pages: map[string]string{cfg.URL: fixture}}
	src := NewMuseum(fetcher, cfg, 20)

	candidates, err := src.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Location != "MoMA, New York" {
		t.Errorf("location = %q", candidates[0].Location)
	}
	if candidates[0].Date != "Ongoing" {
		t.Errorf("missing date should default to Ongoing, got %q", candidates[0].Date)
	}
}

func TestSlugTitle(t *testing.T) {
	tests := []struct {
		href, want string
	}{
		{"https://example.org/events/members-night-tour", "Members Night Tour"},
		{"https://example.org/events/jazz/", "Jazz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slugTitle(tt.href); got != tt.want {
			t.Errorf("slugTitle(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
