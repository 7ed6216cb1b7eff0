package filter

import (
	"testing"
	"time"

	"github.com/soireeapp/soiree-events/internal/event"
)

func timePtr(t time.Time) *time.Time { return &t }

func sampleEvents() []*event.Event {
	return []*event.Event{
		{
			Name:      "Rooftop Jazz Night",
			Category:  "music",
			Location:  "Chelsea",
			Address:   "Chelsea, Manhattan",
			Price:     "free",
			Source:    "NYC For Free",
			StartDate: "2026-03-07", // Saturday
		},
		{
			Name:      "Gallery Opening",
			Category:  "art",
			Location:  "SoHo",
			Address:   "123 Greene St, Manhattan",
			Price:     "See details",
			Source:    "Time Out New York",
			StartDate: "2026-03-10", // Tuesday
		},
		{
			Name:     "Weekly Trivia",
			Category: "community",
			Location: "Hoboken",
			Price:    "free",
			Source:   "The Local Girl",
			// recurring, no resolved start date
		},
	}
}

func TestFilterIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"new filter", New(), true},
		{"date from set", &Filter{DateFrom: timePtr(time.Now())}, false},
		{"category set", &Filter{Categories: []string{"music"}}, false},
		{"weekends only", &Filter{WeekendsOnly: true}, false},
		{"free only", &Filter{FreeOnly: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterApply(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{
			name:   "empty filter matches all",
			filter: New(),
			want:   []string{"Rooftop Jazz Night", "Gallery Opening", "Weekly Trivia"},
		},
		{
			name:   "category exact match",
			filter: &Filter{Categories: []string{"music"}},
			want:   []string{"Rooftop Jazz Night"},
		},
		{
			name:   "category is case-insensitive",
			filter: &Filter{Categories: []string{"ART"}},
			want:   []string{"Gallery Opening"},
		},
		{
			name:   "source match",
			filter: &Filter{Sources: []string{"The Local Girl"}},
			want:   []string{"Weekly Trivia"},
		},
		{
			name:   "location substring matches address too",
			filter: &Filter{Locations: []string{"manhattan"}},
			want:   []string{"Rooftop Jazz Night", "Gallery Opening"},
		},
		{
			name: "date window",
			filter: &Filter{
				DateFrom: timePtr(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)),
				DateTo:   timePtr(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)),
			},
			// the undated recurring event passes date criteria
			want: []string{"Gallery Opening", "Weekly Trivia"},
		},
		{
			name:   "weekends only",
			filter: &Filter{WeekendsOnly: true},
			want:   []string{"Rooftop Jazz Night", "Weekly Trivia"},
		},
		{
			name:   "free only",
			filter: &Filter{FreeOnly: true},
			want:   []string{"Rooftop Jazz Night", "Weekly Trivia"},
		},
		{
			name: "combined criteria",
			filter: &Filter{
				Categories: []string{"music", "art"},
				FreeOnly:   true,
			},
			want: []string{"Rooftop Jazz Night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(events)
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() returned %d events, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Name != tt.want[i] {
					t.Errorf("Apply()[%d] = %q, want %q", i, e.Name, tt.want[i])
				}
			}
		})
	}
}

func TestFilterString(t *testing.T) {
	if got := New().String(); got != "No active filters" {
		t.Errorf("String() = %q", got)
	}

	f := &Filter{
		DateFrom:     timePtr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		Categories:   []string{"music"},
		WeekendsOnly: true,
	}
	want := "From: Mar 1, 2026 | Categories: music | Weekends only"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsFree(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{"free", true},
		{"Free", true},
		{"free with RSVP", true},
		{"$0", true},
		{"", true},
		{"$25", false},
		{"See details", false},
	}
	for _, tt := range tests {
		if got := isFree(tt.price); got != tt.want {
			t.Errorf("isFree(%q) = %v, want %v", tt.price, got, tt.want)
		}
	}
}
