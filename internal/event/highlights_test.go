package event

import "testing"

func TestGenerateHighlights(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		category    string
		contains    string
	}{
		{
			name:        "free admission signal",
			title:       "Free Jazz in the Park",
			description: "An evening of live jazz",
			category:    CategoryMusic,
			contains:    "Free admission",
		},
		{
			name:        "live performance signal",
			title:       "Rooftop Sessions",
			description: "live band on the roof deck",
			category:    CategoryMusic,
			contains:    "Live performance",
		},
		{
			name:        "workshop signal",
			title:       "Pottery Workshop",
			description: "hands-on session for beginners",
			category:    CategoryArt,
			contains:    "Interactive workshop",
		},
		{
			name:        "outdoor signal",
			title:       "Sculpture Garden Stroll",
			description: "wander the outdoor garden",
			category:    CategoryArt,
			contains:    "Outdoor venue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateHighlights(tt.title, tt.description, tt.category, "", "")
			if !containsString(got, tt.contains) {
				t.Errorf("GenerateHighlights(%q, %q) = %v, want to contain %q",
					tt.title, tt.description, got, tt.contains)
			}
		})
	}
}

func TestGenerateHighlightsFallsBackToCategory(t *testing.T) {
	got := GenerateHighlights("Untitled", "nothing notable here", CategoryCulinary, "", "")
	if !containsString(got, "Culinary experience") {
		t.Errorf("expected category fallback in %v", got)
	}
}

func TestGenerateHighlightsBoundsAndDedupes(t *testing.T) {
	got := GenerateHighlights(
		"Free tasting with live jazz, outdoor screening and giveaway",
		"free swag, rsvp, panel talk, wine, kids welcome, rooftop photo booth",
		CategoryCommunity, "Bushwick, Brooklyn", "The Local Girl",
	)
	if len(got) > 4 {
		t.Errorf("got %d highlights, want at most 4: %v", len(got), got)
	}
	seen := make(map[string]bool)
	for _, h := range got {
		if seen[h] {
			t.Errorf("duplicate highlight %q in %v", h, got)
		}
		seen[h] = true
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
