package event

import (
	"regexp"
	"strings"
)

// highlightRule emits a bullet point for the first matching pattern in its
// group, so mutually-exclusive signals ("live jazz" vs "DJ set") produce a
// single highlight.
type highlightRule struct {
	pattern *regexp.Regexp
	text    string
}

var highlightGroups = [][]highlightRule{
	{
		{regexp.MustCompile(`\bfree\b`), "Free admission"},
		{regexp.MustCompile(`\brsvp\b`), "RSVP required"},
	},
	{
		{regexp.MustCompile(`\blive\s+(music|band|performance|jazz|dj|concert)\b`), "Live performance"},
		{regexp.MustCompile(`\bjazz\b`), "Live jazz"},
		{regexp.MustCompile(`\bdj\b`), "DJ set"},
		{regexp.MustCompile(`\b(concert|symphony|orchestra|choir)\b`), "Live concert"},
	},
	{
		{regexp.MustCompile(`\b(workshop|hands.on|interactive)\b`), "Interactive workshop"},
		{regexp.MustCompile(`\b(panel|discussion|talk|lecture|seminar)\b`), "Panel discussion"},
		{regexp.MustCompile(`\b(screening|film|movie)\b`), "Film screening"},
		{regexp.MustCompile(`\b(exhibit|exhibition|gallery|installation)\b`), "Art exhibition"},
		{regexp.MustCompile(`\b(tour|guided)\b`), "Guided tour"},
		{regexp.MustCompile(`\b(market|vendor)\b|pop.?up`), "Pop-up market"},
		{regexp.MustCompile(`\bfestival\b`), "Multi-day festival"},
		{regexp.MustCompile(`\b(networking|mixer|meetup)\b`), "Networking event"},
	},
	{
		{regexp.MustCompile(`\bcocktail\b|open bar|\bdrinks?\b`), "Cocktails available"},
		{regexp.MustCompile(`\bwine\b`), "Wine available"},
		{regexp.MustCompile(`\b(beer|brewery)\b`), "Craft beer"},
		{regexp.MustCompile(`\b(food|tasting|sample|snack|bite)\b`), "Food available"},
		{regexp.MustCompile(`\b(coffee|cafe|espresso)\b`), "Coffee & drinks"},
	},
	{
		{regexp.MustCompile(`\b(family|kids|children)\b|all ages`), "Family friendly"},
		{regexp.MustCompile(`\badult\b|21\+|21 and over`), "21+ event"},
		{regexp.MustCompile(`\bdog\b|pet.friendly`), "Pet friendly"},
	},
	{
		{regexp.MustCompile(`\b(outdoor|rooftop|park|garden)\b|open.?air`), "Outdoor venue"},
		{regexp.MustCompile(`\b(waterfront|waterside|harbor|river)\b`), "Waterfront location"},
	},
	{
		{regexp.MustCompile(`\b(giveaway|raffle|prize)\b`), "Giveaways & prizes"},
	},
	{
		{regexp.MustCompile(`\bswag\b|goodie|gift bag`), "Free swag"},
	},
	{
		{regexp.MustCompile(`photo\s*(op|booth|wall)|\binstagram\b`), "Photo opportunities"},
	},
}

var categoryHighlightFallbacks = map[string][]string{
	CategoryArt:       {"Visual arts", "Cultural experience"},
	CategoryMusic:     {"Live entertainment", "Music experience"},
	CategoryCulinary:  {"Culinary experience", "Local flavors"},
	CategoryFashion:   {"Fashion showcase", "Style inspiration"},
	CategoryLifestyle: {"Wellness & lifestyle", "Self-care"},
	CategoryPerks:     {"Exclusive perks", "Limited availability"},
	CategoryCommunity: {"Community gathering", "Local event"},
}

// GenerateHighlights scans the event text for signals and builds up to four
// short bullet points, padding from category fallbacks and the venue when
// too few signals are present.
func GenerateHighlights(name, description, category, location, source string) []string {
	text := strings.ToLower(name + " " + description)
	var highlights []string

	for _, group := range highlightGroups {
		for _, rule := range group {
			if rule.pattern.MatchString(text) {
				highlights = append(highlights, rule.text)
				break
			}
		}
	}

	if len(highlights) < 2 {
		fallbacks, ok := categoryHighlightFallbacks[category]
		if !ok {
			fallbacks = categoryHighlightFallbacks[CategoryCommunity]
		}
		highlights = append(highlights, fallbacks...)
	}

	if len(highlights) < 4 && location != "" && location != "New York City" && location != "NYC" {
		highlights = append(highlights, location)
	}

	if len(highlights) < 3 && source != "" && source != "Unknown" {
		highlights = append(highlights, "Via "+source)
	}

	seen := make(map[string]bool, len(highlights))
	unique := highlights[:0]
	for _, h := range highlights {
		if !seen[h] {
			seen[h] = true
			unique = append(unique, h)
		}
	}
	if len(unique) > 4 {
		unique = unique[:4]
	}
	return unique
}
