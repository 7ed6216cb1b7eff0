package event

import (
	"regexp"
	"strings"
)

// museumVenues are location substrings that strongly imply an art venue.
// A venue match overrides keyword families entirely, except for food-led
// programming hosted at a museum.
var museumVenues = []string{
	"moma", "met", "metropolitan", "whitney", "guggenheim",
	"new museum", "museum", "gallery", "brooklyn museum", "amnh",
}

var museumFoodOverride = regexp.MustCompile(`\b(cook|chef|tasting|dinner|brunch|food)\b`)

// keywordFamily pairs a category with the ordered patterns that select it.
type keywordFamily struct {
	category string
	patterns []*regexp.Regexp
}

// keywordFamilies are checked in priority order; the first family with a
// matching pattern wins. The tables are package data so they can be tested
// independently of any extraction.
var keywordFamilies = []keywordFamily{
	{CategoryPerks, []*regexp.Regexp{
		regexp.MustCompile(`free\s+(sample|gift|coffee|latte|drink|treat|tote|shirt|t-shirt|merch|product|item|goodie|makeup|lipstick|skincare|fragrance|ice cream|donut|doughnut|pizza|slice|cookie|cupcake|smoothie|juice|chai|matcha|espresso|bagel|croissant|muffin|chocolate|beer|wine|cocktail|seltzer|swag)`),
		regexp.MustCompile(`\b(complimentary|giveaway|swag|goodie bag|gift bag|gift with purchase|free gifts?|free tasting)\b`),
		regexp.MustCompile(`while supplies last`),
		regexp.MustCompile(`first\s+\d+\s+(guests?|people|visitors?|customers?)`),
	}},
	{CategoryArt, []*regexp.Regexp{
		// film programming counts as art
		regexp.MustCompile(`directed by|director's cut|screening|film series`),
		regexp.MustCompile(`\b(art|gallery|exhibit|exhibition|paint|sculpture|artist|mural|craft|pottery|drawing|illustration|installation|visual|theater|theatre|cinema|film|movie|photography|graffiti|contemporary|abstract|coloring|animation|collection|calligraphy|prints|portrait)\b`),
		regexp.MustCompile(`street art|ice sculpture|studio tour|open studio|architecture tour`),
	}},
	{CategoryMusic, []*regexp.Regexp{
		regexp.MustCompile(`\b(music|concert|jazz|dj|band|singer|live|festival|stage|soundtrack|album|vinyl|orchestra|choir|acoustic|symphony|karaoke|rap|rock|indie|electronic|classical|ballet|choreograph|nightlife|party|rave)\b`),
		regexp.MustCompile(`live music|hip hop|release party`),
	}},
	{CategoryCulinary, []*regexp.Regexp{
		regexp.MustCompile(`\b(food|culinary|market|tasting|restaurant|cook|dining|kitchen|chef|menu|wine|coffee|cafe|bakery|brunch|dinner|lunch|breakfast|cocktail|beer|eat|eating|flavor|recipe|gourmet|pizza|burger|chicken|sushi|ramen|bbq|brewery|pub|tavern|bistro|eatery|slice|taco|sandwich|foodie|cuisine|pastry|dessert|appetizer|treat|snack|chocolate|muffin|sundae|smoothie|gnocchi|cookie|donut|doughnut)\b`),
		regexp.MustCompile(`hot chocolate|ice cream`),
		regexp.MustCompile(`grand opening.*(express|grill|kitchen|cafe|deli|restaurant|bar|eatery|bistro|bakery)`),
	}},
	{CategoryFashion, []*regexp.Regexp{
		regexp.MustCompile(`\b(fashion|runway|designer|couture|clothing|apparel|boutique|wardrobe|outfit|lookbook|vogue|catwalk|textile)\b`),
	}},
	{CategoryLifestyle, []*regexp.Regexp{
		regexp.MustCompile(`\b(yoga|fitness|workout|meditation|wellness|beauty|skincare|spa|k-beauty|cosmetic|makeup|fragrance|self-care|pilates|barre|cycling|running|marathon|gym)\b`),
		regexp.MustCompile(`pop-up|popup|launch celebration|grand opening|experience|charm bar|scavenger hunt`),
	}},
	{CategoryCommunity, []*regexp.Regexp{
		regexp.MustCompile(`\b(family|kids|children|volunteer|parade|camp|fair|story time|storytime|tweens|teens|workshop|seminar|lecture|networking|meetup|discussion|panel|book club|reading|world cup|soccer|basketball|baseball|sports bar|fan village)\b`),
		regexp.MustCompile(`valentine|galentine|lunar new year|australia day|wikipedia day`),
		regexp.MustCompile(`\b(celebration|anniversary|birthday|bash|launch)\b`),
	}},
}

// Categorize maps event text to one of the fixed categories. It is a total
// function: unmatched text resolves to CategoryCommunity. The location hint
// is only used for the museum-venue override.
func Categorize(title, description, location string) string {
	text := strings.ToLower(title + " " + description)
	loc := strings.ToLower(location)

	for _, venue := range museumVenues {
		if strings.Contains(loc, venue) {
			if museumFoodOverride.MatchString(text) {
				return CategoryCulinary
			}
			return CategoryArt
		}
	}

	for _, family := range keywordFamilies {
		for _, p := range family.patterns {
			if p.MatchString(text) {
				return family.category
			}
		}
	}

	return CategoryCommunity
}
