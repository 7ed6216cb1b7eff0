package scraper

import "github.com/soireeapp/soiree-events/internal/event"

// FallbackEvents is the curated set used when a run yields too few live
// candidates. Dates are relative so repeated runs keep them current.
func FallbackEvents() []event.Candidate {
	candidates := []event.Candidate{
		{
			Name:        "Brooklyn Street Art Walk",
			Category:    event.CategoryArt,
			Date:        "This Weekend",
			Time:        "2:00 PM - 5:00 PM",
			Location:    "Bushwick, Brooklyn",
			Address:     "Troutman St & Wyckoff Ave, Brooklyn, NY",
			Price:       "free",
			Spots:       "75",
			Image:       "https://images.unsplash.com/photo-1499781350541-7783f6c6a0c8?w=800&q=80",
			Description: "Explore Bushwick's vibrant street art scene with a local guide.",
			Highlights:  []string{"Guided tour", "Instagram spots", "Meet artists", "2-hour experience"},
			URL:         "https://www.nycforfree.co/events/brooklyn-street-art-walk",
			Source:      "Curated",
		},
		{
			Name:        "Free Jazz in Central Park",
			Category:    event.CategoryMusic,
			Date:        "Friday Evening",
			Time:        "7:00 PM - 9:00 PM",
			Location:    "Central Park",
			Address:     "Rumsey Playfield, Central Park",
			Price:       "free",
			Spots:       "200",
			Image:       "https://images.unsplash.com/photo-1415201364774-f6f0bb35f28f?w=800&q=80",
			Description: "Evening of smooth jazz under the stars.",
			Highlights:  []string{"Live quartet", "Outdoor setting", "Bring picnic", "Family friendly"},
			URL:         "https://www.nycforfree.co/events/free-jazz-central-park",
			Source:      "Curated",
		},
		{
			Name:        "DUMBO Food Market",
			Category:    event.CategoryCulinary,
			Date:        "Sunday",
			Time:        "11:00 AM - 6:00 PM",
			Location:    "DUMBO, Brooklyn",
			Address:     "Pearl Plaza, Brooklyn, NY",
			Price:       "free",
			Spots:       "300",
			Image:       "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800&q=80",
			Description: "Sample artisanal foods from local vendors.",
			Highlights:  []string{"50+ vendors", "Cooking demos", "Free samples", "Waterfront"},
			URL:         "https://www.nycforfree.co/events/dumbo-food-market",
			Source:      "Curated",
		},
	}

	for i := range candidates {
		candidates[i].StartDate, candidates[i].EndDate = event.ParseDateText(candidates[i].Date, candidates[i].Time)
	}
	return candidates
}
