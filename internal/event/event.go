package event

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Event categories. Categorize always resolves to one of these;
// CategoryCommunity is the default when no keyword family matches.
const (
	CategoryArt       = "art"
	CategoryMusic     = "music"
	CategoryCulinary  = "culinary"
	CategoryFashion   = "fashion"
	CategoryLifestyle = "lifestyle"
	CategoryPerks     = "perks"
	CategoryCommunity = "community"
)

// Categories lists all valid categories in display order.
var Categories = []string{
	CategoryArt,
	CategoryMusic,
	CategoryCulinary,
	CategoryFashion,
	CategoryLifestyle,
	CategoryPerks,
	CategoryCommunity,
}

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Event is a validated, bounded-field event record ready for persistence.
// URL is the uniqueness key across the whole corpus; StartDate and EndDate
// are ISO calendar dates (YYYY-MM-DD) while Date and Time remain
// human-readable display strings.
type Event struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Category    string     `db:"category" json:"category"`
	Date        string     `db:"date" json:"date"`
	Time        string     `db:"time" json:"time"`
	Location    string     `db:"location" json:"location"`
	Address     string     `db:"address" json:"address"`
	Price       string     `db:"price" json:"price"`
	Spots       int        `db:"spots" json:"spots"`
	Image       string     `db:"image" json:"image,omitempty"`
	Description string     `db:"description" json:"description"`
	Highlights  Highlights `db:"highlights" json:"highlights"`
	URL         string     `db:"url" json:"url"`
	Source      string     `db:"source" json:"source"`
	StartDate   string     `db:"start_date" json:"start_date,omitempty"`
	EndDate     string     `db:"end_date" json:"end_date,omitempty"`
	ScrapedAt   time.Time  `db:"scraped_at" json:"scraped_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Candidate is an unvalidated event record extracted from a single source.
// All fields are optional except what Normalize requires (Name, URL and a
// resolved StartDate); Spots stays a string so sources can pass through
// whatever the page contained.
type Candidate struct {
	Name        string
	Category    string
	Date        string
	Time        string
	Location    string
	Address     string
	Price       string
	Spots       string
	Image       string
	Description string
	Highlights  []string
	URL         string
	Source      string
	StartDate   string
	EndDate     string
}

// Highlights is a short ordered list of promotional bullet points. It
// implements sql.Scanner and driver.Valuer so it round-trips through a
// jsonb column transparently.
type Highlights []string

// Scan implements sql.Scanner.
func (h *Highlights) Scan(src interface{}) error {
	if src == nil {
		*h = Highlights{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("event: cannot scan %T into Highlights", src)
	}
}

// Value implements driver.Valuer. A nil slice marshals to an empty JSON
// array so the column never holds SQL NULL.
func (h Highlights) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(h))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
