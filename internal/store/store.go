// Package store persists events, subscribers and site stats in PostgreSQL.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/soireeapp/soiree-events/internal/event"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
  id SERIAL PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  category VARCHAR(50) NOT NULL,
  date VARCHAR(100) NOT NULL,
  time VARCHAR(100) NOT NULL,
  location VARCHAR(255) NOT NULL,
  address VARCHAR(500),
  price VARCHAR(50) DEFAULT 'free',
  spots INTEGER DEFAULT 0,
  image TEXT,
  description TEXT,
  highlights JSONB,
  url VARCHAR(500) UNIQUE NOT NULL,
  source VARCHAR(100) DEFAULT 'Unknown',
  start_date DATE,
  end_date DATE,
  scraped_at TIMESTAMP DEFAULT NOW(),
  created_at TIMESTAMP DEFAULT NOW(),
  updated_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
CREATE INDEX IF NOT EXISTS idx_events_scraped ON events(scraped_at);
CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date);

CREATE TABLE IF NOT EXISTS subscribers (
  id SERIAL PRIMARY KEY,
  email VARCHAR(255) UNIQUE NOT NULL,
  region VARCHAR(50) NOT NULL DEFAULT 'nyc',
  categories JSONB DEFAULT '[]'::jsonb,
  unsubscribe_token VARCHAR(64) UNIQUE NOT NULL,
  active BOOLEAN DEFAULT true,
  created_at TIMESTAMP DEFAULT NOW(),
  updated_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stats (
  id SERIAL PRIMARY KEY,
  page_views INTEGER DEFAULT 0,
  updated_at TIMESTAMP DEFAULT NOW()
);

INSERT INTO stats (id, page_views)
SELECT 1, 0
WHERE NOT EXISTS (SELECT 1 FROM stats WHERE id = 1);
`

// eventColumns projects rows into event.Event. DATE columns come back as
// plain YYYY-MM-DD strings.
const eventColumns = `
  id, name, category, date, time, location,
  COALESCE(address, '') AS address,
  COALESCE(price, 'free') AS price,
  spots,
  COALESCE(image, '') AS image,
  COALESCE(description, '') AS description,
  highlights,
  url,
  COALESCE(source, 'Unknown') AS source,
  COALESCE(to_char(start_date, 'YYYY-MM-DD'), '') AS start_date,
  COALESCE(to_char(end_date, 'YYYY-MM-DD'), '') AS end_date,
  scraped_at, created_at, updated_at`

// Store wraps a PostgreSQL connection pool.
type Store struct {
	db *sqlx.DB
}

// Open connects to PostgreSQL and applies the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertEvent inserts e or, when the url already exists, refreshes the
// stored row. The returned flag is true for a fresh insert; xmax is zero
// only for rows created by the current transaction.
func (s *Store) UpsertEvent(ctx context.Context, e *event.Event) (bool, error) {
	if e.Highlights == nil {
		e.Highlights = event.Highlights{}
	}

	const stmt = `
INSERT INTO events
  (name, category, date, time, location, address, price, spots, image,
   description, highlights, url, source, start_date, end_date, scraped_at, updated_at)
VALUES
  ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''),
   $10, $11::jsonb, $12, $13, NULLIF($14, '')::date, NULLIF($15, '')::date, NOW(), NOW())
ON CONFLICT (url) DO UPDATE SET
  name = EXCLUDED.name,
  category = EXCLUDED.category,
  date = EXCLUDED.date,
  time = EXCLUDED.time,
  location = EXCLUDED.location,
  address = EXCLUDED.address,
  price = EXCLUDED.price,
  spots = EXCLUDED.spots,
  image = EXCLUDED.image,
  description = EXCLUDED.description,
  highlights = EXCLUDED.highlights,
  source = EXCLUDED.source,
  start_date = EXCLUDED.start_date,
  end_date = EXCLUDED.end_date,
  scraped_at = NOW(),
  updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

	var inserted bool
	err := s.db.QueryRowContext(ctx, stmt,
		e.Name, e.Category, e.Date, e.Time, e.Location, e.Address, e.Price,
		e.Spots, e.Image, e.Description, e.Highlights, e.URL, e.Source,
		e.StartDate, e.EndDate,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upserting event url=%s: %w", e.URL, err)
	}
	return inserted, nil
}

// ListEvents returns stored events newest first, optionally filtered to a
// single category. An empty category or "all" returns everything.
func (s *Store) ListEvents(ctx context.Context, category string) ([]*event.Event, error) {
	events := []*event.Event{}

	if category != "" && category != "all" {
		query := fmt.Sprintf(`SELECT %s FROM events WHERE category = $1 ORDER BY created_at DESC`, eventColumns)
		if err := s.db.SelectContext(ctx, &events, query, category); err != nil {
			return nil, fmt.Errorf("listing events category=%s: %w", category, err)
		}
		return events, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY created_at DESC`, eventColumns)
	if err := s.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// GetEvent returns one event by id. A miss returns sql.ErrNoRows wrapped.
func (s *Store) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	var e event.Event
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	if err := s.db.GetContext(ctx, &e, query, id); err != nil {
		return nil, fmt.Errorf("getting event id=%d: %w", id, err)
	}
	return &e, nil
}

// DeleteOlderThan removes events whose last scrape predates the window.
func (s *Store) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE scraped_at < NOW() - ($1 * INTERVAL '1 second')`,
		int64(age.Seconds()),
	)
	if err != nil {
		return 0, fmt.Errorf("purging stale events: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAll removes every stored event.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, fmt.Errorf("clearing events: %w", err)
	}
	return res.RowsAffected()
}

// CountEvents returns the number of stored events.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// CountUniqueEvents returns the number of distinct event names.
func (s *Store) CountUniqueEvents(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(DISTINCT name) FROM events`); err != nil {
		return 0, fmt.Errorf("counting unique events: %w", err)
	}
	return count, nil
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID         int64            `db:"id" json:"id"`
	Email      string           `db:"email" json:"email"`
	Region     string           `db:"region" json:"region"`
	Categories event.Highlights `db:"categories" json:"categories"`
}

// Subscribe registers the email or reactivates and updates an existing
// subscription. The unsubscribe token survives re-subscription.
func (s *Store) Subscribe(ctx context.Context, email, region string, categories []string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if region == "" {
		region = "nyc"
	}
	cats := event.Highlights(categories)
	if cats == nil {
		cats = event.Highlights{}
	}
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")

	const stmt = `
INSERT INTO subscribers (email, region, categories, unsubscribe_token)
VALUES ($1, $2, $3::jsonb, $4)
ON CONFLICT (email) DO UPDATE SET
  region = EXCLUDED.region,
  categories = EXCLUDED.categories,
  active = true,
  updated_at = NOW()
RETURNING id, email, region, categories`

	var sub Subscriber
	if err := s.db.GetContext(ctx, &sub, stmt, email, region, cats, token); err != nil {
		return nil, fmt.Errorf("subscribing %s: %w", email, err)
	}
	return &sub, nil
}

// Unsubscribe deactivates the subscription matching the token and returns
// its email. A miss returns sql.ErrNoRows wrapped.
func (s *Store) Unsubscribe(ctx context.Context, token string) (string, error) {
	var email string
	err := s.db.GetContext(ctx, &email,
		`UPDATE subscribers SET active = false, updated_at = NOW()
		 WHERE unsubscribe_token = $1
		 RETURNING email`, token)
	if err != nil {
		return "", fmt.Errorf("unsubscribing: %w", err)
	}
	return email, nil
}

// CountSubscribers returns the number of active subscriptions.
func (s *Store) CountSubscribers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM subscribers WHERE active = true`); err != nil {
		return 0, fmt.Errorf("counting subscribers: %w", err)
	}
	return count, nil
}

// IncrementPageViews bumps the site view counter.
func (s *Store) IncrementPageViews(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE stats SET page_views = page_views + 1, updated_at = NOW() WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("incrementing page views: %w", err)
	}
	return nil
}

// PageViews returns the current site view counter.
func (s *Store) PageViews(ctx context.Context) (int, error) {
	var views int
	if err := s.db.GetContext(ctx, &views,
		`SELECT page_views FROM stats WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("reading page views: %w", err)
	}
	return views, nil
}
