// Package ingest orchestrates a full pipeline run: purge stale rows, scrape
// every source, normalize and deduplicate the candidates, and persist the
// survivors.
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soireeapp/soiree-events/internal/config"
	"github.com/soireeapp/soiree-events/internal/event"
	"github.com/soireeapp/soiree-events/internal/logger"
	"github.com/soireeapp/soiree-events/internal/scraper"
)

// EventStore is the persistence surface the pipeline needs.
type EventStore interface {
	UpsertEvent(ctx context.Context, e *event.Event) (inserted bool, err error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
	CountEvents(ctx context.Context) (int, error)
}

// Summary reports what a single run did.
type Summary struct {
	RunID       string    `json:"runId"`
	Scraped     int       `json:"scraped"`
	Inserted    int       `json:"inserted"`
	Updated     int       `json:"updated"`
	Purged      int64     `json:"purged"`
	TotalEvents int       `json:"totalEvents"`
	Timestamp   time.Time `json:"timestamp"`
}

// Runner executes ingestion runs against a fixed set of sources.
type Runner struct {
	store   EventStore
	sources []scraper.Source
	cfg     *config.Config
	metrics *logger.Metrics
}

// NewRunner wires a Runner. metrics may be nil.
func NewRunner(store EventStore, sources []scraper.Source, cfg *config.Config, metrics *logger.Metrics) *Runner {
	return &Runner{store: store, sources: sources, cfg: cfg, metrics: metrics}
}

// Run performs one ingestion pass. The purge happens before any scraping so
// rows written by this run can never fall inside its own purge window. The
// run-level timeout bounds scraping; whatever completed before the deadline
// is still persisted.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
	started := time.Now()

	purged, err := r.store.DeleteOlderThan(ctx, r.cfg.Retention())
	if err != nil {
		return nil, err
	}
	summary.Purged = purged

	scrapeCtx, cancel := context.WithTimeout(ctx, r.cfg.RunTimeout)
	defer cancel()

	candidates := scraper.ScrapeAll(scrapeCtx, r.sources, r.metrics)
	summary.Scraped = len(candidates)

	events := normalizeAll(candidates)
	if len(events) < r.cfg.MinViable {
		logger.Warn("below viable threshold, adding curated events", logger.Fields{
			"runId":  summary.RunID,
			"viable": len(events),
		})
		events = append(events, normalizeAll(scraper.FallbackEvents())...)
	}

	events = dedupeByName(events)
	if len(events) > r.cfg.MaxPerRun {
		events = events[:r.cfg.MaxPerRun]
	}

	for _, e := range events {
		inserted, err := r.store.UpsertEvent(ctx, e)
		if err != nil {
			logger.Error("upsert failed", logger.Fields{
				"runId": summary.RunID,
				"url":   e.URL,
			}, err)
			continue
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	total, err := r.store.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalEvents = total

	if r.metrics != nil {
		r.metrics.IncrCounter("ingest.runs", 1)
		r.metrics.IncrCounter("ingest.inserted", int64(summary.Inserted))
		r.metrics.RecordTiming("ingest.run", time.Since(started))
	}
	logger.Info("run complete", logger.Fields{
		"runId":    summary.RunID,
		"scraped":  summary.Scraped,
		"inserted": summary.Inserted,
		"updated":  summary.Updated,
		"purged":   summary.Purged,
		"total":    summary.TotalEvents,
	})
	return summary, nil
}

// normalizeAll maps candidates through the normalizer, dropping rejects.
func normalizeAll(candidates []event.Candidate) []*event.Event {
	events := make([]*event.Event, 0, len(candidates))
	for _, c := range candidates {
		if e := event.Normalize(c); e != nil {
			events = append(events, e)
		}
	}
	return events
}

// dedupeByName keeps the first event seen under each name. Different sites
// often list the same happening under distinct URLs, so name is the
// cross-source identity while url stays the per-row identity.
func dedupeByName(events []*event.Event) []*event.Event {
	seen := make(map[string]struct{}, len(events))
	out := events[:0]
	for _, e := range events {
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		out = append(out, e)
	}
	return out
}
