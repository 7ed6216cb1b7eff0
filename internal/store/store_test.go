package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/soireeapp/soiree-events/internal/event"
)

// openTestStore connects to the database named by TEST_DATABASE_URL. Tests
// in this file need a throwaway Postgres and are skipped without one.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	st, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		st.DeleteAll(context.Background())
		st.Close()
	})
	return st
}

func testEvent(name, url string) *event.Event {
	return &event.Event{
		Name:       name,
		Category:   "music",
		Date:       "March 7, 2026",
		Time:       "7:00 PM",
		Location:   "Chelsea",
		Address:    "Chelsea, Manhattan",
		Price:      "free",
		Spots:      50,
		Highlights: event.Highlights{"Free event"},
		URL:        url,
		Source:     "Test",
		StartDate:  "2026-03-07",
	}
}

func TestUpsertEventInsertThenUpdate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	e := testEvent("Jazz Night", "https://example.com/events/jazz")
	inserted, err := st.UpsertEvent(ctx, e)
	if err != nil {
		t.Fatalf("UpsertEvent: %v", err)
	}
	if !inserted {
		t.Error("first upsert should insert")
	}

	e.Name = "Jazz Night (Updated)"
	inserted, err = st.UpsertEvent(ctx, e)
	if err != nil {
		t.Fatalf("UpsertEvent: %v", err)
	}
	if inserted {
		t.Error("second upsert should update")
	}

	events, err := st.ListEvents(ctx, "music")
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Name != "Jazz Night (Updated)" {
		t.Errorf("name = %q", events[0].Name)
	}
	if events[0].StartDate != "2026-03-07" {
		t.Errorf("start date round-trip = %q", events[0].StartDate)
	}
	if len(events[0].Highlights) != 1 {
		t.Errorf("highlights round-trip = %v", events[0].Highlights)
	}
}

func TestDeleteOlderThanKeepsFreshRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.UpsertEvent(ctx, testEvent("Fresh", "https://example.com/events/fresh")); err != nil {
		t.Fatalf("UpsertEvent: %v", err)
	}

	deleted, err := st.DeleteOlderThan(ctx, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted %d fresh rows", deleted)
	}

	count, err := st.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d", count)
	}
}

func TestSubscribeLifecycle(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sub, err := st.Subscribe(ctx, "Ada@Example.com", "", []string{"music"})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", sub.Email)
	}
	if sub.Region != "nyc" {
		t.Errorf("region default = %q", sub.Region)
	}

	count, err := st.CountSubscribers(ctx)
	if err != nil {
		t.Fatalf("CountSubscribers: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d", count)
	}
}
