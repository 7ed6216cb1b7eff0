// Package event defines the canonical event model shared by the ingestion
// pipeline and the API layer.
//
// Scraped pages produce loosely-typed Candidates; Normalize validates and
// coerces a Candidate into an Event with bounded fields, a resolved category,
// and calendar dates interpreted from free-form date text. Events are keyed
// by their source URL, which acts as the idempotency key for upserts.
package event
