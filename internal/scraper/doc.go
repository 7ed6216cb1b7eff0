// Package scraper provides the per-site source extractors that turn fetched
// page content into event candidates.
//
// Each source implements the Source interface and carries its own fetcher
// and structural heuristics: an ordered list of candidate selectors per
// field where the first selector yielding non-empty text wins. Sources are
// deliberately tolerant: a missing optional field falls back to a default,
// and a failed fetch degrades to an empty contribution so the remaining
// sources still count.
package scraper
