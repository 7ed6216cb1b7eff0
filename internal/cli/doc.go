// Package cli implements the command-line interface for soiree-events.
//
// The cli package provides the Cobra-based CLI with subcommands for running
// the HTTP API (serve), executing a one-off ingestion run (scrape), clearing
// stored events (clear), and listing stored events with filtering and
// sorting (list). It coordinates the config, store, scraper, ingest and api
// packages.
package cli
