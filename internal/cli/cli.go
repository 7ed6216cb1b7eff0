package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/soireeapp/soiree-events/internal/api"
	"github.com/soireeapp/soiree-events/internal/config"
	"github.com/soireeapp/soiree-events/internal/fetch"
	"github.com/soireeapp/soiree-events/internal/filter"
	"github.com/soireeapp/soiree-events/internal/ingest"
	"github.com/soireeapp/soiree-events/internal/logger"
	"github.com/soireeapp/soiree-events/internal/scraper"
	"github.com/soireeapp/soiree-events/internal/store"
	"github.com/soireeapp/soiree-events/internal/workers"
)

var (
	flagVerbose bool

	flagScope string

	flagCategory string
	flagSource   string
	flagLocation string
	flagDates    string
	flagWeekends bool
	flagFree     bool
	flagSort     string
	flagFormat   string
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soiree-events",
		Short: "Free-event listings pipeline and API",
		Long: `Scrapes free-event listings from NYC and Hudson County sites,
normalizes and deduplicates them, and serves them over HTTP.`,
		PersistentPreRun: func(*cobra.Command, []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(), newScrapeCmd(), newClearCmd(), newListCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			st, err := store.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			cache := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			pingCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()
			if err := cache.Ping(pingCtx).Err(); err != nil {
				logger.Warn("redis unavailable, listing cache disabled", logger.Fields{
					"addr": cfg.RedisAddr,
				})
				cache = nil
			}

			runner := ingest.NewRunner(st, buildSources(cfg), cfg, logger.NewMetrics())
			handler := api.NewHandler(st, runner, cache, cfg)

			addr := ":" + cfg.ListenPort
			logger.Info("listening", logger.Fields{"addr": addr})
			return handler.Router().Run(addr)
		},
	}
}

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Run one ingestion pass and print the summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			st, err := store.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			runner := ingest.NewRunner(st, buildSources(cfg), cfg, logger.NewMetrics())
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			st, err := store.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			var deleted int64
			switch flagScope {
			case "stale":
				deleted, err = st.DeleteOlderThan(cmd.Context(), cfg.Retention())
			case "all":
				deleted, err = st.DeleteAll(cmd.Context())
			default:
				return fmt.Errorf("--scope must be 'stale' or 'all', got %q", flagScope)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d events (%s)\n", deleted, flagScope)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagScope, "scope", "stale", "What to delete: stale or all")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			st, err := store.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer st.Close()

			events, err := st.ListEvents(cmd.Context(), "")
			if err != nil {
				return err
			}

			f, err := buildFilter()
			if err != nil {
				return err
			}
			events = f.Apply(events)

			order := SortOrder(strings.ToLower(flagSort))
			if err := sortEvents(events, order); err != nil {
				return err
			}

			result := &ListResult{
				FetchedAt: time.Now().UTC(),
				Filter:    f.String(),
				Count:     len(events),
				Events:    events,
			}
			return WriteOutput(cmd.OutOrStdout(), result, OutputFormat(strings.ToLower(flagFormat)))
		},
	}

	cmd.Flags().StringVar(&flagCategory, "category", "", "Filter by category")
	cmd.Flags().StringVar(&flagSource, "source", "", "Filter by source name")
	cmd.Flags().StringVar(&flagLocation, "location", "", "Filter by location substring")
	cmd.Flags().StringVar(&flagDates, "dates", "", "Date range, e.g. 'Mar 1-15' or 'March'")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Weekend events only")
	cmd.Flags().BoolVar(&flagFree, "free", false, "Free events only")
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order: date, category, or name")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

// buildFilter assembles the listing filter from the list command flags.
func buildFilter() (*filter.Filter, error) {
	f := filter.New()
	if flagCategory != "" {
		f.Categories = []string{flagCategory}
	}
	if flagSource != "" {
		f.Sources = []string{flagSource}
	}
	if flagLocation != "" {
		f.Locations = []string{flagLocation}
	}
	if flagDates != "" {
		from, to, err := filter.ParseDateRange(flagDates)
		if err != nil {
			return nil, err
		}
		f.DateFrom = from
		f.DateTo = to
	}
	f.WeekendsOnly = flagWeekends
	f.FreeOnly = flagFree
	return f, nil
}

// buildSources assembles the scrape sources from config. Museum calendars
// render client-side and only join the run when headless fetching is on.
func buildSources(cfg *config.Config) []scraper.Source {
	listing := fetch.NewHTTP(cfg.FetchTimeout)
	detail := fetch.NewHTTP(cfg.DetailTimeout)
	pool := workers.NewPool(cfg.DetailWorkers, cfg.RateLimitMs)

	sources := []scraper.Source{
		scraper.NewNYCForFree(listing, cfg.MaxPerSource),
		scraper.NewTimeOut(listing, cfg.MaxPerSource),
		scraper.NewLocalGirl(listing, detail, pool, cfg.MaxPerSource),
	}

	if cfg.EnableHeadless {
		chrome := fetch.NewChrome(30 * time.Second)
		for _, mc := range scraper.MuseumConfigs {
			sources = append(sources, scraper.NewMuseum(chrome, mc, cfg.MaxPerSource))
		}
	}
	return sources
}
