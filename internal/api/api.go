// Package api exposes the event listings over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/soireeapp/soiree-events/internal/calendar"
	"github.com/soireeapp/soiree-events/internal/config"
	"github.com/soireeapp/soiree-events/internal/event"
	"github.com/soireeapp/soiree-events/internal/filter"
	"github.com/soireeapp/soiree-events/internal/ingest"
	"github.com/soireeapp/soiree-events/internal/logger"
	"github.com/soireeapp/soiree-events/internal/store"
)

// eventsCacheTTL bounds how stale a cached listing can get between runs.
const eventsCacheTTL = 60 * time.Second

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Store is the persistence surface the handlers need.
type Store interface {
	ListEvents(ctx context.Context, category string) ([]*event.Event, error)
	GetEvent(ctx context.Context, id int64) (*event.Event, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int, error)
	CountUniqueEvents(ctx context.Context) (int, error)
	Subscribe(ctx context.Context, email, region string, categories []string) (*store.Subscriber, error)
	Unsubscribe(ctx context.Context, token string) (string, error)
	CountSubscribers(ctx context.Context) (int, error)
	IncrementPageViews(ctx context.Context) error
	PageViews(ctx context.Context) (int, error)
}

// Trigger starts an ingestion run.
type Trigger interface {
	Run(ctx context.Context) (*ingest.Summary, error)
}

// Handler serves the public API.
type Handler struct {
	store  Store
	runner Trigger
	cache  *redis.Client
	cfg    *config.Config
}

// NewHandler wires a Handler. cache may be nil to disable listing caching.
func NewHandler(st Store, runner Trigger, cache *redis.Client, cfg *config.Config) *Handler {
	return &Handler{store: st, runner: runner, cache: cache, cfg: cfg}
}

// Router builds the gin engine with all routes and middleware attached.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(), cors(h.cfg.AllowedOrigin))

	api := r.Group("/api")
	{
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id/calendar", h.EventCalendar)
		api.DELETE("/events", h.ClearEvents)
		api.POST("/scrape", h.Scrape)
		api.POST("/refresh", h.Refresh)
		api.POST("/subscribe", h.Subscribe)
		api.GET("/subscribe", h.SubscriberCount)
		api.DELETE("/subscribe", h.Unsubscribe)
		api.GET("/stats", h.Stats)
		api.POST("/stats", h.Stats)
		api.GET("/health", h.Health)
	}
	return r
}

// ListEvents handles GET /api/events?category=music&time=week. Listings are
// cached per category and window; a scrape or clear invalidates the whole
// cache.
func (h *Handler) ListEvents(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	if category != "all" && !event.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "unknown category: " + category,
		})
		return
	}
	window := c.Query("time")
	if window != "" && window != "today" && window != "week" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "time must be 'today' or 'week'",
		})
		return
	}

	ctx := c.Request.Context()
	key := cacheKey(category, window)

	if cached := h.cacheGet(ctx, key); cached != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	events, err := h.store.ListEvents(ctx, category)
	if err != nil {
		logger.Error("listing events", logger.Fields{"category": category}, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"events":  []*event.Event{},
		})
		return
	}
	if f := windowFilter(window, time.Now()); f != nil {
		events = f.Apply(events)
	}

	body := gin.H{
		"success": true,
		"count":   len(events),
		"events":  events,
	}
	h.cacheSet(ctx, key, body)
	c.JSON(http.StatusOK, body)
}

// EventCalendar handles GET /api/events/:id/calendar, serving the event as
// a downloadable .ics file.
func (h *Handler) EventCalendar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid event id"})
		return
	}

	evt, err := h.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="event.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.GenerateICS(evt)))
}

// Scrape handles POST /api/scrape. It requires the bearer secret and runs
// the full ingestion pipeline synchronously.
func (h *Handler) Scrape(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	summary, err := h.runner.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}
	h.invalidateCache(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Scraping completed",
		"runId":       summary.RunID,
		"scraped":     summary.Scraped,
		"inserted":    summary.Inserted,
		"updated":     summary.Updated,
		"purged":      summary.Purged,
		"totalEvents": summary.TotalEvents,
		"timestamp":   summary.Timestamp,
	})
}

// Refresh handles POST /api/refresh: clear everything, then re-ingest.
func (h *Handler) Refresh(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.DeleteAll(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	summary, err := h.runner.Run(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.invalidateCache(ctx)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Database refreshed successfully",
		"cleared":     true,
		"runId":       summary.RunID,
		"inserted":    summary.Inserted,
		"totalEvents": summary.TotalEvents,
		"timestamp":   summary.Timestamp,
	})
}

// ClearEvents handles DELETE /api/events?scope=stale|all.
func (h *Handler) ClearEvents(c *gin.Context) {
	if !h.authorized(c) {
		return
	}

	ctx := c.Request.Context()
	scope := c.DefaultQuery("scope", "stale")

	var (
		deleted int64
		err     error
	)
	switch scope {
	case "stale":
		deleted, err = h.store.DeleteOlderThan(ctx, h.cfg.Retention())
	case "all":
		deleted, err = h.store.DeleteAll(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "scope must be 'stale' or 'all'",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.invalidateCache(ctx)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"scope":   scope,
		"deleted": deleted,
	})
}

type subscribeRequest struct {
	Email      string   `json:"email"`
	Region     string   `json:"region"`
	Categories []string `json:"categories"`
}

// Subscribe handles POST /api/subscribe.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid json: " + err.Error()})
		return
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Valid email is required"})
		return
	}

	sub, err := h.store.Subscribe(c.Request.Context(), req.Email, req.Region, req.Categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Subscribed successfully",
		"subscriber": sub,
	})
}

// SubscriberCount handles GET /api/subscribe.
func (h *Handler) SubscriberCount(c *gin.Context) {
	count, err := h.store.CountSubscribers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// Unsubscribe handles DELETE /api/subscribe?token=...
func (h *Handler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsubscribe token is required"})
		return
	}

	email, err := h.store.Unsubscribe(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Subscription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": email + " has been unsubscribed",
	})
}

// Stats handles GET and POST /api/stats. POST also counts a page view.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Request.Method == http.MethodPost {
		if err := h.store.IncrementPageViews(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
	}

	views, err := h.store.PageViews(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	total, err := h.store.CountEvents(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	unique, err := h.store.CountUniqueEvents(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"pageViews":    views,
			"totalEvents":  total,
			"uniqueEvents": unique,
		},
	})
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// authorized verifies the bearer secret on mutating endpoints. An empty
// configured secret rejects everything.
func (h *Handler) authorized(c *gin.Context) bool {
	auth := c.GetHeader("Authorization")
	if h.cfg.ScrapeSecret == "" || auth != "Bearer "+h.cfg.ScrapeSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return false
	}
	return true
}

func (h *Handler) cacheGet(ctx context.Context, key string) []byte {
	if h.cache == nil {
		return nil
	}
	data, err := h.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (h *Handler) cacheSet(ctx context.Context, key string, body gin.H) {
	if h.cache == nil {
		return
	}
	data, err := json.Marshal(body)
	if err != nil {
		return
	}
	// Cache errors are not worth failing a request over.
	_ = h.cache.Set(ctx, key, data, eventsCacheTTL).Err()
}

func (h *Handler) invalidateCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	categories := append([]string{"all"}, event.Categories...)
	var keys []string
	for _, cat := range categories {
		for _, window := range []string{"", "today", "week"} {
			keys = append(keys, cacheKey(cat, window))
		}
	}
	_ = h.cache.Del(ctx, keys...).Err()
}

func cacheKey(category, window string) string {
	key := "events:" + category
	if window != "" {
		key += ":" + window
	}
	return key
}

// windowFilter translates the time query parameter into a start-date window
// anchored at now. Returns nil when no window is requested.
func windowFilter(window string, now time.Time) *filter.Filter {
	if window == "" {
		return nil
	}
	// Stored start dates parse as UTC midnight, so the window does too.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f := filter.New()
	f.DateFrom = &today
	to := today
	if window == "week" {
		to = today.AddDate(0, 0, 6)
	}
	f.DateTo = &to
	return f
}

// cors mirrors the listing site's access policy.
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// requestLog emits one structured line per request.
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Info("request", logger.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(started).String(),
		})
	}
}
