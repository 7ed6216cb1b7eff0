// Package workers provides a bounded worker pool used for per-candidate
// detail-page fetches, with a simple rate limit so a burst of detail
// requests does not hammer a source site.
package workers

import (
	"sync"
	"time"
)

// Pool runs submitted jobs on at most maxWorkers goroutines, spacing
// request starts by the configured rate limit.
type Pool struct {
	semaphore   chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	rateLimit   time.Duration
	lastStarted time.Time
}

// NewPool creates a Pool with the given concurrency and minimum interval
// between job starts in milliseconds. A rateLimitMs of 0 disables spacing.
func NewPool(maxWorkers, rateLimitMs int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		semaphore: make(chan struct{}, maxWorkers),
		rateLimit: time.Duration(rateLimitMs) * time.Millisecond,
	}
}

// Submit enqueues a job for execution in the pool.
func (p *Pool) Submit(job func()) {
	p.wg.Add(1)
	p.semaphore <- struct{}{}

	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()

		p.pace()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) pace() {
	if p.rateLimit <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if elapsed := time.Since(p.lastStarted); elapsed < p.rateLimit {
		time.Sleep(p.rateLimit - elapsed)
	}
	p.lastStarted = time.Now()
}

// SeenSet is a concurrency-safe set for deduplicating URLs within a source.
type SeenSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Add returns true if the value was newly added, false if already present.
func (s *SeenSet) Add(v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Len returns the number of unique values tracked.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
