package contributions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/showfolio/contrib-service/pkg/logger"
	"github.com/showfolio/contrib-service/pkg/metrics"
)

// Fallback reasons recorded in logs and metrics. The public contract
// never exposes them; callers only see IsMockData.
const (
	reasonNoToken      = "no_token"
	reasonTransport    = "transport"
	reasonUnauthorized = "unauthorized"
	reasonBadStatus    = "bad_status"
	reasonUserNotFound = "user_not_found"
	reasonBadShape     = "bad_shape"
	reasonInternal     = "internal"
)

type cacheEntry struct {
	stats     ContributionStats
	expiresAt time.Time
}

// fetchResult tags a stats value with its provenance so operators can
// distinguish failure causes even though every path returns usable data.
type fetchResult struct {
	stats  ContributionStats
	source string // "github" or "mock"
	reason string // empty for real data
}

// Service is the single entry point for contribution statistics. It
// hides the real-vs-mock decision: every failure in the real-data path
// converges on the mock generator, and results are memoized per
// (username, year) for the configured TTL.
type Service struct {
	client *Client // nil when no token is configured
	gen    *Generator
	ttl    time.Duration
	log    *slog.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
	group singleflight.Group
}

// NewService wires the façade. client may be nil, which routes every
// query straight to the mock generator.
func NewService(client *Client, gen *Generator, ttl time.Duration, log *slog.Logger) *Service {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		client: client,
		gen:    gen,
		ttl:    ttl,
		log:    log,
		cache:  make(map[string]cacheEntry),
	}
}

// Get returns contribution statistics for username. A zero year selects
// the source's default trailing window. Concurrent callers for the same
// key share one in-flight fetch; completed results are cached.
func (s *Service) Get(ctx context.Context, username string, year int) (ContributionStats, error) {
	key := fmt.Sprintf("%s|%d", username, year)

	if stats, ok := s.lookup(key); ok {
		metrics.RecordCacheEvent("hit")
		return stats, nil
	}
	metrics.RecordCacheEvent("miss")

	v, err, shared := s.group.Do(key, func() (any, error) {
		// Another caller may have filled the cache while this one waited
		// for the flight slot.
		if stats, ok := s.lookup(key); ok {
			return stats, nil
		}

		start := time.Now()
		res := s.fetch(ctx, username, year)
		elapsed := time.Since(start)

		metrics.RecordFetch(res.source, res.reason)
		metrics.RecordFetchDuration(res.source, elapsed.Seconds())
		logger.LogFetch(s.log, username, res.source, res.reason, elapsed.Milliseconds())

		s.store(key, res.stats)
		return res.stats, nil
	})
	if err != nil {
		return ContributionStats{}, err
	}
	if shared {
		metrics.RecordCacheEvent("coalesced")
	}
	return v.(ContributionStats), nil
}

// fetch runs the real-data path and converts every failure category into
// a mock result. A panic anywhere in the real path also degrades to mock
// rather than escaping to the caller.
func (s *Service) fetch(ctx context.Context, username string, year int) (res fetchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("contribution fetch panicked", "username", username, "panic", r)
			res = s.mock(year, reasonInternal)
		}
	}()

	if s.client == nil || s.client.token == "" {
		return s.mock(year, reasonNoToken)
	}

	total, rawWeeks, err := s.client.FetchCalendar(ctx, username, year)
	if err != nil {
		return s.mock(year, classify(err))
	}

	weeks := Normalize(rawWeeks)
	longest, current := AnalyzeStreaks(weeks)

	stats := ContributionStats{
		TotalContributions: total,
		Weeks:              weeks,
		LongestStreak:      longest,
		CurrentStreak:      current,
		IsMockData:         false,
	}
	if year != 0 {
		y := year
		stats.Year = &y
	}
	return fetchResult{stats: stats, source: "github"}
}

func (s *Service) mock(year int, reason string) fetchResult {
	stats := s.gen.Generate(year)
	if year != 0 {
		y := year
		stats.Year = &y
	}
	return fetchResult{stats: stats, source: "mock", reason: reason}
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return reasonUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return reasonUserNotFound
	case errors.Is(err, ErrBadShape):
		return reasonBadShape
	case errors.Is(err, ErrUnexpectedStatus):
		return reasonBadStatus
	default:
		return reasonTransport
	}
}

func (s *Service) lookup(key string) (ContributionStats, bool) {
	s.mu.RLock()
	entry, found := s.cache[key]
	s.mu.RUnlock()
	if !found || time.Now().After(entry.expiresAt) {
		return ContributionStats{}, false
	}
	return entry.stats, true
}

func (s *Service) store(key string, stats ContributionStats) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, entry := range s.cache {
		if now.After(entry.expiresAt) {
			delete(s.cache, k)
		}
	}
	s.cache[key] = cacheEntry{stats: stats, expiresAt: now.Add(s.ttl)}
}

// Purge drops all cached statistics.
func (s *Service) Purge() int {
	s.mu.Lock()
	n := len(s.cache)
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
	metrics.RecordCacheEvent("purge")
	return n
}
