package utils

import (
	"math"
	"sync"
	"time"
)

// RateLimitRecord is the per-key state of a fixed window
type RateLimitRecord struct {
	Count     int
	ResetTime time.Time
}

// RateLimitStore holds rate limit records by key
type RateLimitStore interface {
	Get(key string) (RateLimitRecord, bool)
	Set(key string, rec RateLimitRecord)
	DeleteExpired(now time.Time) int
}

// MemoryRateLimitStore keeps records in process memory. State is lost on restart.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	records map[string]RateLimitRecord
}

// NewMemoryRateLimitStore creates an empty in-memory store
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{records: make(map[string]RateLimitRecord)}
}

func (s *MemoryRateLimitStore) Get(key string) (RateLimitRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	return rec, ok
}

func (s *MemoryRateLimitStore) Set(key string, rec RateLimitRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
}

func (s *MemoryRateLimitStore) DeleteExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, rec := range s.records {
		if now.After(rec.ResetTime) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

// RateLimitResult is the outcome of a single Check
type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds the remaining wait up to whole seconds
func (r RateLimitResult) RetryAfterSeconds() int {
	if r.Allowed {
		return 0
	}
	secs := int(math.Ceil(r.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// RateLimiter counts attempts per key in fixed windows
type RateLimiter struct {
	mu     sync.Mutex
	store  RateLimitStore
	max    int
	window time.Duration
	Now    func() time.Time
}

// NewRateLimiter creates a limiter allowing max attempts per window for each key
func NewRateLimiter(store RateLimitStore, max int, window time.Duration) *RateLimiter {
	if store == nil {
		store = NewMemoryRateLimitStore()
	}
	return &RateLimiter{
		store:  store,
		max:    max,
		window: window,
		Now:    time.Now,
	}
}

// Check records an attempt for key and reports whether it is allowed.
// A denied attempt is not counted.
func (rl *RateLimiter) Check(key string) RateLimitResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.Now()
	rec, exists := rl.store.Get(key)
	if !exists || now.After(rec.ResetTime) {
		rl.store.Set(key, RateLimitRecord{Count: 1, ResetTime: now.Add(rl.window)})
		return RateLimitResult{Allowed: true}
	}

	if rec.Count >= rl.max {
		return RateLimitResult{Allowed: false, RetryAfter: rec.ResetTime.Sub(now)}
	}

	rec.Count++
	rl.store.Set(key, rec)
	return RateLimitResult{Allowed: true}
}

// Cleanup drops expired records and returns how many were removed
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.store.DeleteExpired(rl.Now())
}
