package http

import (
	"math"
	"sync"
	"time"
)

const (
	idleBucketTTL   = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Each client may burst up to capacity
// requests and regains capacity tokens per refill period, continuously.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	perToken time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func NewRateLimiter(capacity int, refill time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: float64(capacity),
		perToken: refill / time.Duration(capacity),
		clients:  make(map[string]*clientBucket),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastSeen) > idleBucketTTL {
			delete(r.clients, client)
		}
	}
}

// Stop ends the background cleanup. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow takes a token for client. When none is left it reports how long until one is.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, ok := r.clients[client]
	if !ok {
		bucket = &clientBucket{tokens: r.capacity, lastSeen: now}
		r.clients[client] = bucket
	}

	if r.perToken > 0 {
		earned := float64(now.Sub(bucket.lastSeen)) / float64(r.perToken)
		bucket.tokens = math.Min(r.capacity, bucket.tokens+earned)
	}
	bucket.lastSeen = now

	if bucket.tokens < 1 {
		wait := time.Duration((1 - bucket.tokens) * float64(r.perToken))
		return false, wait
	}
	bucket.tokens--
	return true, 0
}
