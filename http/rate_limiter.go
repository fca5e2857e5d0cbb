package http

import (
	"sync"
	"time"
)

// Scope groups routes that draw from the same per-client budget.
type Scope string

const (
	ScopeAPI    Scope = "api"
	ScopeAdvice Scope = "advice"
)

// Limit allows Burst requests at once, refilling at Burst per Window.
type Limit struct {
	Burst  int
	Window time.Duration
}

// tokensFor is the number of tokens that refill over d.
func (l Limit) tokensFor(d time.Duration) float64 {
	return d.Seconds() * float64(l.Burst) / l.Window.Seconds()
}

// untilTokens is how long it takes to refill n tokens.
func (l Limit) untilTokens(n float64) time.Duration {
	return time.Duration(n * l.Window.Seconds() / float64(l.Burst) * float64(time.Second))
}

type bucketKey struct {
	scope  Scope
	client string
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// RateLimiter keeps a token bucket per scope and client. Scopes without a
// configured limit are not limited. Idle buckets are swept in the
// background until Stop is called.
type RateLimiter struct {
	limits map[Scope]Limit
	now    func() time.Time

	mu      sync.Mutex
	buckets map[bucketKey]*bucket

	sweepEvery time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewRateLimiter(limits map[Scope]Limit) *RateLimiter {
	rl := &RateLimiter{
		limits:     make(map[Scope]Limit, len(limits)),
		now:        time.Now,
		buckets:    make(map[bucketKey]*bucket),
		sweepEvery: 30 * time.Minute,
		stop:       make(chan struct{}),
	}
	for scope, l := range limits {
		if l.Burst > 0 && l.Window > 0 {
			rl.limits[scope] = l
		}
	}
	go rl.sweepLoop()
	return rl
}

// Limit returns the limit configured for scope.
func (r *RateLimiter) Limit(scope Scope) (Limit, bool) {
	l, ok := r.limits[scope]
	return l, ok
}

// Allow takes one token from the client's bucket in scope. When the bucket
// is empty it reports how long until the next token is available.
func (r *RateLimiter) Allow(scope Scope, client string) (bool, time.Duration) {
	l, ok := r.limits[scope]
	if !ok {
		return true, 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	key := bucketKey{scope: scope, client: client}
	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.Burst), seen: now}
		r.buckets[key] = b
	}
	if elapsed := now.Sub(b.seen); elapsed > 0 {
		b.tokens = min(float64(l.Burst), b.tokens+l.tokensFor(elapsed))
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	return false, l.untilTokens(1 - b.tokens)
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(r.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

// sweep drops buckets that have had time to refill completely; a new
// bucket starts full, so forgetting them changes nothing.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, b := range r.buckets {
		if now.Sub(b.seen) >= r.limits[key.scope].Window {
			delete(r.buckets, key)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
