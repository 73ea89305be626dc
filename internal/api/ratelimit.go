package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL     = 5 * time.Minute
	limiterSweepPeriod = time.Minute
)

type clientLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// limiterRegistry hands out one token bucket per client key and forgets
// clients idle for longer than limiterIdleTTL.
type limiterRegistry struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	limiters  map[string]*clientLimiter
	lastSwept time.Time
}

func newLimiterRegistry(perMinute int) *limiterRegistry {
	if perMinute <= 0 {
		return nil
	}
	return &limiterRegistry{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(perMinute/2, 1),
		limiters: make(map[string]*clientLimiter),
	}
}

func (lr *limiterRegistry) allow(key string) bool {
	return lr.allowAt(key, time.Now())
}

func (lr *limiterRegistry) allowAt(key string, now time.Time) bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if now.Sub(lr.lastSwept) >= limiterSweepPeriod {
		lr.sweepLocked(now)
	}
	l, ok := lr.limiters[key]
	if !ok {
		l = &clientLimiter{limiter: rate.NewLimiter(lr.limit, lr.burst)}
		lr.limiters[key] = l
	}
	l.expires = now.Add(limiterIdleTTL)
	return l.limiter.AllowN(now, 1)
}

// sweepLocked drops idle limiters. At most once per limiterSweepPeriod.
func (lr *limiterRegistry) sweepLocked(now time.Time) {
	for k, l := range lr.limiters {
		if now.After(l.expires) {
			delete(lr.limiters, k)
		}
	}
	lr.lastSwept = now
}
