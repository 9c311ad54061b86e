package models

import (
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

var (
	limiterMu sync.Mutex
	limiters  = ttlworker.NewCache[string, *rate.Limiter](limiterIdleTTL)
)

// UploadLimiter returns the token bucket for a client, perMinute uploads with a burst of the same size.
func UploadLimiter(clientIP string, perMinute int) *rate.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	if l := limiters.Get(clientIP); l != nil {
		return l
	}
	l := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	limiters.Set(clientIP, l)
	return l
}

// ResetLimiters forgets every client bucket.
func ResetLimiters() {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	limiters.Destroy()
	limiters = ttlworker.NewCache[string, *rate.Limiter](limiterIdleTTL)
}
