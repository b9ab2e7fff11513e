package sharepoint

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the steady request rate per client (requests/sec).
	ProactiveRate = 10

	// ProactiveBurst lets a lookup batch start its searches together.
	ProactiveBurst = 10

	// DefaultRetryAfter is used when a throttling response has no Retry-After.
	DefaultRetryAfter = 5 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests to one SharePoint site.
// It combines a token bucket with the back-off SharePoint requests
// through Retry-After.
type RateLimiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter
	retryAfter time.Time
}

// NewRateLimiter creates a rate limiter with the default proactive rate.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	retryAfter := r.retryAfter
	r.mu.Unlock()

	if time.Now().Before(retryAfter) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAfter)):
		}
	}
	return nil
}

// CheckThrottle inspects a response and returns a RateLimitError when
// SharePoint throttled the request. Later Wait calls honour the back-off.
func (r *RateLimiter) CheckThrottle(resp *http.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return nil
	}

	retryAt := time.Now().Add(parseRetryAfter(resp.Header.Get(HeaderRetryAfter)))

	r.mu.Lock()
	if retryAt.After(r.retryAfter) {
		r.retryAfter = retryAt
	}
	r.mu.Unlock()

	return &RateLimitError{StatusCode: resp.StatusCode, RetryAt: retryAt}
}

// RetryAfter returns the time before which requests are held back.
func (r *RateLimiter) RetryAfter() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAfter
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return DefaultRetryAfter
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}
	return DefaultRetryAfter
}
