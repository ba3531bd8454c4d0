// Package middleware holds the HTTP middleware of the API server.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/boutique/pkg/logger"
	"github.com/shashiranjanraj/boutique/pkg/metrics"
	"github.com/shashiranjanraj/boutique/pkg/response"
)

// Counter counts hits per key in fixed windows. cache.WindowCounter is the
// Redis implementation.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (b *bucket) allow(max int, window time.Duration, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}

	b.count++
	return b.count <= max
}

// memoryBuckets is the in-process fallback used when Redis is absent or
// failing.
type memoryBuckets struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

func (m *memoryBuckets) allow(key string, max int, window time.Duration) bool {
	now := time.Now()

	m.mu.Lock()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{resetAt: now.Add(window)}
		m.buckets[key] = b
	}
	m.mu.Unlock()

	return b.allow(max, window, now)
}

// evict drops buckets whose window has passed.
func (m *memoryBuckets) evict(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, b := range m.buckets {
		b.mu.Lock()
		expired := now.After(b.resetAt)
		b.mu.Unlock()
		if expired {
			delete(m.buckets, key)
		}
	}
}

// Limiter allows max requests per client per window.
type Limiter struct {
	max     int
	window  time.Duration
	counter Counter
	memory  *memoryBuckets
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter uses counter when non-nil and in-memory buckets otherwise. A
// counter error falls back to memory for that request.
func NewLimiter(max int, window time.Duration, counter Counter) *Limiter {
	l := &Limiter{
		max:     max,
		window:  window,
		counter: counter,
		memory:  &memoryBuckets{buckets: map[string]*bucket{}},
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			l.memory.evict(now)
		case <-l.stop:
			return
		}
	}
}

// Close stops the eviction goroutine.
func (l *Limiter) Close() { l.once.Do(func() { close(l.stop) }) }

func (l *Limiter) allow(r *http.Request, key string) (bool, string) {
	if l.counter != nil {
		n, err := l.counter.Hit(r.Context(), key, l.window)
		if err == nil {
			return n <= int64(l.max), "redis"
		}
		logger.WithCtx(r.Context()).Warn("rate limit: redis unavailable, using memory", "error", err)
	}
	return l.memory.allow(key, l.max, l.window), "memory"
}

// Middleware answers 429 once a client exceeds the limit.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ok, backend := l.allow(r, clientKey(r))
		if !ok {
			metrics.RateLimited.WithLabelValues(backend).Inc()
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey is the first X-Forwarded-For hop or the remote host.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
