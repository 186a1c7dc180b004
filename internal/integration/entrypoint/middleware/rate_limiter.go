// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
)

const (
	// DefaultSessionLimit is the number of sessions a client may start per window.
	DefaultSessionLimit  = 10
	DefaultSessionWindow = 1 * time.Minute

	// DefaultDigestSendLimit is the number of manual digests a plan may send per window.
	DefaultDigestSendLimit  = 3
	DefaultDigestSendWindow = 1 * time.Hour

	rateLimitKeyPrefix = "mealsync:ratelimit:"
)

// windowCounter counts hits of a key within a fixed window.
type windowCounter interface {
	hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter limits how often a client may hit a route using a fixed
// window. Clients are keyed by IP unless WithKey says otherwise. With Redis
// the window is shared by every API instance.
type RateLimiter struct {
	counter        windowCounter
	maxAttempts    int
	windowDuration time.Duration
	key            func(c *gin.Context) string
	message        string
	code           string
	bypassInTest   bool
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRedis counts hits in Redis instead of process memory.
func WithRedis(client *redis.Client) RateLimiterOption {
	return func(rl *RateLimiter) {
		if client != nil {
			rl.counter = &redisCounter{client: client}
		}
	}
}

// WithKey sets how requests are grouped. An empty key skips the limit.
func WithKey(key func(c *gin.Context) string) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.key = key
	}
}

// WithRejection sets the error message and code of a 429 response.
func WithRejection(message, code string) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.message = message
		rl.code = code
	}
}

// EnforceInTest keeps the limit active when ENV is "test".
func EnforceInTest() RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.bypassInTest = false
	}
}

// PlanKey groups requests by the plan of the session under the given scope.
// It must run after RequireSession.
func PlanKey(scope string) func(c *gin.Context) string {
	return func(c *gin.Context) string {
		planID, ok := GetPlanIDFromContext(c)
		if !ok {
			return ""
		}
		return scope + ":" + planID.String()
	}
}

// NewRateLimiter creates a rate limiter allowing maxAttempts per window.
func NewRateLimiter(maxAttempts int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSessionLimit
	}
	if window <= 0 {
		window = DefaultSessionWindow
	}

	rl := &RateLimiter{
		counter:        newMemoryCounter(),
		maxAttempts:    maxAttempts,
		windowDuration: window,
		key:            clientIPKey,
		message:        "Too many sessions started. Please try again later.",
		code:           string(domainerror.ErrCodeTooManySessions),
		bypassInTest:   true,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.bypassInTest && os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := rl.key(c)
		if key == "" {
			c.Next()
			return
		}

		if !rl.allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: rl.message,
				Code:  rl.code,
			})
			return
		}

		c.Next()
	}
}

func clientIPKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}

// allow records a hit for key and reports whether it is within the limit.
// A counter failure lets the request through.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	hits, err := rl.counter.hit(ctx, key, rl.windowDuration)
	if err != nil {
		slog.Warn("Rate limiter unavailable", "error", err, "key", key)
		return true
	}
	return hits <= int64(rl.maxAttempts)
}

type memoryEntry struct {
	hits      int64
	resetTime time.Time
}

type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (m *memoryCounter) hit(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if now.After(e.resetTime) {
			delete(m.entries, k)
		}
	}

	entry, ok := m.entries[key]
	if !ok {
		entry = &memoryEntry{resetTime: now.Add(window)}
		m.entries[key] = entry
	}
	entry.hits++
	return entry.hits, nil
}

type redisCounter struct {
	client *redis.Client
}

func (r *redisCounter) hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := rateLimitKeyPrefix + key

	hits, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", redisKey, err)
	}
	if hits == 1 {
		if err := r.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, fmt.Errorf("expiring %s: %w", redisKey, err)
		}
	}
	return hits, nil
}
