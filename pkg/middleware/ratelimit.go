package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitPrefix = "ratelimit:reserve"

// tokenBucket refills one token per interval up to capacity. It returns
// {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimiter is a Redis token bucket keyed by the authenticated user, or by
// client IP for anonymous requests.
type RateLimiter struct {
	client   redis.Scripter
	capacity int
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// NewRateLimiter returns a limiter that lets every request through when
// client is nil or capacity is not positive.
func NewRateLimiter(client redis.Scripter, cfg utils.RateLimitConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client:   client,
		capacity: cfg.Capacity,
		interval: cfg.RefillInterval,
		log:      log.With(zap.String("middleware", "ratelimit")),
		now:      time.Now,
	}
}

func (l *RateLimiter) enabled() bool {
	return l != nil && l.client != nil && l.capacity > 0
}

func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	if !l.enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)

		allowed, remaining, retryAfter, err := l.take(r.Context(), key)
		if err != nil {
			l.log.Warn("Rate limit check failed, letting request through",
				zap.Error(err),
				zap.String("key", key),
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			l.log.Info("Request rate limited",
				zap.String("key", key),
				zap.Int("retry_after", secs),
			)
			utils.ResponseTooManyRequests(w, "Too many reservation attempts, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) take(ctx context.Context, key string) (bool, int64, time.Duration, error) {
	ttl := int64((l.interval * time.Duration(l.capacity)).Seconds()) + 1

	vals, err := tokenBucket.Run(ctx, l.client, []string{key},
		l.now().UnixMilli(),
		l.capacity,
		l.interval.Milliseconds(),
		ttl,
	).Int64Slice()
	if err != nil {
		return false, 0, 0, err
	}
	if len(vals) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected token bucket result: %v", vals)
	}

	return vals[0] == 1, vals[1], time.Duration(vals[2]) * time.Millisecond, nil
}

func (l *RateLimiter) key(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return rateLimitPrefix + ":user:" + userID.String()
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return rateLimitPrefix + ":ip:" + ip
}
