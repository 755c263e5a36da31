package middlewares

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// --------- Key helpers ---------

type KeyFunc func(r *http.Request) string

// PerIPKey keys by client IP.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

// PerVisitorKey keys by the visitor cookie the client sent back, falling back
// to the IP. An id minted on this request would give a cookieless client a
// fresh bucket every time, so it is ignored.
func PerVisitorKey(prefix string) KeyFunc {
	byIP := PerIPKey(prefix)
	return func(r *http.Request) string {
		if v := GetVisitorID(r); v != "" && !VisitorMinted(r) {
			return prefix + ":v:" + v
		}
		return byIP(r)
	}
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may have a list: client, proxy1, proxy2...
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// Decision is one limiter verdict.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Policy() string
}

// RateLimit enforces l per key. Redis errors fail open.
func RateLimit(l Limiter, keyFn KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			d, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Printf("[RateLimit] %s redis error: %v (allowing request)\n", l.Policy(), err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Policy", l.Policy())
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				sec := int64((d.RetryAfter + time.Second - 1) / time.Second)
				if sec < 1 {
					sec = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(sec, 10))
				log.Printf("[RateLimit] %s blocked key=%s retry=%ds rid=%s\n", l.Policy(), key, sec, GetRequestID(r))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// --------- Token Bucket (Redis + Lua) ---------

const tokenBucketLua = `
-- KEYS[1] = bucket key (hash with fields: tokens, ts)
-- ARGV[1] = ratePerS (float)
-- ARGV[2] = capacity (int)
-- Returns: {allowed (1/0), remaining_tokens (int), retry_after_ms (int)}
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  tokens = math.min(cap, tokens + (delta_ms / 1000.0) * rate)
end

local allowed = 0
local retry_after_ms = 0

if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HMSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, math.floor(tokens), retry_after_ms}
`

type RedisTokenBucket struct {
	rdb      *redis.Client
	ratePerS float64 // tokens per second
	burst    int     // bucket capacity
	script   *redis.Script
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:      rdb,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(tokenBucketLua),
	}
}

func (tb *RedisTokenBucket) Policy() string { return "token-bucket" }

func (tb *RedisTokenBucket) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := tb.script.Run(ctx, tb.rdb, []string{key},
		strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
		strconv.Itoa(tb.burst),
	).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:    res[0] == 1,
		Limit:      tb.burst,
		Remaining:  int(res[1]),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

// --------- Sliding Window (Redis ZSET) ---------

type RedisSlidingWindow struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb *redis.Client, limit int, window time.Duration) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, limit: limit, window: window}
}

func (sw *RedisSlidingWindow) Policy() string { return "sliding-window" }

func (sw *RedisSlidingWindow) Allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now().UnixMilli()
	windowMs := sw.window.Milliseconds()

	pipe := sw.rdb.TxPipeline()
	member := strconv.FormatInt(now, 10) + ":" + randomSuffix()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: member})
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now-windowMs, 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.PExpire(ctx, key, sw.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}
	count := int(countCmd.Val())

	d := Decision{
		Allowed:   count <= sw.limit,
		Limit:     sw.limit,
		Remaining: max(0, sw.limit-count),
	}
	if d.Allowed {
		return d, nil
	}

	d.RetryAfter = time.Second
	oldest, err := sw.rdb.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err == nil && len(oldest) == 1 {
		ms := int64(oldest[0].Score) + windowMs - now
		if ms > 1000 {
			d.RetryAfter = time.Duration(ms) * time.Millisecond
		}
	}
	return d, nil
}

func randomSuffix() string {
	return strconv.FormatInt(time.Now().UnixNano()%1_000_000, 36)
}
