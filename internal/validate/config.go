package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Env validates required env configuration. Fail-fast on bad config.
func Env() error {
	if os.Getenv("DATABASE_URL") == "" {
		return errors.New("DATABASE_URL not set")
	}
	if os.Getenv("UPSTASH_REDIS_URL") == "" &&
		(os.Getenv("REDIS_ADDR") == "" || os.Getenv("REDIS_USER") == "" || os.Getenv("REDIS_PASSWORD") == "") {
		return errors.New("missing Redis config: set UPSTASH_REDIS_URL or REDIS_ADDR/REDIS_USER/REDIS_PASSWORD")
	}
	if err := envMinInt("PASSWORD_MIN_LEN", 8); err != nil {
		return fmt.Errorf("PASSWORD_MIN_LEN: %w", err)
	}
	if err := envMinInt("MAX_BODY_SIZE", 1024); err != nil {
		return fmt.Errorf("MAX_BODY_SIZE: %w", err)
	}
	if _, err := envDuration("SLOW_REQUEST", "500ms"); err != nil {
		return fmt.Errorf("SLOW_REQUEST: %w", err)
	}
	if _, err := envDuration("PREFS_RETENTION", "9600h"); err != nil {
		return fmt.Errorf("PREFS_RETENTION: %w", err)
	}
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			return fmt.Errorf("ALLOWED_ORIGINS: %q is not an origin", o)
		}
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(appEnv string) []string {
	var warns []string

	if !strings.EqualFold(appEnv, "production") {
		return warns
	}
	if os.Getenv("CSRF_COOKIE_SECURE") != "1" {
		warns = append(warns, "CSRF_COOKIE_SECURE is not 1; csrftoken will be sent over plain HTTP")
	}
	if os.Getenv("ALLOWED_ORIGINS") == "" {
		warns = append(warns, "ALLOWED_ORIGINS not set; only localhost origins are accepted")
	}
	if u := os.Getenv("UPSTASH_REDIS_URL"); u != "" && strings.HasPrefix(u, "redis://") {
		warns = append(warns, "UPSTASH_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
	}
	if u := os.Getenv("DATABASE_URL"); strings.Contains(u, "sslmode=disable") {
		warns = append(warns, "DATABASE_URL disables TLS (sslmode=disable)")
	}
	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

// SlowRequest is the threshold above which requests are logged.
func SlowRequest() time.Duration {
	d, err := envDuration("SLOW_REQUEST", "500ms")
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// PrefsRetention is how long an untouched preference row is kept.
func PrefsRetention() time.Duration {
	d, err := envDuration("PREFS_RETENTION", "9600h")
	if err != nil {
		return 400 * 24 * time.Hour
	}
	return d
}

// --- helpers ---

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func envMinInt(key string, min int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil // unset -> code defaults apply elsewhere
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return fmt.Errorf("must be >= %d", min)
	}
	return nil
}
