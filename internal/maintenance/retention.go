package maintenance

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"
)

// Pruner deletes preference rows not touched since a cutoff.
type Pruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StartPreferencesRetention runs a daily job at localTime ("HH:MM") in tzName
// that drops preferences idle for longer than maxAge. Visitor cookies live a
// year, so rows older than that can no longer be reached.
// Call once at startup: maintenance.StartPreferencesRetention(ctx, store, 400*24*time.Hour, "03:00", "UTC")
func StartPreferencesRetention(ctx context.Context, p Pruner, maxAge time.Duration, localTime, tzName string) {
	if maxAge <= 0 {
		maxAge = 400 * 24 * time.Hour
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.Local
	}
	h, m := parseClock(localTime)

	go func() {
		for {
			next := nextRun(time.Now().In(loc), h, m)
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				RunOnce(ctx, p, maxAge, time.Now())
			}
		}
	}()
}

// RunOnce prunes rows older than now-maxAge and logs the outcome.
func RunOnce(ctx context.Context, p Pruner, maxAge time.Duration, now time.Time) int64 {
	n, err := p.PruneOlderThan(ctx, now.Add(-maxAge))
	if err != nil {
		log.Printf("[retention] prune ui_preferences failed: %v", err)
		return 0
	}
	log.Printf("[retention] pruned %d idle ui_preferences rows", n)
	return n
}

func parseClock(s string) (int, int) {
	h, m := 3, 0
	hs, ms, ok := strings.Cut(s, ":")
	if !ok {
		return h, m
	}
	if v, err := strconv.Atoi(hs); err == nil && v >= 0 && v < 24 {
		h = v
	}
	if v, err := strconv.Atoi(ms); err == nil && v >= 0 && v < 60 {
		m = v
	}
	return h, m
}

func nextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
