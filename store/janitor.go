package store

import (
	"context"
	"time"

	"github.com/jonwraymond/siteicon/observe"
)

// JanitorConfig configures the background sweep.
type JanitorConfig struct {
	// Policy supplies the hard TTLs for pass 1.
	Policy TTLPolicy

	// HighWatermark is the aggregate size that triggers eviction.
	// Default: 8 MiB.
	HighWatermark int64

	// LowWatermark is the size eviction reduces usage to. The gap between
	// the two watermarks is the hysteresis that avoids thrashing.
	// Default: 3/4 of HighWatermark.
	LowWatermark int64

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Janitor sweeps the durable store: TTL purge first, then oldest-first
// eviction when the footprint exceeds the high watermark. Safe to run
// concurrently with resolution traffic; it is an optimization, never a
// correctness requirement.
type Janitor struct {
	store  *Store
	index  *Index
	config JanitorConfig
	logger observe.Logger
}

// SweepStats reports what one sweep did.
type SweepStats struct {
	Expired     int   `json:"expired"`
	Evicted     int   `json:"evicted"`
	BytesBefore int64 `json:"bytes_before"`
	BytesAfter  int64 `json:"bytes_after"`
}

// NewJanitor creates a janitor over a store and its memory index. The index
// may be nil when no mirror is in use.
func NewJanitor(s *Store, ix *Index, config JanitorConfig, logger observe.Logger) *Janitor {
	if config.HighWatermark <= 0 {
		config.HighWatermark = 8 << 20
	}
	if config.LowWatermark <= 0 || config.LowWatermark >= config.HighWatermark {
		config.LowWatermark = config.HighWatermark / 4 * 3
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Janitor{store: s, index: ix, config: config, logger: logger}
}

// Sweep runs both passes. Idempotent.
func (j *Janitor) Sweep(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	before, err := j.store.BytesInUse(ctx)
	if err != nil {
		return stats, err
	}
	stats.BytesBefore = before

	entries, err := j.store.Entries(ctx)
	if err != nil {
		return stats, err
	}

	// Pass 1: purge entries past the hard TTL for their kind.
	now := j.config.Now()
	var expired []string
	kept := entries[:0]
	for _, e := range entries {
		if now.Sub(e.CreatedAt) >= j.config.Policy.HardTTL(e.Kind) {
			expired = append(expired, e.Domain)
		} else {
			kept = append(kept, e)
		}
	}
	if len(expired) > 0 {
		if err := j.remove(ctx, expired); err != nil {
			return stats, err
		}
		stats.Expired = len(expired)
	}

	// Pass 2: evict oldest-first, irrespective of kind, until usage is
	// back under the low watermark.
	usage, err := j.store.BytesInUse(ctx)
	if err != nil {
		return stats, err
	}
	if usage > j.config.HighWatermark {
		for _, e := range kept { // Entries() sorts oldest first
			if usage <= j.config.LowWatermark {
				break
			}
			if err := j.remove(ctx, []string{e.Domain}); err != nil {
				return stats, err
			}
			stats.Evicted++
			if usage, err = j.store.BytesInUse(ctx); err != nil {
				return stats, err
			}
		}
	}

	after, err := j.store.BytesInUse(ctx)
	if err != nil {
		return stats, err
	}
	stats.BytesAfter = after

	j.logger.Debug(ctx, "cache sweep complete",
		observe.Field{Key: "expired", Value: stats.Expired},
		observe.Field{Key: "evicted", Value: stats.Evicted},
		observe.Field{Key: "bytes_before", Value: stats.BytesBefore},
		observe.Field{Key: "bytes_after", Value: stats.BytesAfter},
	)
	return stats, nil
}

// Run sweeps immediately and then on every tick until the context is done.
func (j *Janitor) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := j.Sweep(ctx); err != nil {
			j.logger.Warn(ctx, "cache sweep failed", observe.Field{Key: "error", Value: err.Error()})
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (j *Janitor) remove(ctx context.Context, domains []string) error {
	if err := j.store.Delete(ctx, domains...); err != nil {
		return err
	}
	if j.index != nil {
		j.index.Delete(domains...)
	}
	return nil
}
