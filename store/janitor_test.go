package store

import (
	"context"
	"testing"
	"time"

	"github.com/jonwraymond/siteicon/icon"
)

func imageEntry(domain string, createdAt time.Time, size int) icon.Entry {
	return icon.Entry{
		Kind:      icon.KindImage,
		Domain:    domain,
		Image:     make([]byte, size),
		CreatedAt: createdAt,
		SizeBytes: int64(size),
	}
}

func TestJanitor_PurgesExpired(t *testing.T) {
	s := New(NewMemoryKV())
	ix := NewIndex()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultTTLPolicy()

	old := imageEntry("old.com", now.Add(-policy.ImageTTL-time.Hour), 10)
	young := imageEntry("young.com", now.Add(-time.Hour), 10)
	for _, e := range []icon.Entry{old, young} {
		s.Put(ctx, e)
		ix.Put(e)
	}

	j := NewJanitor(s, ix, JanitorConfig{
		Policy: policy,
		Now:    func() time.Time { return now },
	}, nil)

	stats, err := j.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.Expired != 1 {
		t.Errorf("expired = %d, want 1", stats.Expired)
	}
	if _, ok, _ := s.Get(ctx, "old.com"); ok {
		t.Error("expired entry survived the sweep")
	}
	if _, ok := ix.Get("old.com"); ok {
		t.Error("expired entry survived in the memory index")
	}
	if _, ok, _ := s.Get(ctx, "young.com"); !ok {
		t.Error("young entry should survive")
	}
}

func TestJanitor_LetterUsesHardTTL(t *testing.T) {
	s := New(NewMemoryKV())
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultTTLPolicy()

	// Past the soft horizon but within the hard one: soft-stale letters
	// are still servable and must not be purged.
	softStale := letterEntry("soft.com", now.Add(-2*24*time.Hour))
	s.Put(ctx, softStale)

	j := NewJanitor(s, nil, JanitorConfig{
		Policy: policy,
		Now:    func() time.Time { return now },
	}, nil)

	stats, err := j.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.Expired != 0 {
		t.Errorf("expired = %d, want 0", stats.Expired)
	}
	if _, ok, _ := s.Get(ctx, "soft.com"); !ok {
		t.Error("soft-stale letter must survive the sweep")
	}
}

func TestJanitor_EvictsOldestFirstUnderPressure(t *testing.T) {
	s := New(NewMemoryKV())
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Three bulky fresh entries; watermarks sized so the sweep must evict
	// until only the newest remains.
	for i, domain := range []string{"oldest.com", "middle.com", "newest.com"} {
		s.Put(ctx, imageEntry(domain, now.Add(time.Duration(i)*time.Hour-72*time.Hour), 2000))
	}

	usage, _ := s.BytesInUse(ctx)
	j := NewJanitor(s, nil, JanitorConfig{
		Policy:        DefaultTTLPolicy(),
		HighWatermark: usage - 1,
		LowWatermark:  usage / 2,
		Now:           func() time.Time { return now },
	}, nil)

	stats, err := j.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.Evicted == 0 {
		t.Fatal("expected evictions above the high watermark")
	}
	if stats.BytesAfter > usage/2 {
		t.Errorf("bytes after = %d, want <= low watermark %d", stats.BytesAfter, usage/2)
	}

	// Eviction is oldest first: the newest entry must be the survivor.
	if _, ok, _ := s.Get(ctx, "newest.com"); !ok {
		t.Error("newest entry should survive eviction")
	}
	if _, ok, _ := s.Get(ctx, "oldest.com"); ok {
		t.Error("oldest entry should be evicted first")
	}
}

func TestJanitor_NoEvictionBelowHighWatermark(t *testing.T) {
	s := New(NewMemoryKV())
	ctx := context.Background()
	now := time.Now().UTC()

	s.Put(ctx, imageEntry("a.com", now, 100))

	j := NewJanitor(s, nil, JanitorConfig{
		Policy:        DefaultTTLPolicy(),
		HighWatermark: 1 << 20,
		Now:           func() time.Time { return now },
	}, nil)

	stats, err := j.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if stats.Expired != 0 || stats.Evicted != 0 {
		t.Errorf("stats = %+v, want a no-op sweep", stats)
	}
}

func TestJanitor_DefaultWatermarks(t *testing.T) {
	j := NewJanitor(New(NewMemoryKV()), nil, JanitorConfig{}, nil)
	if j.config.HighWatermark != 8<<20 {
		t.Errorf("high watermark = %d, want %d", j.config.HighWatermark, 8<<20)
	}
	if j.config.LowWatermark != (8<<20)/4*3 {
		t.Errorf("low watermark = %d, want 3/4 of high", j.config.LowWatermark)
	}
}
