package resolve

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/siteicon/glyph"
	"github.com/jonwraymond/siteicon/icon"
	"github.com/jonwraymond/siteicon/observe"
	"github.com/jonwraymond/siteicon/resilience"
	"github.com/jonwraymond/siteicon/source"
	"github.com/jonwraymond/siteicon/store"
)

// Config configures a Resolver.
type Config struct {
	// Store is the durable icon cache. Required.
	Store *store.Store

	// Index is the in-memory mirror. Created when nil.
	Index *store.Index

	// Cascade resolves icons from remote providers. Required.
	Cascade *source.Cascade

	// Fetcher revalidates stored external icon URLs on durable-store
	// hits. When nil, stored URLs are trusted until their TTL expires.
	Fetcher source.Fetcher

	// Policy holds the per-kind TTLs. Zero value: DefaultTTLPolicy.
	Policy store.TTLPolicy

	// Janitor configures the storage-pressure sweep.
	Janitor store.JanitorConfig

	// Instrument records telemetry. Default: no-op.
	Instrument *observe.Instrument

	// MaxConcurrentUpgrades caps background upgrade goroutines.
	// Default: 4.
	MaxConcurrentUpgrades int

	// AliveTimeout bounds one external URL liveness probe.
	// Default: 1500ms.
	AliveTimeout time.Duration

	// UpgradeTimeout bounds one background upgrade run. Default: 30s.
	UpgradeTimeout time.Duration

	// Now is the clock, injectable for tests. Default: time.Now.
	Now func() time.Time
}

// Resolver resolves site icons through the tiered cache and the cascade.
//
// Contract:
//   - Concurrency: safe for concurrent use; same-domain resolutions are
//     coalesced into one cascade run.
//   - Context: Resolve honors cancellation for remote work; cache reads
//     and the glyph fallback complete regardless.
//   - Errors: Resolve fails only on an invalid domain or a closed
//     resolver. Provider failures degrade to the letter glyph instead.
type Resolver struct {
	store   *store.Store
	index   *store.Index
	cascade *source.Cascade
	fetcher source.Fetcher
	policy  store.TTLPolicy
	janitor *store.Janitor
	inst    *observe.Instrument

	group        singleflight.Group
	upgrades     *resilience.Bulkhead
	persistRetry *resilience.Retry
	upgrading    sync.Map
	wg           sync.WaitGroup
	closed       atomic.Bool

	aliveTimeout   time.Duration
	upgradeTimeout time.Duration
	now            func() time.Time
}

// New creates a Resolver.
func New(cfg Config) (*Resolver, error) {
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	if cfg.Cascade == nil {
		return nil, ErrNilCascade
	}
	if cfg.Index == nil {
		cfg.Index = store.NewIndex()
	}
	if cfg.Policy == (store.TTLPolicy{}) {
		cfg.Policy = store.DefaultTTLPolicy()
	}
	if cfg.Instrument == nil {
		cfg.Instrument = observe.NewNopInstrument()
	}
	if cfg.MaxConcurrentUpgrades <= 0 {
		cfg.MaxConcurrentUpgrades = 4
	}
	if cfg.AliveTimeout <= 0 {
		cfg.AliveTimeout = 1500 * time.Millisecond
	}
	if cfg.UpgradeTimeout <= 0 {
		cfg.UpgradeTimeout = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Janitor.Policy == (store.TTLPolicy{}) {
		cfg.Janitor.Policy = cfg.Policy
	}
	if cfg.Janitor.Now == nil {
		cfg.Janitor.Now = cfg.Now
	}

	return &Resolver{
		store:   cfg.Store,
		index:   cfg.Index,
		cascade: cfg.Cascade,
		fetcher: cfg.Fetcher,
		policy:  cfg.Policy,
		janitor: store.NewJanitor(cfg.Store, cfg.Index, cfg.Janitor, cfg.Instrument.Logger()),
		inst:    cfg.Instrument,
		upgrades: resilience.NewBulkhead(resilience.BulkheadConfig{
			MaxConcurrent: cfg.MaxConcurrentUpgrades,
		}),
		persistRetry: resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
		}),
		aliveTimeout:   cfg.AliveTimeout,
		upgradeTimeout: cfg.UpgradeTimeout,
		now:            cfg.Now,
	}, nil
}

// Resolve returns the icon for a site. The name is the site's display
// name, used for the letter glyph; it may be empty.
func (r *Resolver) Resolve(ctx context.Context, rawDomain, name string) (icon.Resolved, error) {
	if r.closed.Load() {
		return icon.Resolved{}, ErrClosed
	}
	domain, err := icon.NormalizeDomain(rawDomain)
	if err != nil {
		return icon.Resolved{}, err
	}

	var out icon.Resolved
	_, err = r.inst.Resolve(ctx, observe.Meta{Op: "resolve", Domain: domain},
		func(ctx context.Context) (string, error) {
			var outcome string
			out, outcome = r.resolve(ctx, domain, name)
			return outcome, nil
		})
	return out, err
}

// resolve walks the tiers: memory index, durable store, full resolution.
func (r *Resolver) resolve(ctx context.Context, domain, name string) (icon.Resolved, string) {
	now := r.now()

	if e, ok := r.index.Get(domain); ok {
		switch r.policy.Freshness(e, now) {
		case store.Fresh:
			return r.toResolved(e, name), observe.OutcomeMemoryHit
		case store.SoftStale:
			r.scheduleUpgrade(domain, name)
			return r.toResolved(e, name), observe.OutcomeSoftServe
		}
	}

	if e, ok, err := r.store.Get(ctx, domain); err == nil && ok {
		switch r.policy.Freshness(e, now) {
		case store.Fresh:
			if e.Kind != icon.KindExternalURL || r.alive(ctx, e.URL) {
				r.index.Put(e)
				return r.toResolved(e, name), observe.OutcomeStoreHit
			}
			// Stored URL went dark: fall through to a full resolution.
		case store.SoftStale:
			r.index.Put(e)
			r.scheduleUpgrade(domain, name)
			return r.toResolved(e, name), observe.OutcomeSoftServe
		}
	}

	return r.resolveFull(ctx, domain, name)
}

// flight is the shared result of one coalesced cascade run.
type flight struct {
	entry   icon.Entry
	outcome string
}

// resolveFull runs the cascade, coalescing concurrent same-domain calls,
// and persists the winner. Exhaustion degrades to a cached letter glyph.
func (r *Resolver) resolveFull(ctx context.Context, domain, name string) (icon.Resolved, string) {
	v, _, _ := r.group.Do(domain, func() (any, error) {
		cand, err := r.cascade.Resolve(ctx, domain)
		now := r.now()

		if err != nil {
			g := glyph.Derive(name, domain)
			e := withSize(icon.Entry{
				Kind:      icon.KindLetter,
				Domain:    domain,
				Color:     g.Color,
				CreatedAt: now,
			})
			// A canceled caller is not provider exhaustion: serve the
			// glyph but leave the cache cold so the next caller still
			// reaches the network.
			if ctx.Err() == nil {
				r.persist(ctx, e)
			}
			return flight{entry: e, outcome: observe.OutcomeFallback}, nil
		}

		e := withSize(entryFromCandidate(cand, domain, now))
		r.persist(ctx, e)
		return flight{entry: e, outcome: observe.OutcomeResolved}, nil
	})

	f := v.(flight)
	return r.toResolved(f.entry, name), f.outcome
}

// scheduleUpgrade kicks off one background cascade run for a soft-stale
// letter entry. At most one upgrade per domain is in flight, and the
// bulkhead bounds the total.
func (r *Resolver) scheduleUpgrade(domain, name string) {
	if r.closed.Load() {
		return
	}
	if _, loaded := r.upgrading.LoadOrStore(domain, struct{}{}); loaded {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.upgrading.Delete(domain)

		ctx, cancel := context.WithTimeout(context.Background(), r.upgradeTimeout)
		defer cancel()

		_ = r.upgrades.Execute(ctx, func(ctx context.Context) error {
			r.upgrade(ctx, domain, name)
			return nil
		})
	}()
}

// upgrade retries the cascade for a domain currently served by a letter
// glyph. Failure restarts the letter's soft clock so the cascade is not
// hammered on every subsequent read.
func (r *Resolver) upgrade(ctx context.Context, domain, name string) {
	_, _ = r.inst.Resolve(ctx, observe.Meta{Op: "upgrade", Domain: domain},
		func(ctx context.Context) (string, error) {
			cand, err := r.cascade.Resolve(ctx, domain)
			now := r.now()

			if err != nil {
				if e, ok := r.index.Get(domain); ok && e.Kind == icon.KindLetter {
					e.CreatedAt = now
					r.persist(ctx, e)
				}
				return observe.OutcomeFallback, nil
			}

			r.persist(ctx, withSize(entryFromCandidate(cand, domain, now)))
			return observe.OutcomeResolved, nil
		})
}

// persist mirrors the entry into the memory index and writes it to the
// durable store with a short retry. Store failures are logged and
// swallowed: serving the icon matters more than caching it.
func (r *Resolver) persist(ctx context.Context, e icon.Entry) {
	r.index.Put(e)

	err := r.persistRetry.Execute(ctx, func(ctx context.Context) error {
		return r.store.Put(ctx, e)
	})
	if err != nil {
		r.inst.Logger().WithDomain(e.Domain).Warn(ctx, "icon cache write failed",
			observe.Field{Key: "error", Value: err.Error()})
	}
}

// alive probes a stored external URL. A nil fetcher trusts the URL.
func (r *Resolver) alive(ctx context.Context, url string) bool {
	if r.fetcher == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, r.aliveTimeout)
	defer cancel()
	return r.fetcher.Alive(ctx, url) == nil
}

// toResolved converts a cache entry to the caller-facing value. Letter
// entries keep their persisted color and derive the character from the
// caller's display name, so a renamed site updates its glyph immediately.
func (r *Resolver) toResolved(e icon.Entry, name string) icon.Resolved {
	res := icon.Resolved{
		Kind:   e.Kind,
		Domain: e.Domain,
		Image:  e.Image,
		URL:    e.URL,
	}
	if e.Kind == icon.KindLetter {
		g := glyph.Derive(name, e.Domain)
		res.Char = g.Char
		res.Color = e.Color
	}
	return res
}

// Invalidate drops the cached entry for a domain from both tiers. The next
// Resolve for the domain runs the cascade again.
func (r *Resolver) Invalidate(ctx context.Context, rawDomain string) error {
	domain, err := icon.NormalizeDomain(rawDomain)
	if err != nil {
		return err
	}
	r.index.Delete(domain)
	return r.store.Delete(ctx, domain)
}

// ClearAll drops every cached entry. Subsequent lookups behave as on cold
// start.
func (r *Resolver) ClearAll(ctx context.Context) error {
	r.index.Clear()
	return r.store.Clear(ctx)
}

// Stats summarizes the durable cache.
func (r *Resolver) Stats(ctx context.Context) (store.Stats, error) {
	return r.store.Stats(ctx)
}

// Sweep runs one janitor pass: TTL purge, then oldest-first eviction when
// the footprint exceeds the high watermark.
func (r *Resolver) Sweep(ctx context.Context) (store.SweepStats, error) {
	return r.janitor.Sweep(ctx)
}

// RunJanitor sweeps periodically until the context is done.
func (r *Resolver) RunJanitor(ctx context.Context, interval time.Duration) {
	r.janitor.Run(ctx, interval)
}

// Close stops accepting work and waits for in-flight background upgrades.
func (r *Resolver) Close() error {
	r.closed.Store(true)
	r.wg.Wait()
	return nil
}

// entryFromCandidate builds the cache entry for a cascade winner.
func entryFromCandidate(c *source.Candidate, domain string, now time.Time) icon.Entry {
	return icon.Entry{
		Kind:      c.Kind,
		Domain:    domain,
		Image:     c.Image,
		URL:       c.URL,
		CreatedAt: now,
	}
}

// withSize stamps the entry's approximate persisted footprint.
func withSize(e icon.Entry) icon.Entry {
	if data, err := icon.EncodeEntry(e); err == nil {
		e.SizeBytes = int64(len(data))
	}
	return e
}
