package source

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/siteicon/icon"
	"github.com/jonwraymond/siteicon/observe"
	"github.com/jonwraymond/siteicon/resilience"
)

// Candidate is the accepted outcome of a cascade run.
type Candidate struct {
	// Kind is KindImage when the payload was normalized inline, or
	// KindExternalURL when the icon is carried by reference.
	Kind icon.Kind

	// Image is the normalized PNG payload for KindImage.
	Image []byte

	// URL is the provider URL for KindExternalURL.
	URL string

	// Source names the provider that won.
	Source string
}

// CascadeConfig configures a Cascade.
type CascadeConfig struct {
	// Sources are tried strictly in order. Default: DefaultSources().
	Sources []Source

	// Fetcher retrieves payloads. Required.
	Fetcher Fetcher

	// Gate is the acceptance gate. Default: DefaultGate().
	Gate Gate

	// Instrument records fetch telemetry. Default: no-op.
	Instrument *observe.Instrument

	// BreakerMaxFailures opens a provider's circuit after this many
	// consecutive failures, skipping it until BreakerResetTimeout
	// elapses. Shared providers get one breaker across all domains;
	// same-origin sources get one breaker per domain, since a site
	// missing its own favicon says nothing about other sites.
	// Defaults: 3 failures, 60 seconds.
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration

	// Now is the clock, injectable for tests. Default: time.Now.
	Now func() time.Time
}

// Cascade walks the provider list in order and returns the first payload
// that passes the quality gate.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Context: Resolve honors cancellation between and during attempts;
//     a result arriving after an attempt's timeout is discarded.
//   - Errors: Resolve returns ErrExhausted when no provider yields an
//     acceptable icon. Individual provider failures are not surfaced.
type Cascade struct {
	sources    []Source
	fetcher    Fetcher
	gate       Gate
	inst       *observe.Instrument
	shared     map[string]*resilience.CircuitBreaker
	breakerCfg resilience.CircuitBreakerConfig
	now        func() time.Time

	mu        sync.Mutex
	perOrigin map[string]*resilience.CircuitBreaker
}

// NewCascade creates a cascade. Shared providers get their circuit
// breakers up front; same-origin sources get theirs lazily per domain.
func NewCascade(cfg CascadeConfig) *Cascade {
	if cfg.Sources == nil {
		cfg.Sources = DefaultSources()
	}
	if cfg.Gate == (Gate{}) {
		cfg.Gate = DefaultGate()
	}
	if cfg.Instrument == nil {
		cfg.Instrument = observe.NewNopInstrument()
	}
	if cfg.BreakerMaxFailures <= 0 {
		cfg.BreakerMaxFailures = 3
	}
	if cfg.BreakerResetTimeout <= 0 {
		cfg.BreakerResetTimeout = 60 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	breakerCfg := resilience.CircuitBreakerConfig{
		MaxFailures:  cfg.BreakerMaxFailures,
		ResetTimeout: cfg.BreakerResetTimeout,
	}
	shared := make(map[string]*resilience.CircuitBreaker, len(cfg.Sources))
	for _, s := range cfg.Sources {
		if !s.SameOrigin() {
			shared[s.Name] = resilience.NewCircuitBreaker(breakerCfg)
		}
	}

	return &Cascade{
		sources:    cfg.Sources,
		fetcher:    cfg.Fetcher,
		gate:       cfg.Gate,
		inst:       cfg.Instrument,
		shared:     shared,
		breakerCfg: breakerCfg,
		now:        cfg.Now,
		perOrigin:  make(map[string]*resilience.CircuitBreaker),
	}
}

// breaker returns the circuit for one attempt. Shared providers are keyed
// by name alone; same-origin sources are keyed by name and domain, so a
// string of failures against one site never skips another site's own
// favicon paths.
func (c *Cascade) breaker(src Source, domain string) *resilience.CircuitBreaker {
	if !src.SameOrigin() {
		return c.shared[src.Name]
	}

	key := src.Name + "|" + domain
	c.mu.Lock()
	defer c.mu.Unlock()
	cb, ok := c.perOrigin[key]
	if !ok {
		cb = resilience.NewCircuitBreaker(c.breakerCfg)
		c.perOrigin[key] = cb
	}
	return cb
}

// Resolve runs the cascade for a normalized domain.
func (c *Cascade) Resolve(ctx context.Context, domain string) (*Candidate, error) {
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cand, err := c.attempt(ctx, domain, src)
		if err != nil {
			continue
		}
		return cand, nil
	}
	return nil, ErrExhausted
}

// attempt fetches from one provider through its circuit breaker and the
// per-tier timeout, then gates and normalizes the payload.
func (c *Cascade) attempt(ctx context.Context, domain string, src Source) (*Candidate, error) {
	url := src.URL(domain, c.now())
	meta := observe.Meta{Op: "fetch", Domain: domain, Source: src.Name, Tier: src.Tier}

	var cand *Candidate
	err := c.inst.Fetch(ctx, meta, func(ctx context.Context) error {
		return c.breaker(src, domain).Execute(ctx, func(ctx context.Context) error {
			return resilience.ExecuteWithTimeout(ctx, src.Timeout, func(ctx context.Context) error {
				res, err := c.fetcher.Fetch(ctx, url)
				if err != nil {
					return err
				}

				format := Detect(res.Body, res.ContentType)
				if err := c.gate.Check(res.Body, format); err != nil {
					return err
				}

				cand = c.accept(res, format, src)
				return nil
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return cand, nil
}

// accept builds the candidate for a gated payload. Rasters are normalized
// inline; ICO and SVG are carried by reference, as is any raster that
// fails full decoding after its config decoded cleanly.
func (c *Cascade) accept(res *Result, format Format, src Source) *Candidate {
	if format.Raster() {
		if img, err := Normalize(res.Body); err == nil {
			return &Candidate{Kind: icon.KindImage, Image: img, Source: src.Name}
		}
	}
	return &Candidate{Kind: icon.KindExternalURL, URL: res.URL, Source: src.Name}
}
