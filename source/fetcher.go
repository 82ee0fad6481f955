package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonwraymond/siteicon/resilience"
)

// DefaultMaxBytes caps how much of a provider response is read. Favicons
// are small; anything larger is not worth caching inline.
const DefaultMaxBytes = 1 << 20

// Result is one fetched provider response.
type Result struct {
	// Body is the raw payload, at most the fetcher's byte limit.
	Body []byte

	// ContentType is the response Content-Type header, possibly empty.
	ContentType string

	// URL is the request URL that produced the body.
	URL string
}

// Fetcher retrieves icon payloads from providers.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: both methods must honor cancellation and deadlines.
//   - Errors: transport failures, non-2xx statuses and oversized bodies
//     are errors; callers treat any error as "this provider failed".
type Fetcher interface {
	// Fetch retrieves the payload at url.
	Fetch(ctx context.Context, url string) (*Result, error)

	// Alive reports whether url still answers, without downloading the
	// payload. Used to revalidate stored external icon URLs.
	Alive(ctx context.Context, url string) error
}

// HTTPFetcher fetches icons over plain anonymous HTTP. No cookies or
// credentials are ever attached to a request.
type HTTPFetcher struct {
	client   *http.Client
	limiter  *resilience.RateLimiter
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher. A nil client falls back to a dedicated
// client with sane timeouts; a nil limiter disables outbound rate limiting.
func NewHTTPFetcher(client *http.Client, limiter *resilience.RateLimiter) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{
		client:   client,
		limiter:  limiter,
		maxBytes: DefaultMaxBytes,
	}
}

// Fetch retrieves the payload at url, enforcing the byte limit.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrBadStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, f.maxBytes)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBody, url)
	}

	return &Result{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         url,
	}, nil
}

// Alive issues a HEAD request and reports success on any 2xx status.
// Providers that reject HEAD are retried with a GET whose body is
// discarded immediately.
func (f *HTTPFetcher) Alive(ctx context.Context, url string) error {
	err := f.probe(ctx, http.MethodHead, url)
	if err == nil {
		return nil
	}
	// Some icon hosts answer GET only.
	return f.probe(ctx, http.MethodGet, url)
}

func (f *HTTPFetcher) probe(ctx context.Context, method, url string) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d from %s", ErrBadStatus, resp.StatusCode, url)
	}
	return nil
}

// Ensure HTTPFetcher implements Fetcher
var _ Fetcher = (*HTTPFetcher)(nil)
