// Package resilience provides the failure-handling primitives used around
// icon fetching and cache persistence.
//
// Remote favicon providers are flaky by nature: the patterns here keep one
// slow or dead provider from dragging down a resolution.
//
// # Patterns
//
//   - Circuit Breaker: skips a provider that keeps failing until a reset
//     window elapses, so the cascade moves on quickly.
//
//   - Retry: retries transient failures with configurable backoff. Used
//     for best-effort cache writes.
//
//   - Rate Limiter: bounds outbound fetch traffic so bulk resolutions stay
//     polite to icon hosts.
//
//   - Bulkhead: caps concurrent background upgrade work.
//
//   - Timeout: bounds one fetch attempt; a late result is discarded.
//
// # Usage
//
// Each pattern wraps an operation independently:
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    MaxFailures:  3,
//	    ResetTimeout: time.Minute,
//	})
//
//	err := cb.Execute(ctx, func(ctx context.Context) error {
//	    return resilience.ExecuteWithTimeout(ctx, time.Second, fetchIcon)
//	})
package resilience
