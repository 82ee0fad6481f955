// Package source implements the remote icon cascade: the ordered list of
// icon providers, the HTTP fetcher, format probing, the quality gate, and
// payload normalization.
//
// The cascade tries providers strictly in order within two tiers. The
// primary tier is a single aggregator with a tight timeout; the secondary
// tier walks the site's own well-known icon paths and then public favicon
// services with a looser timeout. The first response that passes the
// quality gate wins and the remaining providers are never contacted.
//
// Basic usage:
//
//	cascade := source.NewCascade(source.CascadeConfig{
//		Fetcher: source.NewHTTPFetcher(nil, nil),
//	})
//	cand, err := cascade.Resolve(ctx, "example.com")
//
// All requests are anonymous: no cookies or credentials are ever attached.
package source
