package source

import (
	"strings"
	"time"
)

// Cascade tiers. The primary tier is tried before any secondary provider.
const (
	TierPrimary   = "primary"
	TierSecondary = "secondary"
)

// Default per-tier attempt timeouts.
const (
	PrimaryTimeout   = 1000 * time.Millisecond
	SecondaryTimeout = 1500 * time.Millisecond
)

// Source describes one icon provider in the cascade.
type Source struct {
	// Name identifies the provider in logs and telemetry.
	Name string

	// Tier is primary or secondary.
	Tier string

	// Template is the request URL with "{domain}" standing in for the
	// normalized domain.
	Template string

	// Timeout bounds one fetch attempt against this provider.
	Timeout time.Duration

	// DayBust appends a date-stamped query parameter so that upstream
	// HTTP caches roll over daily. Used for the site's own icon paths,
	// which carry no cache-busting of their own.
	DayBust bool
}

// URL renders the request URL for a domain. When DayBust is set the
// current date is appended as a v=YYYYMMDD query parameter.
func (s Source) URL(domain string, now time.Time) string {
	u := strings.ReplaceAll(s.Template, "{domain}", domain)
	if !s.DayBust {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "v=" + now.UTC().Format("20060102")
}

// SameOrigin reports whether the source fetches from the resolved site
// itself, i.e. the template's host is the domain placeholder. Such sources
// are per-domain resources: one site lacking /favicon.ico says nothing
// about the next site's.
func (s Source) SameOrigin() bool {
	host := s.Template
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return strings.Contains(host, "{domain}")
}

// DefaultSources returns the built-in cascade in resolution order: the
// aggregator first, then the site's own well-known icon paths, then public
// favicon services.
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "favicon.im",
			Tier:     TierPrimary,
			Template: "https://favicon.im/{domain}?larger=true",
			Timeout:  PrimaryTimeout,
		},
		{
			Name:     "site-favicon-ico",
			Tier:     TierSecondary,
			Template: "https://{domain}/favicon.ico",
			Timeout:  SecondaryTimeout,
			DayBust:  true,
		},
		{
			Name:     "site-favicon-png",
			Tier:     TierSecondary,
			Template: "https://{domain}/favicon.png",
			Timeout:  SecondaryTimeout,
			DayBust:  true,
		},
		{
			Name:     "site-favicon-svg",
			Tier:     TierSecondary,
			Template: "https://{domain}/favicon.svg",
			Timeout:  SecondaryTimeout,
			DayBust:  true,
		},
		{
			Name:     "site-apple-touch",
			Tier:     TierSecondary,
			Template: "https://{domain}/apple-touch-icon.png",
			Timeout:  SecondaryTimeout,
			DayBust:  true,
		},
		{
			Name:     "site-apple-touch-precomposed",
			Tier:     TierSecondary,
			Template: "https://{domain}/apple-touch-icon-precomposed.png",
			Timeout:  SecondaryTimeout,
			DayBust:  true,
		},
		{
			Name:     "site-favicon-32",
			Tier:     TierSecondary,
			Template: "https://{domain}/favicon-32x32.png",
			Timeout:  SecondaryTimeout,
			DayBust:  true,
		},
		{
			Name:     "gstatic",
			Tier:     TierSecondary,
			Template: "https://t3.gstatic.com/faviconV2?client=SOCIAL&type=FAVICON&fallback_opts=TYPE,SIZE,URL&url=https://{domain}&size=128",
			Timeout:  SecondaryTimeout,
		},
		{
			Name:     "iowen",
			Tier:     TierSecondary,
			Template: "https://api.iowen.cn/favicon/{domain}.png",
			Timeout:  SecondaryTimeout,
		},
		{
			Name:     "duckduckgo",
			Tier:     TierSecondary,
			Template: "https://icons.duckduckgo.com/ip3/{domain}.ico",
			Timeout:  SecondaryTimeout,
		},
		{
			Name:     "icon.horse",
			Tier:     TierSecondary,
			Template: "https://icon.horse/icon/{domain}",
			Timeout:  SecondaryTimeout,
		},
	}
}
