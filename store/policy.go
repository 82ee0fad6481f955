package store

import (
	"time"

	"github.com/jonwraymond/siteicon/icon"
)

// Freshness classifies an entry against the TTL policy at read time.
type Freshness int

const (
	// Fresh entries are served as-is.
	Fresh Freshness = iota
	// SoftStale applies only to Letter entries past their soft TTL but
	// within the hard TTL: served immediately while a background upgrade
	// is scheduled.
	SoftStale
	// Expired entries are treated as a miss and re-resolved.
	Expired
)

// String returns the string representation of the freshness class.
func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case SoftStale:
		return "soft-stale"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// TTLPolicy holds the per-kind expiry horizons, applied lazily at read
// time. The janitor is an optimization on top, not a correctness
// requirement.
type TTLPolicy struct {
	// ImageTTL bounds inline image entries. Real icons change rarely.
	ImageTTL time.Duration

	// ExternalURLTTL bounds external URL entries. These additionally get
	// a liveness check when read from the durable store.
	ExternalURLTTL time.Duration

	// LetterSoftTTL is the horizon after which a cached letter is still
	// served but a background upgrade attempt is scheduled.
	LetterSoftTTL time.Duration

	// LetterHardTTL is the horizon after which a letter entry is fully
	// stale and resolved synchronously again.
	LetterHardTTL time.Duration
}

// DefaultTTLPolicy returns the production TTLs: seven days for real icons,
// a day of soft and two weeks of hard life for letter fallbacks.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		ImageTTL:       7 * 24 * time.Hour,
		ExternalURLTTL: 7 * 24 * time.Hour,
		LetterSoftTTL:  24 * time.Hour,
		LetterHardTTL:  14 * 24 * time.Hour,
	}
}

// Freshness classifies one entry at the given instant.
func (p TTLPolicy) Freshness(e icon.Entry, now time.Time) Freshness {
	age := now.Sub(e.CreatedAt)

	switch e.Kind {
	case icon.KindImage:
		if age < p.ImageTTL {
			return Fresh
		}
	case icon.KindExternalURL:
		if age < p.ExternalURLTTL {
			return Fresh
		}
	case icon.KindLetter:
		if age < p.LetterSoftTTL {
			return Fresh
		}
		if age < p.LetterHardTTL {
			return SoftStale
		}
	}
	return Expired
}

// HardTTL returns the horizon past which an entry of the given kind is
// unconditionally removable by the janitor.
func (p TTLPolicy) HardTTL(k icon.Kind) time.Duration {
	switch k {
	case icon.KindImage:
		return p.ImageTTL
	case icon.KindExternalURL:
		return p.ExternalURLTTL
	default:
		return p.LetterHardTTL
	}
}
