package icon

import (
	"net/url"
	"strings"
)

// MaxDomainLength is the maximum allowed length for a normalized domain.
const MaxDomainLength = 253

// NormalizeDomain reduces a raw URL or hostname to the canonical cache key:
// scheme stripped, path and port stripped, lower-cased.
func NormalizeDomain(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidDomain
	}

	// Parse as a URL when a scheme is present; otherwise prepend one so
	// the host splits out of any trailing path.
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return "", ErrInvalidDomain
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimSuffix(host, ".")
	if err := validateDomain(host); err != nil {
		return "", err
	}
	return host, nil
}

func validateDomain(host string) error {
	if host == "" || len(host) > MaxDomainLength {
		return ErrInvalidDomain
	}
	if strings.ContainsAny(host, " \t\n\r/\\") {
		return ErrInvalidDomain
	}
	return nil
}
