package source

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultSourcesOrder(t *testing.T) {
	sources := DefaultSources()
	if len(sources) != 11 {
		t.Fatalf("expected 11 sources, got %d", len(sources))
	}

	if sources[0].Name != "favicon.im" || sources[0].Tier != TierPrimary {
		t.Errorf("first source = %s/%s, want favicon.im/primary", sources[0].Name, sources[0].Tier)
	}
	if sources[0].Timeout != PrimaryTimeout {
		t.Errorf("primary timeout = %v, want %v", sources[0].Timeout, PrimaryTimeout)
	}

	for _, s := range sources[1:] {
		if s.Tier != TierSecondary {
			t.Errorf("source %s tier = %s, want secondary", s.Name, s.Tier)
		}
		if s.Timeout != SecondaryTimeout {
			t.Errorf("source %s timeout = %v, want %v", s.Name, s.Timeout, SecondaryTimeout)
		}
	}

	if sources[len(sources)-1].Name != "icon.horse" {
		t.Errorf("last source = %s, want icon.horse", sources[len(sources)-1].Name)
	}
}

func TestSourceURL(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	plain := Source{Template: "https://favicon.im/{domain}?larger=true"}
	if got := plain.URL("example.com", now); got != "https://favicon.im/example.com?larger=true" {
		t.Errorf("URL = %q", got)
	}

	busted := Source{Template: "https://{domain}/favicon.ico", DayBust: true}
	if got := busted.URL("example.com", now); got != "https://example.com/favicon.ico?v=20260901" {
		t.Errorf("day-busted URL = %q", got)
	}

	bustedQuery := Source{Template: "https://{domain}/icon?s=64", DayBust: true}
	if got := bustedQuery.URL("example.com", now); got != "https://example.com/icon?s=64&v=20260901" {
		t.Errorf("day-busted URL with query = %q", got)
	}
}

func TestSource_SameOrigin(t *testing.T) {
	cases := []struct {
		template string
		want     bool
	}{
		{"https://{domain}/favicon.ico", true},
		{"https://{domain}/apple-touch-icon.png", true},
		{"https://favicon.im/{domain}?larger=true", false},
		{"https://icons.duckduckgo.com/ip3/{domain}.ico", false},
		{"https://t3.gstatic.com/faviconV2?url=https://{domain}&size=128", false},
	}
	for _, tc := range cases {
		if got := (Source{Template: tc.template}).SameOrigin(); got != tc.want {
			t.Errorf("SameOrigin(%q) = %v, want %v", tc.template, got, tc.want)
		}
	}

	perKind := map[bool][]string{}
	for _, s := range DefaultSources() {
		perKind[s.SameOrigin()] = append(perKind[s.SameOrigin()], s.Name)
	}
	if len(perKind[true]) != 6 {
		t.Errorf("same-origin defaults = %v, want the six site-* paths", perKind[true])
	}
}

func TestSourceURL_SubstitutesAllOccurrences(t *testing.T) {
	s := Source{Template: "https://t3.gstatic.com/faviconV2?client=SOCIAL&type=FAVICON&fallback_opts=TYPE,SIZE,URL&url=https://{domain}&size=128"}
	got := s.URL("example.com", time.Now())
	if strings.Contains(got, "{domain}") {
		t.Errorf("unsubstituted placeholder in %q", got)
	}
	if !strings.Contains(got, "url=https://example.com&size=128") {
		t.Errorf("URL = %q", got)
	}
}
