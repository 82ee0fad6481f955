package store

import (
	"testing"
	"time"

	"github.com/jonwraymond/siteicon/icon"
)

func TestTTLPolicy_Image(t *testing.T) {
	p := DefaultTTLPolicy()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	e := icon.Entry{Kind: icon.KindImage, Domain: "example.com", CreatedAt: created}

	if got := p.Freshness(e, created.Add(p.ImageTTL-time.Second)); got != Fresh {
		t.Errorf("just inside TTL: %v, want fresh", got)
	}
	if got := p.Freshness(e, created.Add(p.ImageTTL)); got != Expired {
		t.Errorf("at TTL boundary: %v, want expired", got)
	}
}

func TestTTLPolicy_ExternalURL(t *testing.T) {
	p := DefaultTTLPolicy()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	e := icon.Entry{Kind: icon.KindExternalURL, Domain: "example.com", CreatedAt: created}

	if got := p.Freshness(e, created.Add(time.Hour)); got != Fresh {
		t.Errorf("young entry: %v, want fresh", got)
	}
	if got := p.Freshness(e, created.Add(p.ExternalURLTTL+time.Second)); got != Expired {
		t.Errorf("past TTL: %v, want expired", got)
	}
}

func TestTTLPolicy_LetterTwoHorizons(t *testing.T) {
	p := DefaultTTLPolicy()
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	e := icon.Entry{Kind: icon.KindLetter, Domain: "example.com", CreatedAt: created}

	cases := []struct {
		at   time.Duration
		want Freshness
	}{
		{p.LetterSoftTTL - time.Second, Fresh},
		{p.LetterSoftTTL, SoftStale},
		{p.LetterHardTTL - time.Second, SoftStale},
		{p.LetterHardTTL, Expired},
	}
	for _, tc := range cases {
		if got := p.Freshness(e, created.Add(tc.at)); got != tc.want {
			t.Errorf("at +%v: %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestTTLPolicy_HardTTL(t *testing.T) {
	p := DefaultTTLPolicy()
	if p.HardTTL(icon.KindImage) != p.ImageTTL {
		t.Error("image hard TTL mismatch")
	}
	if p.HardTTL(icon.KindExternalURL) != p.ExternalURLTTL {
		t.Error("external URL hard TTL mismatch")
	}
	if p.HardTTL(icon.KindLetter) != p.LetterHardTTL {
		t.Error("letter hard TTL must be the hard horizon, not the soft one")
	}
}
