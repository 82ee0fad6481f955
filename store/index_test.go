package store

import (
	"testing"
	"time"

	"github.com/jonwraymond/siteicon/icon"
)

func TestIndex_PutGet(t *testing.T) {
	ix := NewIndex()
	e := letterEntry("example.com", time.Now())

	ix.Put(e)
	got, ok := ix.Get("example.com")
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.Color != e.Color {
		t.Errorf("entry = %+v", got)
	}

	if _, ok := ix.Get("other.com"); ok {
		t.Error("expected a miss for an unknown domain")
	}
}

func TestIndex_DeleteAndClear(t *testing.T) {
	ix := NewIndex()
	now := time.Now()
	ix.Put(letterEntry("a.com", now))
	ix.Put(letterEntry("b.com", now))
	ix.Put(letterEntry("c.com", now))

	ix.Delete("a.com", "missing.com")
	if ix.Len() != 2 {
		t.Errorf("len after delete = %d, want 2", ix.Len())
	}

	ix.Clear()
	if ix.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", ix.Len())
	}
}

func TestIndex_PutReplaces(t *testing.T) {
	ix := NewIndex()
	ix.Put(letterEntry("example.com", time.Now()))
	ix.Put(icon.Entry{Kind: icon.KindExternalURL, Domain: "example.com", URL: "https://example.com/favicon.ico", CreatedAt: time.Now()})

	got, _ := ix.Get("example.com")
	if got.Kind != icon.KindExternalURL {
		t.Errorf("kind = %v, want the replacement", got.Kind)
	}
	if ix.Len() != 1 {
		t.Errorf("len = %d, want 1", ix.Len())
	}
}
