package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jonwraymond/siteicon/icon"
)

// keyPrefix namespaces icon entries inside the shared KV.
const keyPrefix = "icon:"

// Store is the durable icon cache: a domain-keyed entry map built strictly
// on the minimal KV interface.
//
// Contract:
// - Concurrency: safe for concurrent use; last writer per domain wins.
// - Corrupt entries read back as a miss, never as an error.
type Store struct {
	kv KV
}

// New creates a Store over the given KV.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Key returns the KV key for a normalized domain.
func Key(domain string) string {
	return keyPrefix + domain
}

// Get returns the entry for a domain. Missing and corrupt entries both
// report ok=false; only the KV failing reports an error.
func (s *Store) Get(ctx context.Context, domain string) (icon.Entry, bool, error) {
	pairs, err := s.kv.Get(ctx, Key(domain))
	if err != nil {
		return icon.Entry{}, false, err
	}
	raw, ok := pairs[Key(domain)]
	if !ok {
		return icon.Entry{}, false, nil
	}
	e, err := icon.DecodeEntry(raw)
	if err != nil {
		// Corrupt entry: drop it so the key re-resolves cleanly.
		_ = s.kv.Remove(ctx, Key(domain))
		return icon.Entry{}, false, nil
	}
	return e, true, nil
}

// Put writes an entry, replacing any existing entry for the domain.
func (s *Store) Put(ctx context.Context, e icon.Entry) error {
	data, err := icon.EncodeEntry(e)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, Key(e.Domain), data)
}

// Delete removes the entries for the given domains. Idempotent.
func (s *Store) Delete(ctx context.Context, domains ...string) error {
	keys := make([]string, len(domains))
	for i, d := range domains {
		keys[i] = Key(d)
	}
	return s.kv.Remove(ctx, keys...)
}

// Entries returns every decodable entry, oldest first. Corrupt values are
// skipped.
func (s *Store) Entries(ctx context.Context) ([]icon.Entry, error) {
	pairs, err := s.kv.Get(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]icon.Entry, 0, len(pairs))
	for key, raw := range pairs {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		e, err := icon.DecodeEntry(raw)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// Clear removes every cached entry. Subsequent lookups behave as on cold
// start.
func (s *Store) Clear(ctx context.Context) error {
	pairs, err := s.kv.Get(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		if strings.HasPrefix(key, keyPrefix) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return s.kv.Remove(ctx, keys...)
}

// BytesInUse reports the approximate aggregate footprint of the backing KV.
func (s *Store) BytesInUse(ctx context.Context) (int64, error) {
	return s.kv.BytesInUse(ctx)
}

// Stats summarizes the cache contents for diagnostics.
type Stats struct {
	Entries     int       `json:"entries"`
	Images      int       `json:"images"`
	ExternalURL int       `json:"external_urls"`
	Letters     int       `json:"letters"`
	BytesInUse  int64     `json:"bytes_in_use"`
	Oldest      time.Time `json:"oldest,omitzero"`
	Newest      time.Time `json:"newest,omitzero"`
}

// Stats walks the store and summarizes it.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return Stats{}, err
	}
	bytes, err := s.BytesInUse(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Entries: len(entries), BytesInUse: bytes}
	for _, e := range entries {
		switch e.Kind {
		case icon.KindImage:
			st.Images++
		case icon.KindExternalURL:
			st.ExternalURL++
		case icon.KindLetter:
			st.Letters++
		}
	}
	if len(entries) > 0 {
		st.Oldest = entries[0].CreatedAt
		st.Newest = entries[len(entries)-1].CreatedAt
	}
	return st, nil
}
