package store

import (
	"sync"

	"github.com/jonwraymond/siteicon/icon"
)

// Index is the process-lifetime, non-durable mirror of the hottest entries.
// It holds whole entries keyed by domain; freshness is the caller's concern
// because expiry is kind-specific.
//
// Writer-wins-on-conflict semantics are sufficient: each entry is
// independently keyed and replaced wholesale.
type Index struct {
	mu      sync.RWMutex
	entries map[string]icon.Entry
}

// NewIndex creates an empty memory index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]icon.Entry)}
}

// Get returns the mirrored entry for a domain.
func (ix *Index) Get(domain string) (icon.Entry, bool) {
	ix.mu.RLock()
	e, ok := ix.entries[domain]
	ix.mu.RUnlock()
	return e, ok
}

// Put mirrors an entry, replacing any previous one for the domain.
func (ix *Index) Put(e icon.Entry) {
	ix.mu.Lock()
	ix.entries[e.Domain] = e
	ix.mu.Unlock()
}

// Delete drops the mirrored entries for the given domains. Idempotent.
func (ix *Index) Delete(domains ...string) {
	ix.mu.Lock()
	for _, d := range domains {
		delete(ix.entries, d)
	}
	ix.mu.Unlock()
}

// Clear drops every mirrored entry.
func (ix *Index) Clear() {
	ix.mu.Lock()
	ix.entries = make(map[string]icon.Entry)
	ix.mu.Unlock()
}

// Len reports the number of mirrored entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}
