// seehuhn.de/go/pdfview - annotation comment synchronization for PDF viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package comment

import "sync"

// fingerprintCache is a simple LRU cache for comment fingerprints.  The
// same unsaved comments are fingerprinted again on every reconciliation
// pass, so memoizing the simhash computation saves most of the repeated
// work on documents with many notes.
//
// Concurrent passes share one cache, so access is locked.
type fingerprintCache struct {
	mu          sync.Mutex
	capacity    int
	entries     map[string]*cacheEntry
	first, last *cacheEntry
}

type cacheEntry struct {
	prev, next *cacheEntry
	key        string
	fp         uint64
}

// newFingerprintCache creates a new LRU cache with the given capacity.
func newFingerprintCache(capacity int) *fingerprintCache {
	return &fingerprintCache{
		capacity: capacity,
		entries:  make(map[string]*cacheEntry, capacity),
	}
}

// Put adds a fingerprint to the cache.
func (l *fingerprintCache) Put(key string, fp uint64) {
	if l.capacity <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		ent.fp = fp
		l.moveToFront(ent)
		return
	}

	ent := &cacheEntry{
		key: key,
		fp:  fp,
	}
	l.entries[key] = ent
	l.moveToFront(ent)

	if len(l.entries) > l.capacity {
		l.removeLast()
	}
}

// Get returns a fingerprint from the cache and marks it as recently used.
func (l *fingerprintCache) Get(key string) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ent, ok := l.entries[key]
	if !ok {
		return 0, false
	}

	l.moveToFront(ent)
	return ent.fp, true
}

// Clear drops all cached fingerprints.
func (l *fingerprintCache) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*cacheEntry, l.capacity)
	l.first = nil
	l.last = nil
}

func (l *fingerprintCache) moveToFront(ent *cacheEntry) {
	if ent == l.first {
		return
	}

	if ent.prev != nil {
		ent.prev.next = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	}
	if ent == l.last {
		l.last = ent.prev
	}

	ent.prev = nil
	ent.next = l.first
	if l.first != nil {
		l.first.prev = ent
	}
	l.first = ent
	if l.last == nil {
		l.last = ent
	}
}

func (l *fingerprintCache) removeLast() {
	if l.last == nil {
		return
	}

	delete(l.entries, l.last.key)
	if l.last.prev != nil {
		l.last.prev.next = nil
	}
	l.last = l.last.prev
}
