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

import (
	"fmt"

	"seehuhn.de/go/pdfview"
)

// A Registry tracks comment identity across reconciliation passes.  It
// holds the last committed summary list together with the side tables
// which give the next pass continuity: ID-to-key bindings, fingerprints of
// comments without durable IDs, and the last known note text per key.
//
// A Registry belongs to one document session.  It is not safe for
// concurrent use; the synchronizer is its single writer.
type Registry struct {
	maxDistance int
	fpMemo      *fingerprintCache

	cache    []*Summary
	byKey    map[Key]*Summary
	annIDKey map[string]Key
	uidKey   map[string]Key

	// fingerprints holds, per page, the fingerprints of last pass's
	// summaries which had neither an annotation ID nor an editor UID.
	fingerprints map[int]map[Key]uint64

	rememberedText map[Key]string
}

// NewRegistry creates an empty registry.  maxFingerprintDistance is the
// Hamming distance up to which a comment without durable IDs still adopts
// a remembered key; zero means the default of 6.
func NewRegistry(maxFingerprintDistance int) *Registry {
	if maxFingerprintDistance <= 0 {
		maxFingerprintDistance = defaultFingerprintMaxDistance
	}
	r := &Registry{
		maxDistance: maxFingerprintDistance,
		fpMemo:      newFingerprintCache(fingerprintCacheSize),
	}
	r.reset()
	return r
}

func (r *Registry) reset() {
	r.cache = nil
	r.byKey = make(map[Key]*Summary)
	r.annIDKey = make(map[string]Key)
	r.uidKey = make(map[string]Key)
	r.fingerprints = make(map[int]map[Key]uint64)
	r.rememberedText = make(map[Key]string)
}

// Clear drops the cache and every side table.  Call on document close;
// nothing remembered may leak into the next document.
func (r *Registry) Clear() {
	r.reset()
	r.fpMemo.Clear()
}

// Comments returns the last committed summary list.  The caller must not
// modify the returned slice or the summaries in it.
func (r *Registry) Comments() []*Summary {
	return r.cache
}

// FindByKey returns the committed summary with the given key, or nil.
func (r *Registry) FindByKey(key Key) *Summary {
	return r.byKey[key]
}

// FindByAnnotationID returns the committed summary for a persisted
// annotation ID on the given page, or nil.
func (r *Registry) FindByAnnotationID(annotationID string, pageIndex int) *Summary {
	key, ok := r.annIDKey[bindingKey(pageIndex, annotationID)]
	if !ok {
		return nil
	}
	return r.byKey[key]
}

// RememberedText returns the last known non-empty note text for a key, or
// the empty string.  The synchronizer uses this to keep an indicator alive
// while the user has transiently emptied the editor.
func (r *Registry) RememberedText(key Key) string {
	return r.rememberedText[key]
}

// Commit replaces the cache with the summaries of a finished pass and
// rebuilds all side tables from them.  Side-table entries whose keys did
// not survive the pass are dropped.
func (r *Registry) Commit(summaries []*Summary) {
	r.cache = summaries
	r.byKey = make(map[Key]*Summary, len(summaries))
	r.annIDKey = make(map[string]Key)
	r.uidKey = make(map[string]Key)
	r.fingerprints = make(map[int]map[Key]uint64)
	newText := make(map[Key]string)

	for _, s := range summaries {
		r.byKey[s.Key] = s
		if s.AnnotationID != "" {
			r.annIDKey[bindingKey(s.PageIndex, s.AnnotationID)] = s.Key
		}
		if s.UID != "" {
			r.uidKey[bindingKey(s.PageIndex, s.UID)] = s.Key
		}
		if s.AnnotationID == "" && s.UID == "" {
			if fp := cachedFingerprint(r.fpMemo, s.Text, s.MarkerRect); fp != 0 {
				page := r.fingerprints[s.PageIndex]
				if page == nil {
					page = make(map[Key]uint64)
					r.fingerprints[s.PageIndex] = page
				}
				page[s.Key] = fp
			}
		}
		if s.Text != "" {
			newText[s.Key] = s.Text
		} else if old, ok := r.rememberedText[s.Key]; ok {
			newText[s.Key] = old
		}
	}
	r.rememberedText = newText
}

func bindingKey(pageIndex int, id string) string {
	return fmt.Sprintf("p%d/%s", pageIndex, id)
}

// A Resolver assigns stable keys to the candidates of one reconciliation
// pass.  It layers the pass's own bindings over a snapshot of the
// registry's previous pass, so that an editor which gained its annotation
// ID mid-session and the persisted record behind it still resolve to one
// key.
//
// Obtain a Resolver from [Registry.BeginPass]; resolve candidates in
// discovery order.
type Resolver struct {
	maxDistance int
	memo        *fingerprintCache

	// snapshots of the registry tables as of BeginPass.  Commit never
	// mutates committed maps, it replaces them, so these stay frozen
	// even while a newer pass commits.
	prevAnnID        map[string]Key
	prevUID          map[string]Key
	prevFingerprints map[int]map[Key]uint64
	remembered       map[Key]string

	byAnnID map[string]Key
	byUID   map[string]Key

	// claimed guards the positional key space: each remembered
	// fingerprint key can be adopted once per pass, and a computed
	// positional key must not collide with an adopted one.
	claimed map[Key]bool
}

// BeginPass starts key resolution for a new pass.  The resolver works on a
// snapshot of the registry, so a stale in-flight pass can keep resolving
// while a newer pass commits; its results are thrown away by the caller's
// token check before commit.
func (r *Registry) BeginPass() *Resolver {
	return &Resolver{
		maxDistance:      r.maxDistance,
		memo:             r.fpMemo,
		prevAnnID:        r.annIDKey,
		prevUID:          r.uidKey,
		prevFingerprints: r.fingerprints,
		remembered:       r.rememberedText,
		byAnnID:          make(map[string]Key),
		byUID:            make(map[string]Key),
		claimed:          make(map[Key]bool),
	}
}

// RememberedText returns the last known non-empty note text for a key as
// of the start of the pass, or the empty string.
func (rv *Resolver) RememberedText(key Key) string {
	return rv.remembered[key]
}

// Resolve returns the stable key for a candidate.  The lookup order runs
// from most to least durable: annotation ID bindings (this pass, then last
// pass), editor UID bindings (likewise), fingerprint adoption for
// candidates without any durable ID, and finally the computed key.
func (rv *Resolver) Resolve(c Candidate) Key {
	if c.AnnotationID != "" {
		bk := bindingKey(c.PageIndex, c.AnnotationID)
		if k, ok := rv.byAnnID[bk]; ok {
			rv.bind(c, k)
			return k
		}
		if k, ok := rv.prevAnnID[bk]; ok {
			rv.bind(c, k)
			return k
		}
	}
	if c.UID != "" {
		bk := bindingKey(c.PageIndex, c.UID)
		if k, ok := rv.byUID[bk]; ok {
			rv.bind(c, k)
			return k
		}
		if k, ok := rv.prevUID[bk]; ok {
			rv.bind(c, k)
			return k
		}
	}

	if c.AnnotationID == "" && c.UID == "" {
		if k, ok := rv.adopt(c); ok {
			rv.claimed[k] = true
			return k
		}
		k := ComputeKey(c)
		// an adopted key from an earlier pass can coincide with a
		// freshly computed positional key; keep them apart
		for rv.claimed[k] {
			k += "*"
		}
		rv.claimed[k] = true
		return k
	}

	k := ComputeKey(c)
	rv.bind(c, k)
	return k
}

// bind records this pass's ID-to-key bindings so that later candidates of
// the same pass resolve consistently.
func (rv *Resolver) bind(c Candidate, k Key) {
	if c.AnnotationID != "" {
		rv.byAnnID[bindingKey(c.PageIndex, c.AnnotationID)] = k
	}
	if c.UID != "" {
		rv.byUID[bindingKey(c.PageIndex, c.UID)] = k
	}
}

// adopt matches a candidate without durable IDs against the previous
// pass's fingerprints on the same page.  The closest unclaimed fingerprint
// within the distance limit wins; ties go to the smaller key.
func (rv *Resolver) adopt(c Candidate) (Key, bool) {
	fp := cachedFingerprint(rv.memo, c.Text, c.MarkerRect)
	if fp == 0 {
		return "", false
	}
	page := rv.prevFingerprints[c.PageIndex]
	if len(page) == 0 {
		return "", false
	}

	var bestKey Key
	bestDist := rv.maxDistance + 1
	for k, old := range page {
		if rv.claimed[k] {
			continue
		}
		d := hammingDistance(fp, old)
		if d > rv.maxDistance {
			continue
		}
		if d < bestDist || (d == bestDist && k < bestKey) {
			bestKey = k
			bestDist = d
		}
	}
	if bestKey == "" {
		return "", false
	}
	return bestKey, true
}
