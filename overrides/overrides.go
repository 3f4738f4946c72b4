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

// Package overrides stores per-annotation subtype choices made by the
// user.  Some annotation tools write free text annotations where the user
// picked a typewriter note, or the other way round; when the user corrects
// the kind in the viewer, the correction is kept here so that the next
// reconciliation pass does not undo it.
package overrides

import (
	"sync"

	"seehuhn.de/go/pdfview"
)

// Store is the markup-subtype override table.  Implementations must be
// safe for concurrent use: reconciliation passes read while the UI writes.
type Store interface {
	// Get returns the overriding subtype for a persisted annotation,
	// if one has been recorded.
	Get(annotationID string) (pdfview.Subtype, bool, error)

	// Set records an overriding subtype for a persisted annotation.
	Set(annotationID string, subtype pdfview.Subtype) error

	// Delete removes the override for a persisted annotation.
	// Deleting a missing override is not an error.
	Delete(annotationID string) error
}

// MemStore is an in-memory Store.  Overrides kept here last for the
// session only; use [BoltStore] to keep them across viewer restarts.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]pdfview.Subtype
}

// NewMemStore creates an empty in-memory override store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]pdfview.Subtype)}
}

func (s *MemStore) Get(annotationID string) (pdfview.Subtype, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subtype, ok := s.m[annotationID]
	return subtype, ok, nil
}

func (s *MemStore) Set(annotationID string, subtype pdfview.Subtype) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[annotationID] = subtype
	return nil
}

func (s *MemStore) Delete(annotationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, annotationID)
	return nil
}

var _ Store = (*MemStore)(nil)
