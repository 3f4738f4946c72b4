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

// A Key is the stable identity of a logical annotation comment.  Keys are
// derived from the most durable identifier available and are always
// namespaced by page, so identical IDs on different pages never collide.
//
// The key format is an internal contract of this module.  Do not persist
// keys or pass them across process boundaries.
type Key string

// A Candidate carries the identity inputs for one raw comment record.
type Candidate struct {
	// ID is the positional fallback identity, unique only within the
	// current pass (for example the record's per-page index).
	ID string

	PageIndex int
	Source    Source

	// UID is the live editor instance ID, if any.
	UID string

	// AnnotationID is the persisted annotation ID, if any.
	AnnotationID string

	// Text and MarkerRect do not enter the computed key.  They feed the
	// fingerprint which lets a candidate without any durable ID adopt
	// its key from the previous pass; see [Resolver.Resolve].
	Text       string
	MarkerRect *pdfview.Rect
}

// ComputeKey derives the stable key for a candidate.  The discriminating
// component is chosen by durability: the persisted annotation ID survives
// document reloads, the editor UID survives within a session, and the
// positional ID survives only the current pass.
//
// Editor-sourced and pdf-sourced records describing the same annotation
// compute the same key, which is what makes merging across the two sources
// work.
func ComputeKey(c Candidate) Key {
	switch {
	case c.AnnotationID != "":
		return Key(fmt.Sprintf("p%d/a:%s", c.PageIndex, c.AnnotationID))
	case c.UID != "":
		return Key(fmt.Sprintf("p%d/u:%s", c.PageIndex, c.UID))
	default:
		return Key(fmt.Sprintf("p%d/i:%s:%s", c.PageIndex, c.Source, c.ID))
	}
}
