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

// Package comment reconciles live annotation editor state with persisted
// document annotations into a single list of comment summaries.
//
// The two sources disagree constantly: editors are destroyed and recreated
// by undo and redo, annotations only gain durable IDs once saved, and both
// sides describe the same logical comment while an editor is open.  The
// package assigns each logical comment a stable key, merges duplicate
// records by source priority, and republishes the deduplicated list after
// every reconciliation pass.
package comment

import (
	"time"

	"seehuhn.de/go/pdfview"
)

// Source says which reconciliation path produced a summary before merging.
type Source string

const (
	SourceEditor Source = "editor"
	SourcePDF    Source = "pdf"
)

// A Summary is the normalized view of one logical annotation comment.
// Summaries are rebuilt from scratch on every reconciliation pass; only
// the registry's side tables survive between passes.
type Summary struct {
	// IdentityID names the current live representation: the editor UID
	// for editor-sourced records, or a synthesized per-page index.  It
	// is not stable across passes; use Key for that.
	IdentityID string

	// Key is the stable identity of the logical comment.  After a pass
	// there is exactly one Summary per Key.
	Key Key

	// SortIndex is the discovery order within the pass, used only as a
	// tie-break.
	SortIndex int

	PageIndex  int // 0-based
	PageNumber int // 1-based

	Text       string
	Subtype    pdfview.Subtype
	Author     string
	ModifiedAt time.Time
	Color      *pdfview.Color

	// UID is the live editor instance ID, AnnotationID the persisted
	// annotation ID.  Before merging at most one of the two is set;
	// a merged summary can carry both.
	UID          string
	AnnotationID string

	Source Source

	// HasNote marks summaries which should show a note indicator on
	// the page.
	HasNote bool

	// MarkerRect is the comment's anchor rectangle in fractional page
	// space, or nil when no geometry is available.
	MarkerRect *pdfview.Rect

	// Active is set while the comment's editor has input focus.
	Active bool

	// LinkedPopup is set on pdf-sourced summaries whose annotation has
	// a popup attached.  It raises the record's merge priority.
	LinkedPopup bool
}

// Clone returns a deep copy of the summary.  Merging operates on clones so
// that the caller's input records stay untouched.
func (s *Summary) Clone() *Summary {
	c := *s
	if s.MarkerRect != nil {
		r := *s.MarkerRect
		c.MarkerRect = &r
	}
	if s.Color != nil {
		col := *s.Color
		c.Color = &col
	}
	return &c
}
