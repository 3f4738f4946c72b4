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

package pdfview

import "time"

// An Editor is a point-in-time snapshot of one live annotation editor on a
// rendered page.  Editors are created and destroyed freely by the viewer's
// editing layer (undo and redo recreate them wholesale), so none of the
// fields here can serve as a long-lived identity on its own; the comment
// layer derives stable keys from them instead.
type Editor struct {
	// UID identifies the editor instance.  It is unique within the
	// viewer session but changes whenever the editor is recreated.
	UID string

	// AnnotationID is the ID of the persisted annotation backing this
	// editor, or empty while the editor is unsaved.
	AnnotationID string

	Subtype Subtype

	// Text is the editor's current note text.  It may be transiently
	// empty while the user is editing.
	Text string

	Author   string
	Modified time.Time

	Color   []float64
	Opacity float64

	// MarkerRect is the bounding box of the editor's on-page widget in
	// fractional page space, or nil when the widget is not laid out yet.
	MarkerRect *Rect
}

// EditorManager gives access to the live annotation editors of the viewer.
// The viewer's editing layer implements this; all methods are synchronous
// and must be cheap, as a reconciliation pass calls them for every page.
type EditorManager interface {
	// Editors returns snapshots of the live editors on the page with the
	// given 0-based index, in creation order.
	Editors(pageIndex int) []*Editor

	// ActiveUID returns the UID of the editor which currently has input
	// focus, or the empty string.
	ActiveUID() string
}
