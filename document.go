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

import "context"

// Document gives read access to the persisted annotation state of the
// loaded document.  The viewer's rendering backend implements this.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// Page returns a handle for the page with the given 0-based index.
	// The call may reach into the document backend and block.
	Page(ctx context.Context, pageIndex int) (Page, error)
}

// Page is a handle for one document page.
type Page interface {
	// Annotations fetches the page's raw annotation records, including
	// popup records, in document order.  This is the slow path of a
	// reconciliation pass; the result must be treated as read-only.
	Annotations(ctx context.Context) ([]*RawAnnotation, error)

	// View returns the page rectangle in PDF user space,
	// [llx, lly, urx, ury].  Annotation rectangles are converted to
	// fractional page coordinates relative to this rectangle.
	View() [4]float64
}
