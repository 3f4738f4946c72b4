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

// Package pdfview provides the shared data model for viewer-side annotation
// comment synchronization.
//
// A PDF viewer holds two divergent representations of the same logical
// comment: the live annotation editors the user is currently manipulating,
// and the annotation objects parsed from the document.  The types in this
// package describe both representations in a normalized form, together with
// the small geometry, color and date helpers needed to compare them:
//
//   - [Rect] is an axis-aligned rectangle in page-fraction coordinates,
//     used to anchor and cluster comment markers.
//   - [RawAnnotation] is one parsed annotation object as reported by the
//     document backend; [PairPopups] joins markup annotations with their
//     linked pop-up notes.
//   - [Editor] and [EditorManager] describe the live editor state owned by
//     the rendering library.
//   - [Document] and [Page] describe the parsed document state.
//
// The reconciliation logic itself lives in the comment and indicator
// subpackages: seehuhn.de/go/pdfview/comment rebuilds a deduplicated comment
// list from both sources, and seehuhn.de/go/pdfview/indicator projects that
// list onto the rendered page as visual note indicators.
package pdfview
