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

// Package indicator projects reconciled comment summaries onto the
// rendered pages as note indicators.
//
// The package owns no rendering of its own.  The host viewer exposes its
// render layer through the [Surface] interface; the [Renderer] decides
// which node each note attaches to, clusters the notes that attach to
// nothing, computes non-overlapping marker positions, and writes classes
// and attributes that the host's stylesheet turns into visible markers.
// Input events travel the other way: the host resolves a clicked element
// to a [Node] and hands it to the renderer, which resolves the comment
// and emits an event.
package indicator

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfview"
)

// Bounds is an axis-aligned rectangle in rendered pixel coordinates,
// relative to the viewer container.  Unlike [pdfview.Rect] it is not
// normalized to the page extent; it changes with the zoom level.
type Bounds struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.H }

// Center returns the center point.
func (b Bounds) Center() vec.Vec2 {
	return vec.Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// pixelBounds converts a page-fraction rectangle to pixel coordinates
// within the given page bounds.
func pixelBounds(r *pdfview.Rect, page Bounds) Bounds {
	return Bounds{
		X: page.X + r.Left*page.W,
		Y: page.Y + r.Top*page.H,
		W: r.Width * page.W,
		H: r.Height * page.H,
	}
}

// overlaps reports whether a and b intersect after growing a by tol on
// every side.
func overlaps(a, b Bounds, tol float64) bool {
	return a.X-tol < b.Right() && b.X < a.Right()+tol &&
		a.Y-tol < b.Bottom() && b.Y < a.Bottom()+tol
}

// A Node is one rendered element of the host viewer: a live editor
// widget, an annotation-layer element, a text-layer span, or an injected
// marker.  The renderer communicates with the host's styling exclusively
// through CSS classes and string attributes.
//
// Implementations must be safe for concurrent use; the renderer rebuilds
// from a background goroutine.
type Node interface {
	// Bounds returns the element's pixel bounding box relative to the
	// viewer container.
	Bounds() Bounds

	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool

	SetAttr(name, value string)
	Attr(name string) string
	DelAttr(name string)
}

// Surface is the host viewer's render layer as seen by the renderer.
// Lookups return nil when the requested element is not rendered; pages
// appear and disappear as the viewer virtualizes them, and the renderer
// treats a missing element as "no anchor available" rather than as an
// error.
//
// Implementations must be safe for concurrent use.
type Surface interface {
	// Pages returns the 1-based numbers of the currently rendered pages.
	Pages() []int

	// PageBounds returns the pixel bounds of a rendered page's
	// container, or false if the page is not rendered.
	PageBounds(pageNumber int) (Bounds, bool)

	// EditorAnchor returns the on-page widget of the live editor with
	// the given UID, or nil.
	EditorAnchor(pageNumber int, uid string) Node

	// AnnotationAnchor returns the annotation-layer element rendered
	// for the given persisted annotation, or nil.
	AnnotationAnchor(pageNumber int, annotationID string) Node

	// TextSpans returns the text-layer span elements of a page.
	TextSpans(pageNumber int) []Node

	// CreateMarker injects a detached note marker centered at the given
	// pixel position and returns it, or nil if the page has no marker
	// layer.
	CreateMarker(pageNumber int, at vec.Vec2) Node

	// ClearMarkers removes all markers created on the page.
	ClearMarkers(pageNumber int)
}

// MutationKind classifies a structural change of the rendered viewer
// container.  The host's change observation maps its records onto these
// kinds; everything it cannot classify is [MutationOther].
type MutationKind int

const (
	MutationOther MutationKind = iota

	// MutationAnnotationLayer is the attachment of an annotation layer
	// or of elements within one.
	MutationAnnotationLayer

	// MutationEditor is the appearance of a live editor widget.
	MutationEditor

	// MutationTextLayer is the attachment of a text layer.  Text layers
	// render asynchronously after the page itself, silently
	// invalidating text-span anchors.
	MutationTextLayer
)

// A Mutation is one structural change record forwarded by the host.
type Mutation struct {
	PageNumber int
	Kind       MutationKind
}
