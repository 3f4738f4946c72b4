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

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Rect is an axis-aligned rectangle in page-fraction coordinates.  The
// origin is the top-left corner of the rendered page, the x-axis points
// right and the y-axis points down.  All four fields are fractions of the
// page extent in the range [0, 1].
//
// Marker rects use this space so that they remain valid across zoom level
// changes; conversion to rendered pixel coordinates happens only at
// indicator placement time.
type Rect struct {
	Left, Top, Width, Height float64
}

// Right returns the x-coordinate of the right edge.
func (r *Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r *Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point of the rectangle.
func (r *Rect) Center() vec.Vec2 {
	return vec.Vec2{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Area returns the area of the rectangle.
func (r *Rect) Area() float64 { return r.Width * r.Height }

// Normalize validates r and clamps it to the unit square.  The result is a
// new rectangle; r is not modified.  Normalize returns nil if r is nil, has
// a non-finite coordinate, or does not retain positive extent after
// clamping.  Callers treat a nil result as "no usable geometry"; Normalize
// never panics.
func (r *Rect) Normalize() *Rect {
	if r == nil {
		return nil
	}
	for _, v := range [4]float64{r.Left, r.Top, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil
	}

	left := math.Max(0, math.Min(1, r.Left))
	top := math.Max(0, math.Min(1, r.Top))
	right := math.Max(0, math.Min(1, r.Left+r.Width))
	bottom := math.Max(0, math.Min(1, r.Top+r.Height))
	if right-left <= 0 || bottom-top <= 0 {
		return nil
	}

	return &Rect{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Contains reports whether the point p lies inside r (edges included).
func (r *Rect) Contains(p vec.Vec2) bool {
	if r == nil {
		return false
	}
	return p.X >= r.Left && p.X <= r.Right() &&
		p.Y >= r.Top && p.Y <= r.Bottom()
}

// Covers reports whether r fully contains the rectangle b.
func (r *Rect) Covers(b *Rect) bool {
	if r == nil || b == nil {
		return false
	}
	return b.Left >= r.Left && b.Right() <= r.Right() &&
		b.Top >= r.Top && b.Bottom() <= r.Bottom()
}

// IoU returns the intersection-over-union of a and b: the ratio of the area
// both rectangles cover to the area at least one of them covers.  The result
// is 1 for identical rectangles, 0 for disjoint ones, and 0 whenever either
// argument is nil or degenerate.
func IoU(a, b *Rect) float64 {
	if a == nil || b == nil {
		return 0
	}

	ix := math.Min(a.Right(), b.Right()) - math.Max(a.Left, b.Left)
	iy := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top, b.Top)
	if ix <= 0 || iy <= 0 {
		return 0
	}

	inter := ix * iy
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Union returns the bounding rectangle of a and b.  If one argument is nil,
// a copy of the other is returned; if both are nil, the result is nil.
// Clusters of detached comments grow their anchor with this function.
func Union(a, b *Rect) *Rect {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		c := *b
		return &c
	}
	if b == nil {
		c := *a
		return &c
	}

	left := math.Min(a.Left, b.Left)
	top := math.Min(a.Top, b.Top)
	right := math.Max(a.Right(), b.Right())
	bottom := math.Max(a.Bottom(), b.Bottom())
	return &Rect{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// CenterDistance returns the absolute distance between the centers of a and
// b, per axis.  Detached-comment clustering compares both components against
// a shared threshold.
func CenterDistance(a, b *Rect) vec.Vec2 {
	ca := a.Center()
	cb := b.Center()
	return vec.Vec2{X: math.Abs(ca.X - cb.X), Y: math.Abs(ca.Y - cb.Y)}
}

// FromPDFRect converts an annotation rectangle from PDF default user space
// to page-fraction coordinates.  The rect and view arguments are [llx, lly,
// urx, ury] arrays as stored in the document; the caller obtains view from
// [Page.View].  The coordinate order within rect is not significant, as with
// rectangles in PDF files generally.  FromPDFRect returns nil if the view
// box is degenerate, or if the resulting rectangle is degenerate in the
// sense of [Rect.Normalize].
func FromPDFRect(rect, view [4]float64) *Rect {
	vw := view[2] - view[0]
	vh := view[3] - view[1]
	if vw <= 0 || vh <= 0 {
		return nil
	}

	llx := math.Min(rect[0], rect[2])
	urx := math.Max(rect[0], rect[2])
	lly := math.Min(rect[1], rect[3])
	ury := math.Max(rect[1], rect[3])

	// PDF user space has the y-axis pointing up; page-fraction space
	// points down.
	r := &Rect{
		Left:   (llx - view[0]) / vw,
		Top:    (view[3] - ury) / vh,
		Width:  (urx - llx) / vw,
		Height: (ury - lly) / vh,
	}
	return r.Normalize()
}
