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

package indicator

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// placementRing lists the candidate offsets, in pixels, tried around a
// cluster anchor's top-right corner, nearest first.
var placementRing = []vec.Vec2{
	{X: 0, Y: 0},
	{X: 18, Y: -10}, {X: -18, Y: -10}, {X: 18, Y: 10}, {X: -18, Y: 10},
	{X: 28, Y: 0}, {X: -28, Y: 0}, {X: 0, Y: -14}, {X: 0, Y: 14},
	{X: 38, Y: -12}, {X: -38, Y: -12}, {X: 38, Y: 12}, {X: -38, Y: 12},
	{X: 52, Y: 0}, {X: -52, Y: 0}, {X: 52, Y: -14}, {X: 52, Y: 14},
}

// placeMarker chooses a pixel position for a marker near at, keeping at
// least minDist pixels of distance to every already placed marker on the
// page.  Candidates are tried nearest first; if none satisfies the
// distance requirement the candidate with the largest distance to its
// closest neighbor is used instead.  Positions are clamped so that a
// marker of the given radius stays within the page bounds.  placeMarker
// always returns a position.
func placeMarker(at vec.Vec2, placed []vec.Vec2, page Bounds, minDist, radius float64) vec.Vec2 {
	var best vec.Vec2
	bestMin := math.Inf(-1)
	for _, off := range placementRing {
		p := clampToPage(vec.Vec2{X: at.X + off.X, Y: at.Y + off.Y}, page, radius)
		d := minDistanceTo(p, placed)
		if d >= minDist {
			return p
		}
		if d > bestMin {
			bestMin = d
			best = p
		}
	}
	return best
}

// minDistanceTo returns the distance from p to the closest of the given
// points, or +Inf if there are none.
func minDistanceTo(p vec.Vec2, points []vec.Vec2) float64 {
	closest := math.Inf(1)
	for _, q := range points {
		d := math.Hypot(p.X-q.X, p.Y-q.Y)
		if d < closest {
			closest = d
		}
	}
	return closest
}

// clampToPage keeps a marker center at least radius away from the page
// edges.  A page smaller than the marker collapses to its center line.
func clampToPage(p vec.Vec2, page Bounds, radius float64) vec.Vec2 {
	return vec.Vec2{
		X: clampAxis(p.X, page.X, page.X+page.W, radius),
		Y: clampAxis(p.Y, page.Y, page.Y+page.H, radius),
	}
}

func clampAxis(v, lo, hi, radius float64) float64 {
	lo += radius
	hi -= radius
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
