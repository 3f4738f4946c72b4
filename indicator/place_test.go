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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/vec"
)

var letterPage = Bounds{X: 0, Y: 0, W: 612, H: 792}

func TestPlaceMarkerUnobstructed(t *testing.T) {
	at := vec.Vec2{X: 300, Y: 200}
	got := placeMarker(at, nil, letterPage, defaultMinMarkerDistance, defaultMarkerRadius)
	if got != at {
		t.Errorf("got %v, want the anchor position %v", got, at)
	}
}

func TestPlaceMarkerAvoidsNeighbor(t *testing.T) {
	at := vec.Vec2{X: 300, Y: 200}
	placed := []vec.Vec2{at}

	// the diagonal ring offsets are about 20.6px long, below the minimum
	// distance of 24; the first acceptable candidate is (+28, 0)
	got := placeMarker(at, placed, letterPage, defaultMinMarkerDistance, defaultMarkerRadius)
	want := vec.Vec2{X: 328, Y: 200}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlaceMarkerCoincidentAnchors(t *testing.T) {
	// five markers for the same anchor spread out deterministically
	at := vec.Vec2{X: 300, Y: 200}
	var placed []vec.Vec2
	for i := 0; i < 5; i++ {
		pos := placeMarker(at, placed, letterPage, defaultMinMarkerDistance, defaultMarkerRadius)
		placed = append(placed, pos)
	}

	want := []vec.Vec2{
		{X: 300, Y: 200},
		{X: 328, Y: 200},
		{X: 272, Y: 200},
		{X: 352, Y: 200},
		{X: 248, Y: 200},
	}
	if diff := cmp.Diff(want, placed); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			d := math.Hypot(placed[i].X-placed[j].X, placed[i].Y-placed[j].Y)
			if d < defaultMinMarkerDistance {
				t.Errorf("markers %d and %d are %g px apart, want >= %g",
					i, j, d, float64(defaultMinMarkerDistance))
			}
		}
	}
}

func TestPlaceMarkerFallback(t *testing.T) {
	// with an absurd minimum distance no candidate qualifies; the
	// farthest one from the neighbor wins, and placement still returns
	at := vec.Vec2{X: 300, Y: 400}
	placed := []vec.Vec2{at}

	got := placeMarker(at, placed, letterPage, 1000, defaultMarkerRadius)
	want := vec.Vec2{X: 352, Y: 386} // offset (52, -14), ~53.9px out
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlaceMarkerClampsToPage(t *testing.T) {
	got := placeMarker(vec.Vec2{X: 5, Y: 5}, nil, letterPage, defaultMinMarkerDistance, defaultMarkerRadius)
	want := vec.Vec2{X: 12, Y: 12}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	got = placeMarker(vec.Vec2{X: 700, Y: 800}, nil, letterPage, defaultMinMarkerDistance, defaultMarkerRadius)
	want = vec.Vec2{X: 600, Y: 780}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlaceMarkerTinyPage(t *testing.T) {
	// a page smaller than the marker collapses to its center line
	page := Bounds{X: 0, Y: 0, W: 10, H: 10}
	got := placeMarker(vec.Vec2{X: 0, Y: 0}, nil, page, defaultMinMarkerDistance, defaultMarkerRadius)
	want := vec.Vec2{X: 5, Y: 5}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMinDistanceTo(t *testing.T) {
	if got := minDistanceTo(vec.Vec2{X: 1, Y: 2}, nil); !math.IsInf(got, 1) {
		t.Errorf("got %g for no points, want +Inf", got)
	}

	points := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if got := minDistanceTo(vec.Vec2{X: 7, Y: 0}, points); got != 3 {
		t.Errorf("got %g, want 3", got)
	}
}
