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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"
)

func TestNormalize(t *testing.T) {
	type testCase struct {
		name string
		in   *Rect
		want *Rect
	}
	cases := []testCase{
		{
			name: "valid",
			in:   &Rect{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4},
			want: &Rect{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4},
		},
		{
			name: "nil",
			in:   nil,
			want: nil,
		},
		{
			name: "zero width",
			in:   &Rect{Left: 0.1, Top: 0.2, Width: 0, Height: 0.4},
			want: nil,
		},
		{
			name: "negative height",
			in:   &Rect{Left: 0.1, Top: 0.2, Width: 0.3, Height: -0.4},
			want: nil,
		},
		{
			name: "NaN",
			in:   &Rect{Left: math.NaN(), Top: 0.2, Width: 0.3, Height: 0.4},
			want: nil,
		},
		{
			name: "infinite",
			in:   &Rect{Left: 0.1, Top: 0.2, Width: math.Inf(1), Height: 0.4},
			want: nil,
		},
		{
			name: "clamped to unit square",
			in:   &Rect{Left: -0.1, Top: 0.9, Width: 0.3, Height: 0.3},
			want: &Rect{Left: 0, Top: 0.9, Width: 0.2, Height: 0.1},
		},
		{
			name: "fully outside",
			in:   &Rect{Left: 1.5, Top: 0.5, Width: 0.2, Height: 0.2},
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if diff := cmp.Diff(tc.want, got, cmp.Comparer(approxEqual)); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIoU(t *testing.T) {
	a := &Rect{Left: 0.1, Top: 0.1, Width: 0.2, Height: 0.2}
	b := &Rect{Left: 0.2, Top: 0.2, Width: 0.2, Height: 0.2}
	far := &Rect{Left: 0.7, Top: 0.7, Width: 0.1, Height: 0.1}

	if got := IoU(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("IoU(a, a) = %g, want 1", got)
	}
	if got := IoU(a, far); got != 0 {
		t.Errorf("IoU of disjoint rects = %g, want 0", got)
	}
	if got, rev := IoU(a, b), IoU(b, a); math.Abs(got-rev) > 1e-12 {
		t.Errorf("IoU not symmetric: %g != %g", got, rev)
	}

	// intersection 0.1x0.1, union 2*0.04 - 0.01 = 0.07
	if got, want := IoU(a, b), 0.01/0.07; math.Abs(got-want) > 1e-9 {
		t.Errorf("IoU(a, b) = %g, want %g", got, want)
	}

	if got := IoU(nil, a); got != 0 {
		t.Errorf("IoU(nil, a) = %g, want 0", got)
	}
}

func TestUnion(t *testing.T) {
	a := &Rect{Left: 0.1, Top: 0.1, Width: 0.2, Height: 0.1}
	b := &Rect{Left: 0.4, Top: 0.3, Width: 0.1, Height: 0.2}

	got := Union(a, b)
	want := &Rect{Left: 0.1, Top: 0.1, Width: 0.4, Height: 0.4}
	if diff := cmp.Diff(want, got, cmp.Comparer(approxEqual)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}

	if got := Union(nil, b); got == b {
		t.Error("Union(nil, b) must return a copy, not b itself")
	} else if diff := cmp.Diff(b, got); diff != "" {
		t.Errorf("Union(nil, b) mismatch (-want +got):\n%s", diff)
	}
	if got := Union(nil, nil); got != nil {
		t.Errorf("Union(nil, nil) = %v, want nil", got)
	}
}

func TestContains(t *testing.T) {
	r := &Rect{Left: 0.2, Top: 0.2, Width: 0.4, Height: 0.2}
	if !r.Contains(vec.Vec2{X: 0.4, Y: 0.3}) {
		t.Error("center point not contained")
	}
	if !r.Contains(vec.Vec2{X: 0.2, Y: 0.2}) {
		t.Error("corner point not contained")
	}
	if r.Contains(vec.Vec2{X: 0.7, Y: 0.3}) {
		t.Error("outside point contained")
	}

	inner := &Rect{Left: 0.3, Top: 0.25, Width: 0.1, Height: 0.1}
	if !r.Covers(inner) {
		t.Error("inner rect not covered")
	}
	if inner.Covers(r) {
		t.Error("inner rect covers outer")
	}
}

func TestFromPDFRect(t *testing.T) {
	view := [4]float64{0, 0, 600, 800}

	// A 60x80 rect with its lower-left corner at (60, 640).  In
	// page-fraction space this is the top-left tenth of the page, one
	// tenth in from each edge.
	got := FromPDFRect([4]float64{60, 640, 120, 720}, view)
	want := &Rect{Left: 0.1, Top: 0.1, Width: 0.1, Height: 0.1}
	if diff := cmp.Diff(want, got, cmp.Comparer(approxEqual)); diff != "" {
		t.Errorf("FromPDFRect mismatch (-want +got):\n%s", diff)
	}

	// coordinate order within the rect must not matter
	swapped := FromPDFRect([4]float64{120, 720, 60, 640}, view)
	if diff := cmp.Diff(got, swapped, cmp.Comparer(approxEqual)); diff != "" {
		t.Errorf("FromPDFRect order sensitivity (-want +got):\n%s", diff)
	}

	if got := FromPDFRect([4]float64{0, 0, 10, 10}, [4]float64{0, 0, 0, 0}); got != nil {
		t.Errorf("degenerate view box: got %v, want nil", got)
	}
}
