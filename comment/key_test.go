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

import "testing"

func TestComputeKey(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		want Key
	}{
		{
			name: "annotation ID wins over everything",
			c: Candidate{
				ID:           "0",
				PageIndex:    3,
				Source:       SourcePDF,
				UID:          "ed-1",
				AnnotationID: "17R",
			},
			want: "p3/a:17R",
		},
		{
			name: "editor UID without annotation ID",
			c: Candidate{
				ID:        "2",
				PageIndex: 0,
				Source:    SourceEditor,
				UID:       "ed-abc",
			},
			want: "p0/u:ed-abc",
		},
		{
			name: "positional fallback for pdf records",
			c: Candidate{
				ID:        "4",
				PageIndex: 12,
				Source:    SourcePDF,
			},
			want: "p12/i:pdf:4",
		},
		{
			name: "positional fallback for editors",
			c: Candidate{
				ID:        "0",
				PageIndex: 1,
				Source:    SourceEditor,
			},
			want: "p1/i:editor:0",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ComputeKey(test.c); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

// The same annotation ID on different pages must give different keys.
func TestComputeKeyPageNamespace(t *testing.T) {
	a := ComputeKey(Candidate{PageIndex: 1, AnnotationID: "9R"})
	b := ComputeKey(Candidate{PageIndex: 2, AnnotationID: "9R"})
	if a == b {
		t.Errorf("pages 1 and 2 share key %q", a)
	}
}

// An editor backed by a saved annotation and the persisted record itself
// must compute the same key, or they could never merge.
func TestComputeKeyCrossSource(t *testing.T) {
	ed := ComputeKey(Candidate{
		ID:           "0",
		PageIndex:    4,
		Source:       SourceEditor,
		UID:          "ed-1",
		AnnotationID: "33R",
	})
	pdf := ComputeKey(Candidate{
		ID:           "7",
		PageIndex:    4,
		Source:       SourcePDF,
		AnnotationID: "33R",
	})
	if ed != pdf {
		t.Errorf("editor key %q and pdf key %q differ", ed, pdf)
	}
}
