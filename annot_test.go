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
	"testing"
	"time"
)

func TestPairPopups(t *testing.T) {
	annots := []*RawAnnotation{
		{ID: "1R", Subtype: SubtypeHighlight, Popup: "2R"},
		{ID: "2R", Subtype: SubtypePopup, Parent: "1R", Contents: "Review this"},
		{ID: "3R", Subtype: SubtypeUnderline},
		{ID: "4R", Subtype: SubtypePopup, Parent: "3R", Contents: "back-linked"},
		{ID: "5R", Subtype: SubtypePopup, Parent: "99R"},
		{ID: "6R", Subtype: SubtypeText, Contents: "sticky"},
	}
	records := PairPopups(annots)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Annot.ID != "1R" || !records[0].HasLinkedPopup() {
		t.Errorf("record 0: popup not paired via forward reference")
	}
	if records[0].Text() != "Review this" {
		t.Errorf("record 0: wrong text %q", records[0].Text())
	}
	if records[1].Annot.ID != "3R" || !records[1].HasLinkedPopup() {
		t.Errorf("record 1: popup not paired via parent back-reference")
	}
	if records[2].Annot.ID != "6R" || records[2].HasLinkedPopup() {
		t.Errorf("record 2: unexpected pairing")
	}
}

func TestRecordText(t *testing.T) {
	rec := &MarkupRecord{
		Annot: &RawAnnotation{Subtype: SubtypeHighlight, Contents: "  own text \n"},
		Popup: &RawAnnotation{Subtype: SubtypePopup, Contents: "popup text"},
	}
	if got := rec.Text(); got != "own text" {
		t.Errorf("got %q, want %q", got, "own text")
	}

	rec.Annot.Contents = "   "
	if got := rec.Text(); got != "popup text" {
		t.Errorf("got %q, want %q", got, "popup text")
	}
}

func TestRecordAuthor(t *testing.T) {
	rec := &MarkupRecord{
		Annot: &RawAnnotation{Subtype: SubtypeHighlight},
		Popup: &RawAnnotation{Subtype: SubtypePopup, Author: "Erika"},
	}
	if got := rec.AuthorName(); got != "Erika" {
		t.Errorf("got %q, want %q", got, "Erika")
	}
	rec.Annot.Author = "Max"
	if got := rec.AuthorName(); got != "Max" {
		t.Errorf("got %q, want %q", got, "Max")
	}
}

func TestRecordModifiedAt(t *testing.T) {
	rec := &MarkupRecord{
		Annot: &RawAnnotation{
			Subtype: SubtypeHighlight,
			Created: "D:20250101120000Z",
		},
		Popup: &RawAnnotation{
			Subtype:  SubtypePopup,
			Modified: "D:20250301090000Z",
		},
	}

	// falls through to the popup's modification date
	want := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if got := rec.ModifiedAt(); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	// the annotation's own date wins if present
	rec.Annot.Modified = "D:20250401100000Z"
	want = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	if got := rec.ModifiedAt(); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	// unparseable dates count as missing
	rec.Annot.Modified = "last tuesday"
	rec.Popup.Modified = ""
	want = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := rec.ModifiedAt(); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	// no date at all
	rec.Annot.Created = ""
	if got := rec.ModifiedAt(); !got.IsZero() {
		t.Errorf("expected zero time, got %s", got)
	}
}

func TestHasNote(t *testing.T) {
	tests := []struct {
		name string
		rec  *MarkupRecord
		want bool
	}{
		{
			name: "highlight with own text",
			rec: &MarkupRecord{
				Annot: &RawAnnotation{Subtype: SubtypeHighlight, Contents: "note"},
			},
			want: true,
		},
		{
			name: "highlight with popup text",
			rec: &MarkupRecord{
				Annot: &RawAnnotation{Subtype: SubtypeHighlight},
				Popup: &RawAnnotation{Subtype: SubtypePopup, Contents: "note"},
			},
			want: true,
		},
		{
			name: "highlight without text",
			rec: &MarkupRecord{
				Annot: &RawAnnotation{Subtype: SubtypeHighlight},
			},
			want: false,
		},
		{
			name: "free text never shows an indicator",
			rec: &MarkupRecord{
				Annot: &RawAnnotation{Subtype: SubtypeFreeText, Contents: "note"},
			},
			want: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.rec.HasNote(); got != test.want {
				t.Errorf("got %t, want %t", got, test.want)
			}
		})
	}
}

func TestSummarySubtype(t *testing.T) {
	rec := &MarkupRecord{
		Annot: &RawAnnotation{Subtype: SubtypeFreeText, Intent: IntentTypeWriter},
	}
	if got := rec.SummarySubtype(); got != SubtypeTypewriter {
		t.Errorf("got %q, want %q", got, SubtypeTypewriter)
	}
	rec.Annot.Intent = ""
	if got := rec.SummarySubtype(); got != SubtypeFreeText {
		t.Errorf("got %q, want %q", got, SubtypeFreeText)
	}
}
