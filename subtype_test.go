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

import "testing"

func TestSubtypeClasses(t *testing.T) {
	tests := []struct {
		subtype    Subtype
		textMarkup bool
		markup     bool
	}{
		{SubtypeHighlight, true, true},
		{SubtypeUnderline, true, true},
		{SubtypeStrikeOut, true, true},
		{SubtypeSquiggly, true, true},
		{SubtypeFreeText, false, true},
		{SubtypeTypewriter, false, true},
		{SubtypeText, false, true},
		{SubtypePopup, false, false},
		{Subtype("Link"), false, false},
		{Subtype(""), false, false},
	}
	for _, test := range tests {
		t.Run(string(test.subtype), func(t *testing.T) {
			if got := test.subtype.IsTextMarkup(); got != test.textMarkup {
				t.Errorf("IsTextMarkup() = %t, want %t", got, test.textMarkup)
			}
			if got := test.subtype.IsMarkup(); got != test.markup {
				t.Errorf("IsMarkup() = %t, want %t", got, test.markup)
			}
		})
	}
}

func TestInferSubtype(t *testing.T) {
	tests := []struct {
		name    string
		subtype Subtype
		intent  string
		want    Subtype
	}{
		{"typewriter intent", SubtypeFreeText, IntentTypeWriter, SubtypeTypewriter},
		{"plain free text", SubtypeFreeText, "", SubtypeFreeText},
		{"callout intent passes through", SubtypeFreeText, "FreeTextCallout", SubtypeFreeText},
		{"intent ignored on highlight", SubtypeHighlight, IntentTypeWriter, SubtypeHighlight},
		{"no intent", SubtypeUnderline, "", SubtypeUnderline},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := InferSubtype(test.subtype, test.intent); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}
