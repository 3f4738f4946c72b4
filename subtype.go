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

// Subtype identifies the kind of an annotation, using the names from the
// annotation dictionary's Subtype entry.
type Subtype string

// These constants list the annotation subtypes the comment layer knows how
// to summarize.  Other subtypes pass through Comment summaries unchanged but
// never contribute note indicators.
const (
	SubtypeHighlight Subtype = "Highlight"
	SubtypeUnderline Subtype = "Underline"
	SubtypeStrikeOut Subtype = "StrikeOut"
	SubtypeSquiggly  Subtype = "Squiggly"
	SubtypeFreeText  Subtype = "FreeText"
	SubtypeText      Subtype = "Text"
	SubtypePopup     Subtype = "Popup"

	// SubtypeTypewriter is not an annotation dictionary subtype of its own:
	// it is the summary form of a FreeText annotation whose intent is
	// "FreeTextTypeWriter".  Keeping it distinct lets comment lists show
	// typewriter notes with their own icon.
	SubtypeTypewriter Subtype = "Typewriter"
)

// IntentTypeWriter is the Markup.Intent value which marks a FreeText
// annotation as a typewriter-style note.
const IntentTypeWriter = "FreeTextTypeWriter"

// IsTextMarkup reports whether the subtype marks a span of page text
// (highlight, underline, strike-out or squiggly underline).  Text markup
// annotations anchor note indicators to the text they cover.
func (s Subtype) IsTextMarkup() bool {
	switch s {
	case SubtypeHighlight, SubtypeUnderline, SubtypeStrikeOut, SubtypeSquiggly:
		return true
	}
	return false
}

// IsMarkup reports whether the subtype can carry a user-visible comment.
func (s Subtype) IsMarkup() bool {
	if s.IsTextMarkup() {
		return true
	}
	switch s {
	case SubtypeFreeText, SubtypeTypewriter, SubtypeText:
		return true
	}
	return false
}

// InferSubtype maps an annotation dictionary subtype and intent to the
// summary subtype.  FreeText annotations with typewriter intent become
// SubtypeTypewriter; everything else passes through unchanged.
func InferSubtype(subtype Subtype, intent string) Subtype {
	if subtype == SubtypeFreeText && intent == IntentTypeWriter {
		return SubtypeTypewriter
	}
	return subtype
}
