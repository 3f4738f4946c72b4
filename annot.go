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
	"strings"
	"time"
)

// RawAnnotation is one annotation record as reported by the document
// backend, before any reconciliation.  Fields follow the annotation
// dictionary entries; string dates keep their PDF "D:" encoding until
// a summary is built.
type RawAnnotation struct {
	// ID identifies the annotation object within the document, for
	// example "123R".  IDs are stable for the lifetime of the loaded
	// document and unique within a page's annotation array.
	ID string

	Subtype Subtype

	// Intent is the Markup.Intent entry, if any.  It refines the
	// subtype, e.g. "FreeTextTypeWriter" for typewriter notes.
	Intent string

	// Rect is the annotation rectangle in PDF user space,
	// [llx, lly, urx, ury].
	Rect [4]float64

	Contents string
	Author   string

	Color   []float64
	Opacity float64

	Created  string
	Modified string

	// Popup is the ID of the linked popup annotation, or empty.
	Popup string

	// Parent is only set on popup records and holds the ID of the
	// markup annotation the popup belongs to.
	Parent string
}

// A MarkupRecord is a non-popup annotation together with its linked popup,
// if one exists.  Note text, author and dates may live on either member of
// the pair, depending on which tool wrote the annotation.
type MarkupRecord struct {
	Annot *RawAnnotation
	Popup *RawAnnotation
}

// PairPopups groups one page's raw annotation records into markup records.
// Popup annotations are folded into their parents and do not appear as
// records of their own; a popup without a resolvable parent is dropped.
// The order of the remaining records is preserved.
func PairPopups(annots []*RawAnnotation) []*MarkupRecord {
	popupByID := make(map[string]*RawAnnotation)
	popupByParent := make(map[string]*RawAnnotation)
	for _, a := range annots {
		if a == nil || a.Subtype != SubtypePopup {
			continue
		}
		if a.ID != "" {
			popupByID[a.ID] = a
		}
		if a.Parent != "" {
			popupByParent[a.Parent] = a
		}
	}

	var records []*MarkupRecord
	for _, a := range annots {
		if a == nil || a.Subtype == SubtypePopup {
			continue
		}
		rec := &MarkupRecord{Annot: a}
		if a.Popup != "" {
			rec.Popup = popupByID[a.Popup]
		}
		if rec.Popup == nil && a.ID != "" {
			// Some writers only link the popup back to its parent.
			rec.Popup = popupByParent[a.ID]
		}
		records = append(records, rec)
	}
	return records
}

// Text returns the note text of the record, taking the annotation's own
// contents first and falling back to the linked popup.  The result is
// trimmed of surrounding white space.
func (r *MarkupRecord) Text() string {
	s := strings.TrimSpace(r.Annot.Contents)
	if s == "" && r.Popup != nil {
		s = strings.TrimSpace(r.Popup.Contents)
	}
	return s
}

// AuthorName returns the author of the record, falling back to the linked
// popup's author when the annotation itself has none.
func (r *MarkupRecord) AuthorName() string {
	if r.Annot.Author != "" {
		return r.Annot.Author
	}
	if r.Popup != nil {
		return r.Popup.Author
	}
	return ""
}

// ModifiedAt returns the best available time stamp for the record:
// the annotation's modification date, then the popup's, then either
// creation date.  Unparseable dates count as missing; the zero time is
// returned when no date is available at all.
func (r *MarkupRecord) ModifiedAt() time.Time {
	candidates := []string{r.Annot.Modified}
	if r.Popup != nil {
		candidates = append(candidates, r.Popup.Modified)
	}
	candidates = append(candidates, r.Annot.Created)
	if r.Popup != nil {
		candidates = append(candidates, r.Popup.Created)
	}
	for _, s := range candidates {
		t, err := ParseDate(s)
		if err == nil && !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

// HasLinkedPopup reports whether a popup annotation is attached to the
// record.
func (r *MarkupRecord) HasLinkedPopup() bool {
	return r.Popup != nil
}

// HasNote reports whether the record should surface a note indicator:
// only text markup carrying a non-empty note payload qualifies.
func (r *MarkupRecord) HasNote() bool {
	return r.Annot.Subtype.IsTextMarkup() && r.Text() != ""
}

// SummarySubtype returns the subtype the comment layer should report for
// the record, applying intent refinement.
func (r *MarkupRecord) SummarySubtype() Subtype {
	return InferSubtype(r.Annot.Subtype, r.Annot.Intent)
}
