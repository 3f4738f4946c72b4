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

import "slices"

// mergePriority ranks a summary for conflict resolution when two records
// collapse onto the same key.  A live editor knows more than the persisted
// state behind it, an actively edited editor more still; among persisted
// records, one with a popup attached carries the note payload and outranks
// a bare annotation.
func mergePriority(s *Summary) int {
	switch {
	case s.Source == SourceEditor && s.Active:
		return 40
	case s.Source == SourceEditor:
		return 30
	case s.LinkedPopup:
		return 20
	default:
		return 10
	}
}

// outranks reports whether a should be the winning record of a merge with
// b: higher priority first, then more recently modified, then the smaller
// key.  With all three equal, a (the existing record) wins.
func outranks(a, b *Summary) bool {
	pa, pb := mergePriority(a), mergePriority(b)
	if pa != pb {
		return pa > pb
	}
	if !a.ModifiedAt.Equal(b.ModifiedAt) {
		return a.ModifiedAt.After(b.ModifiedAt)
	}
	return a.Key <= b.Key
}

// mergeSummaries combines two records of the same logical comment.  Scalar
// fields come from the winning record; identity fields are unioned, flags
// are OR'ed, and the discovery index keeps the earlier position.  Neither
// input is modified.
func mergeSummaries(existing, incoming *Summary) *Summary {
	winner, loser := existing, incoming
	if !outranks(existing, incoming) {
		winner, loser = incoming, existing
	}

	m := winner.Clone()
	if m.MarkerRect == nil && loser.MarkerRect != nil {
		r := *loser.MarkerRect
		m.MarkerRect = &r
	}
	if m.UID == "" {
		m.UID = loser.UID
	}
	if m.AnnotationID == "" {
		m.AnnotationID = loser.AnnotationID
	}
	m.HasNote = m.HasNote || loser.HasNote
	m.Active = m.Active || loser.Active
	m.LinkedPopup = m.LinkedPopup || loser.LinkedPopup
	if loser.SortIndex < m.SortIndex {
		m.SortIndex = loser.SortIndex
	}
	return m
}

// Dedupe reduces a raw summary list to one record per key.  Records with
// the same key are merged pairwise in input order; the result is sorted by
// merge priority, then modification time (newest first), then key.
//
// Dedupe is idempotent: applying it to its own output returns the same
// list.
func Dedupe(summaries []*Summary) []*Summary {
	byKey := make(map[Key]*Summary)
	var order []Key
	for _, s := range summaries {
		if s == nil {
			continue
		}
		if prev, ok := byKey[s.Key]; ok {
			byKey[s.Key] = mergeSummaries(prev, s)
		} else {
			byKey[s.Key] = s.Clone()
			order = append(order, s.Key)
		}
	}

	result := make([]*Summary, 0, len(order))
	for _, key := range order {
		result = append(result, byKey[key])
	}
	slices.SortStableFunc(result, func(a, b *Summary) int {
		if pa, pb := mergePriority(a), mergePriority(b); pa != pb {
			return pb - pa
		}
		if !a.ModifiedAt.Equal(b.ModifiedAt) {
			if a.ModifiedAt.After(b.ModifiedAt) {
				return -1
			}
			return 1
		}
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return result
}
