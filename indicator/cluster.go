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
	"slices"
	"strings"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/comment"
)

// A cluster groups detached comments whose marker rectangles sit close
// together, so that one free-floating marker can represent all of them.
// The anchor is the bounding union of the member rectangles, in
// page-fraction space.
type cluster struct {
	anchor   *pdfview.Rect
	comments []*comment.Summary
}

// clusterDetached groups detached comments into clusters.  A comment
// joins the first cluster whose anchor it overlaps enough (IoU at least
// iouMin) or whose anchor center is within centerMax on both axes; the
// cluster's anchor grows by bounding union with each member.
func clusterDetached(items []*detachedGroup, iouMin, centerMax float64) []*cluster {
	var clusters []*cluster
	for _, it := range items {
		var home *cluster
		for _, cl := range clusters {
			if pdfview.IoU(cl.anchor, it.rect) >= iouMin || closeCenters(cl.anchor, it.rect, centerMax) {
				home = cl
				break
			}
		}
		if home == nil {
			r := *it.rect
			clusters = append(clusters, &cluster{
				anchor:   &r,
				comments: slices.Clone(it.comments),
			})
			continue
		}
		home.anchor = pdfview.Union(home.anchor, it.rect)
		home.comments = append(home.comments, it.comments...)
	}
	return clusters
}

func closeCenters(a, b *pdfview.Rect, max float64) bool {
	d := pdfview.CenterDistance(a, b)
	return d.X <= max && d.Y <= max
}

// compareClusters orders clusters for placement: topmost anchor first,
// then leftmost, then the primary comment's key.  Placement is greedy in
// this order, so the order must be reproducible.
func compareClusters(a, b *cluster) int {
	switch {
	case a.anchor.Top < b.anchor.Top:
		return -1
	case a.anchor.Top > b.anchor.Top:
		return 1
	}
	switch {
	case a.anchor.Left < b.anchor.Left:
		return -1
	case a.anchor.Left > b.anchor.Left:
		return 1
	}
	ka := primaryComment(a.comments).Key
	kb := primaryComment(b.comments).Key
	return strings.Compare(string(ka), string(kb))
}

// primaryComment picks the comment which drives a shared target's preview
// text: the active one if any, else the most recently modified, else the
// smallest key.
func primaryComment(cs []*comment.Summary) *comment.Summary {
	best := cs[0]
	for _, c := range cs[1:] {
		if previewOutranks(c, best) {
			best = c
		}
	}
	return best
}

func previewOutranks(a, b *comment.Summary) bool {
	if a.Active != b.Active {
		return a.Active
	}
	if !a.ModifiedAt.Equal(b.ModifiedAt) {
		return a.ModifiedAt.After(b.ModifiedAt)
	}
	return a.Key < b.Key
}
