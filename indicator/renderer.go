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
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/comment"
	"seehuhn.de/go/pdfview/metrics"
)

// CSS classes and attributes written by the renderer.  The host's
// stylesheet and input layer key off these.
const (
	// ClassAnchor marks the element carrying a note's visible marker
	// icon: an editor widget, an annotation element, or the primary
	// text span.
	ClassAnchor = "note-anchor"

	// ClassHasNote marks every text span a note's marker rectangle
	// covers, for the hover affordance.
	ClassHasNote = "has-note"

	// ClassMarker marks injected detached markers.
	ClassMarker = "note-marker"

	// ClassPulse is toggled for the pulse focus effect.
	ClassPulse = "note-pulse"

	// AttrKeys holds the stable keys of all comments attached to the
	// element, pipe-delimited.
	AttrKeys = "data-note-keys"

	// AttrPrimary holds the stable key of the comment whose text the
	// element previews.
	AttrPrimary = "data-note-primary"

	// AttrPreview holds the preview text.
	AttrPreview = "data-note-preview"
)

// Options configures a Renderer.  The zero value uses the defaults given
// with each field.
type Options struct {
	// ClusterIoU is the minimum intersection-over-union at which two
	// detached comments share a cluster.  Default: 0.22.
	ClusterIoU float64 `yaml:"clusterIoU"`

	// ClusterCenterDist is the center distance, as a page fraction and
	// per axis, below which two detached comments share a cluster even
	// without sufficient overlap.  Default: 0.028.
	ClusterCenterDist float64 `yaml:"clusterCenterDist"`

	// MinMarkerDistance is the minimum pixel distance between detached
	// markers on one page.  Default: 24.
	MinMarkerDistance float64 `yaml:"minMarkerDistance"`

	// MarkerRadius keeps marker centers this many pixels away from the
	// page edges.  Default: 12.
	MarkerRadius float64 `yaml:"markerRadius"`

	// AnchorTolerance is the pixel slack used when matching a note's
	// marker rectangle against text spans.  Default: 2.
	AnchorTolerance float64 `yaml:"anchorTolerance"`

	// PulseDuration is how long the pulse focus effect stays on.
	// Default: 900ms.
	PulseDuration time.Duration `yaml:"pulseDuration"`

	// Logger receives debug output.  Nil disables logging.
	Logger *zap.Logger `yaml:"-"`
}

const (
	defaultClusterIoU        = 0.22
	defaultClusterCenterDist = 0.028
	defaultMinMarkerDistance = 24
	defaultMarkerRadius      = 12
	defaultAnchorTolerance   = 2
	defaultPulseDuration     = 900 * time.Millisecond
)

// A detachedGroup is one visual indicator which found no anchor and
// awaits clustered placement.
type detachedGroup struct {
	rect     *pdfview.Rect
	comments []*comment.Summary
}

// A Renderer projects the reconciled comment list onto a [Surface].  Each
// rebuild clears everything the previous rebuild produced and starts
// over; there is no incremental diffing.
//
// All exported methods are safe for concurrent use.
type Renderer struct {
	surface Surface
	sync    *comment.Synchronizer
	log     *zap.Logger

	clusterIoU        float64
	clusterCenterDist float64
	minMarkerDistance float64
	markerRadius      float64
	anchorTolerance   float64
	pulseDuration     time.Duration

	mu         sync.Mutex
	tagged     map[int][]Node
	pages      map[int]bool
	nodesByKey map[comment.Key][]Node
	pulseGen   uint64
	pulseTimer *time.Timer
	pulsed     []Node

	onOpen func(*comment.Summary)
	onMenu func(*ContextMenuRequest)
}

// A ContextMenuRequest asks the host to show the context menu for a
// comment at the given pixel position.
type ContextMenuRequest struct {
	Comment *comment.Summary
	At      vec.Vec2
}

// NewRenderer creates a renderer for one surface.  If sync is non-nil the
// renderer subscribes to its comment lists and rebuilds after every
// committed pass; passing a nil sync leaves rebuild scheduling to the
// caller, but disables interaction resolution.
func NewRenderer(surface Surface, sync *comment.Synchronizer, opt *Options) *Renderer {
	if opt == nil {
		opt = &Options{}
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &Renderer{
		surface:           surface,
		sync:              sync,
		log:               log,
		clusterIoU:        opt.ClusterIoU,
		clusterCenterDist: opt.ClusterCenterDist,
		minMarkerDistance: opt.MinMarkerDistance,
		markerRadius:      opt.MarkerRadius,
		anchorTolerance:   opt.AnchorTolerance,
		pulseDuration:     opt.PulseDuration,
		tagged:            make(map[int][]Node),
		pages:             make(map[int]bool),
		nodesByKey:        make(map[comment.Key][]Node),
	}
	if r.clusterIoU <= 0 {
		r.clusterIoU = defaultClusterIoU
	}
	if r.clusterCenterDist <= 0 {
		r.clusterCenterDist = defaultClusterCenterDist
	}
	if r.minMarkerDistance <= 0 {
		r.minMarkerDistance = defaultMinMarkerDistance
	}
	if r.markerRadius <= 0 {
		r.markerRadius = defaultMarkerRadius
	}
	if r.anchorTolerance <= 0 {
		r.anchorTolerance = defaultAnchorTolerance
	}
	if r.pulseDuration <= 0 {
		r.pulseDuration = defaultPulseDuration
	}

	if sync != nil {
		sync.OnComments(r.Rebuild)
	}
	return r
}

// OnOpenNote registers the handler called when a note indicator is
// activated.
func (r *Renderer) OnOpenNote(fn func(*comment.Summary)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onOpen = fn
}

// OnContextMenu registers the handler called when the context menu is
// requested on a note indicator.
func (r *Renderer) OnContextMenu(fn func(*ContextMenuRequest)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onMenu = fn
}

// Rebuild clears all rendered indicators and rebuilds them from the
// given comment list.  Only comments with HasNote set produce
// indicators.  A nil list just clears.
func (r *Renderer) Rebuild(comments []*comment.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLocked()
	if len(comments) == 0 {
		return
	}

	// one visual indicator can stand for several stable keys, e.g. a
	// highlight editor and its saved counterpart at the same spot
	var order []string
	groups := make(map[string][]*comment.Summary)
	for _, c := range comments {
		if c == nil || !c.HasNote {
			continue
		}
		k := visualKey(c)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	var editorAnchors, annotAnchors, textAnchors, detachedCount int
	detached := make(map[int][]*detachedGroup)

	for _, k := range order {
		group := groups[k]
		page := group[0].PageNumber
		r.pages[page] = true
		switch {
		case r.anchorToEditor(page, group):
			editorAnchors++
		case r.anchorToAnnotation(page, group):
			annotAnchors++
		case r.anchorToTextSpans(page, group):
			textAnchors++
		default:
			rect := groupRect(group)
			if rect == nil {
				// no anchor and no geometry; nothing can be shown
				continue
			}
			detached[page] = append(detached[page], &detachedGroup{
				rect:     rect,
				comments: group,
			})
			detachedCount++
		}
	}

	clusterCount := 0
	for _, page := range slices.Sorted(maps.Keys(detached)) {
		clusters := clusterDetached(detached[page], r.clusterIoU, r.clusterCenterDist)
		r.placeClusters(page, clusters)
		clusterCount += len(clusters)
	}

	metrics.RecordRebuild(editorAnchors, annotAnchors, textAnchors, detachedCount, clusterCount)
	r.log.Debug("indicators rebuilt",
		zap.Int("editor", editorAnchors),
		zap.Int("annotation", annotAnchors),
		zap.Int("text", textAnchors),
		zap.Int("detached", detachedCount),
		zap.Int("clusters", clusterCount))
}

// Clear removes every rendered indicator.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *Renderer) clearLocked() {
	r.stopPulseLocked()
	for _, nodes := range r.tagged {
		for _, n := range nodes {
			n.RemoveClass(ClassAnchor)
			n.RemoveClass(ClassHasNote)
			n.RemoveClass(ClassPulse)
			n.DelAttr(AttrKeys)
			n.DelAttr(AttrPrimary)
			n.DelAttr(AttrPreview)
		}
	}
	for page := range r.pages {
		r.surface.ClearMarkers(page)
	}
	r.tagged = make(map[int][]Node)
	r.pages = make(map[int]bool)
	r.nodesByKey = make(map[comment.Key][]Node)
}

// visualKey is the deduplication key of the visible indicator.  It
// prefers the same identifiers as the stable key but is page-scoped by
// page number, so that two summaries describing the same on-page element
// collapse onto one indicator.
func visualKey(c *comment.Summary) string {
	switch {
	case c.AnnotationID != "":
		return fmt.Sprintf("n%d/a:%s", c.PageNumber, c.AnnotationID)
	case c.UID != "":
		return fmt.Sprintf("n%d/u:%s", c.PageNumber, c.UID)
	default:
		return fmt.Sprintf("n%d/k:%s", c.PageNumber, c.Key)
	}
}

// groupRect returns the marker rectangle of a visual group: the primary
// comment's if it has one, else the first available.
func groupRect(group []*comment.Summary) *pdfview.Rect {
	if r := primaryComment(group).MarkerRect; r != nil {
		return r
	}
	for _, c := range group {
		if c.MarkerRect != nil {
			return c.MarkerRect
		}
	}
	return nil
}

func (r *Renderer) anchorToEditor(page int, group []*comment.Summary) bool {
	for _, c := range group {
		if c.UID == "" {
			continue
		}
		node := r.surface.EditorAnchor(page, c.UID)
		if node == nil {
			continue
		}
		r.tagAnchor(page, node, group)
		return true
	}
	return false
}

func (r *Renderer) anchorToAnnotation(page int, group []*comment.Summary) bool {
	for _, c := range group {
		if c.AnnotationID == "" {
			continue
		}
		node := r.surface.AnnotationAnchor(page, c.AnnotationID)
		if node == nil {
			continue
		}
		r.tagAnchor(page, node, group)
		return true
	}
	return false
}

func (r *Renderer) anchorToTextSpans(page int, group []*comment.Summary) bool {
	rect := groupRect(group)
	if rect == nil {
		return false
	}
	pb, ok := r.surface.PageBounds(page)
	if !ok {
		return false
	}
	target := pixelBounds(rect, pb)

	var hits []Node
	for _, span := range r.surface.TextSpans(page) {
		if overlaps(target, span.Bounds(), r.anchorTolerance) {
			hits = append(hits, span)
		}
	}
	if len(hits) == 0 {
		return false
	}

	// the topmost span carries the visible icon; among equals the
	// rightmost wins
	primary := hits[0]
	for _, span := range hits[1:] {
		b, pbh := span.Bounds(), primary.Bounds()
		if b.Y < pbh.Y || (b.Y == pbh.Y && b.Right() > pbh.Right()) {
			primary = span
		}
	}

	for _, span := range hits {
		span.AddClass(ClassHasNote)
		r.track(page, span, group)
	}
	r.tagAnchor(page, primary, group)
	return true
}

// tagAnchor marks node as the visible anchor of the group and stores the
// identity attributes interaction resolution needs.
func (r *Renderer) tagAnchor(page int, node Node, group []*comment.Summary) {
	node.AddClass(ClassAnchor)
	node.SetAttr(AttrKeys, joinKeys(group))
	p := primaryComment(group)
	node.SetAttr(AttrPrimary, string(p.Key))
	node.SetAttr(AttrPreview, p.Text)
	r.track(page, node, group)
}

// track records a touched node for the next clear and for pulse lookup.
func (r *Renderer) track(page int, node Node, group []*comment.Summary) {
	for _, n := range r.tagged[page] {
		if n == node {
			return
		}
	}
	r.tagged[page] = append(r.tagged[page], node)
	for _, c := range group {
		r.nodesByKey[c.Key] = append(r.nodesByKey[c.Key], node)
	}
}

func (r *Renderer) placeClusters(page int, clusters []*cluster) {
	pb, ok := r.surface.PageBounds(page)
	if !ok {
		return
	}
	slices.SortFunc(clusters, compareClusters)

	var placed []vec.Vec2
	for _, cl := range clusters {
		anchor := pixelBounds(cl.anchor, pb)
		at := vec.Vec2{X: anchor.Right(), Y: anchor.Y}
		pos := placeMarker(at, placed, pb, r.minMarkerDistance, r.markerRadius)
		placed = append(placed, pos)

		node := r.surface.CreateMarker(page, pos)
		if node == nil {
			continue
		}
		node.AddClass(ClassMarker)
		node.SetAttr(AttrKeys, joinKeys(cl.comments))
		p := primaryComment(cl.comments)
		node.SetAttr(AttrPrimary, string(p.Key))
		preview := p.Text
		if extra := len(cl.comments) - 1; extra > 0 {
			preview = fmt.Sprintf("%s +%d more", preview, extra)
		}
		node.SetAttr(AttrPreview, preview)
		for _, c := range cl.comments {
			r.nodesByKey[c.Key] = append(r.nodesByKey[c.Key], node)
		}
	}
}

func joinKeys(cs []*comment.Summary) string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = string(c.Key)
	}
	return strings.Join(keys, "|")
}

// HandleActivate resolves the comment behind an activated indicator
// element and emits the open-note event.  Elements without note
// attributes are ignored.
func (r *Renderer) HandleActivate(node Node) {
	c := r.resolve(node)
	if c == nil {
		return
	}
	r.mu.Lock()
	fn := r.onOpen
	r.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

// HandleContextMenu resolves the comment behind an indicator element and
// emits the context-menu event with the click position.
func (r *Renderer) HandleContextMenu(node Node, at vec.Vec2) {
	c := r.resolve(node)
	if c == nil {
		return
	}
	r.mu.Lock()
	fn := r.onMenu
	r.mu.Unlock()
	if fn != nil {
		fn(&ContextMenuRequest{Comment: c, At: at})
	}
}

// resolve maps an indicator element back to its comment via the key
// attributes, preferring the primary key.
func (r *Renderer) resolve(node Node) *comment.Summary {
	if node == nil || r.sync == nil {
		return nil
	}
	if k := node.Attr(AttrPrimary); k != "" {
		if c := r.sync.FindByKey(comment.Key(k)); c != nil {
			return c
		}
	}
	for _, k := range strings.Split(node.Attr(AttrKeys), "|") {
		if k == "" {
			continue
		}
		if c := r.sync.FindByKey(comment.Key(k)); c != nil {
			return c
		}
	}
	return nil
}

// Pulse draws attention to a comment by toggling the pulse class on
// every element tagged with its key for the pulse duration.  A second
// Pulse replaces the first; only one pulse is in flight at a time.
func (r *Renderer) Pulse(key comment.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopPulseLocked()
	targets := r.nodesByKey[key]
	if len(targets) == 0 {
		return
	}
	for _, n := range targets {
		n.AddClass(ClassPulse)
	}
	r.pulsed = slices.Clone(targets)
	r.pulseGen++
	gen := r.pulseGen
	r.pulseTimer = time.AfterFunc(r.pulseDuration, func() {
		r.endPulse(gen)
	})
}

func (r *Renderer) endPulse(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// a replaced pulse may still fire if Stop raced its expiry
	if gen != r.pulseGen {
		return
	}
	for _, n := range r.pulsed {
		n.RemoveClass(ClassPulse)
	}
	r.pulsed = nil
	r.pulseTimer = nil
}

func (r *Renderer) stopPulseLocked() {
	if r.pulseTimer == nil {
		return
	}
	r.pulseTimer.Stop()
	r.pulseTimer = nil
	r.pulseGen++
	for _, n := range r.pulsed {
		n.RemoveClass(ClassPulse)
	}
	r.pulsed = nil
}
