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

// Package fakepage provides an in-memory implementation of the indicator
// surface for tests.  It records every class, attribute and marker the
// renderer writes, so tests can assert on the rendered result.
package fakepage

import (
	"slices"
	"sync"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfview/indicator"
)

// Surface is an in-memory [indicator.Surface].
type Surface struct {
	mu    sync.Mutex
	pages map[int]*pageState
}

type pageState struct {
	bounds  indicator.Bounds
	editors map[string]*Node
	annots  map[string]*Node
	spans   []*Node
	markers []*Node
}

// NewSurface creates a surface with no rendered pages.
func NewSurface() *Surface {
	return &Surface{pages: make(map[int]*pageState)}
}

// AddPage makes a page available with the given pixel bounds.
func (s *Surface) AddPage(pageNumber int, bounds indicator.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[pageNumber] = &pageState{
		bounds:  bounds,
		editors: make(map[string]*Node),
		annots:  make(map[string]*Node),
	}
}

// AddEditorNode renders an editor widget on a page and returns its node.
func (s *Surface) AddEditorNode(pageNumber int, uid string, bounds indicator.Bounds) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := newNode(bounds)
	s.pages[pageNumber].editors[uid] = n
	return n
}

// AddAnnotationNode renders an annotation-layer element on a page and
// returns its node.
func (s *Surface) AddAnnotationNode(pageNumber int, annotationID string, bounds indicator.Bounds) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := newNode(bounds)
	s.pages[pageNumber].annots[annotationID] = n
	return n
}

// AddSpan renders a text-layer span on a page and returns its node.
func (s *Surface) AddSpan(pageNumber int, bounds indicator.Bounds) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := newNode(bounds)
	p := s.pages[pageNumber]
	p.spans = append(p.spans, n)
	return n
}

// Markers returns the markers currently created on a page, in creation
// order.
func (s *Surface) Markers(pageNumber int) []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil
	}
	return slices.Clone(p.markers)
}

func (s *Surface) Pages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pages []int
	for n := range s.pages {
		pages = append(pages, n)
	}
	slices.Sort(pages)
	return pages
}

func (s *Surface) PageBounds(pageNumber int) (indicator.Bounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageNumber]
	if !ok {
		return indicator.Bounds{}, false
	}
	return p.bounds, true
}

func (s *Surface) EditorAnchor(pageNumber int, uid string) indicator.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil
	}
	n, ok := p.editors[uid]
	if !ok {
		return nil
	}
	return n
}

func (s *Surface) AnnotationAnchor(pageNumber int, annotationID string) indicator.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil
	}
	n, ok := p.annots[annotationID]
	if !ok {
		return nil
	}
	return n
}

func (s *Surface) TextSpans(pageNumber int) []indicator.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil
	}
	spans := make([]indicator.Node, len(p.spans))
	for i, n := range p.spans {
		spans[i] = n
	}
	return spans
}

func (s *Surface) CreateMarker(pageNumber int, at vec.Vec2) indicator.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageNumber]
	if !ok {
		return nil
	}
	n := newNode(indicator.Bounds{X: at.X, Y: at.Y})
	p.markers = append(p.markers, n)
	return n
}

func (s *Surface) ClearMarkers(pageNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pages[pageNumber]; ok {
		p.markers = nil
	}
}

// A Node is one recorded element.  The zero-size bounds of a marker node
// hold the placement position.
type Node struct {
	mu      sync.Mutex
	bounds  indicator.Bounds
	classes map[string]bool
	attrs   map[string]string
}

func newNode(bounds indicator.Bounds) *Node {
	return &Node{
		bounds:  bounds,
		classes: make(map[string]bool),
		attrs:   make(map[string]string),
	}
}

func (n *Node) Bounds() indicator.Bounds {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bounds
}

func (n *Node) AddClass(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.classes[name] = true
}

func (n *Node) RemoveClass(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.classes, name)
}

func (n *Node) HasClass(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.classes[name]
}

func (n *Node) SetAttr(name, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attrs[name] = value
}

func (n *Node) Attr(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attrs[name]
}

func (n *Node) DelAttr(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.attrs, name)
}

// Pos returns the position the node was created at.  Only meaningful for
// marker nodes.
func (n *Node) Pos() vec.Vec2 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return vec.Vec2{X: n.bounds.X, Y: n.bounds.Y}
}

var (
	_ indicator.Surface = (*Surface)(nil)
	_ indicator.Node    = (*Node)(nil)
)
