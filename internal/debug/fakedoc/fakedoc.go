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

// Package fakedoc provides in-memory implementations of the document and
// editor-manager capabilities for tests.
package fakedoc

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"seehuhn.de/go/pdfview"
)

// Document is an in-memory [pdfview.Document].  Annotation data can be
// changed between (or during) reconciliation passes, individual pages can
// be made to fail, and fetches can be gated to hold a pass mid-flight.
type Document struct {
	mu    sync.Mutex
	pages []*pageState
}

type pageState struct {
	annots []*pdfview.RawAnnotation
	view   [4]float64
	err    error

	// gate, when set, blocks the next Annotations call on this page
	// until released.  entered is closed when a fetcher reaches the
	// gate.
	gate    chan struct{}
	entered chan struct{}
}

// NewDocument creates a document with the given number of empty pages.
// All pages use a US Letter view rectangle until changed.
func NewDocument(numPages int) *Document {
	d := &Document{pages: make([]*pageState, numPages)}
	for i := range d.pages {
		d.pages[i] = &pageState{view: [4]float64{0, 0, 612, 792}}
	}
	return d
}

func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pages)
}

func (d *Document) Page(ctx context.Context, pageIndex int) (pdfview.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return nil, fmt.Errorf("no page %d", pageIndex)
	}
	return &page{doc: d, index: pageIndex}, nil
}

// SetAnnotations replaces one page's annotation records.
func (d *Document) SetAnnotations(pageIndex int, annots ...*pdfview.RawAnnotation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[pageIndex].annots = annots
}

// SetView replaces one page's view rectangle.
func (d *Document) SetView(pageIndex int, view [4]float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[pageIndex].view = view
}

// FailPage makes Annotations on the given page return err.  A nil err
// restores normal behavior.
func (d *Document) FailPage(pageIndex int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[pageIndex].err = err
}

// GatePage arranges for the next Annotations call on the given page to
// block.  The returned entered channel is closed when a fetcher reaches
// the gate; calling release lets it continue.  Later fetches on the page
// are not affected.
func (d *Document) GatePage(pageIndex int) (entered <-chan struct{}, release func()) {
	gate := make(chan struct{})
	in := make(chan struct{})
	d.mu.Lock()
	d.pages[pageIndex].gate = gate
	d.pages[pageIndex].entered = in
	d.mu.Unlock()
	return in, func() { close(gate) }
}

type page struct {
	doc   *Document
	index int
}

func (p *page) Annotations(ctx context.Context) ([]*pdfview.RawAnnotation, error) {
	d := p.doc
	d.mu.Lock()
	state := d.pages[p.index]
	gate, entered := state.gate, state.entered
	state.gate, state.entered = nil, nil
	d.mu.Unlock()

	if gate != nil {
		close(entered)
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	state = d.pages[p.index]
	if state.err != nil {
		return nil, state.err
	}
	annots := make([]*pdfview.RawAnnotation, len(state.annots))
	for i, a := range state.annots {
		clone := *a
		annots[i] = &clone
	}
	return annots, nil
}

func (p *page) View() [4]float64 {
	d := p.doc
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pages[p.index].view
}

// Editors is an in-memory [pdfview.EditorManager].
type Editors struct {
	mu     sync.Mutex
	byPage map[int][]*pdfview.Editor
	active string
}

// NewEditors creates an editor manager with no editors.
func NewEditors() *Editors {
	return &Editors{byPage: make(map[int][]*pdfview.Editor)}
}

// Add registers a live editor on a page and returns its UID.  An editor
// without a UID gets a fresh one, the way the viewer's editing layer
// assigns instance IDs.
func (e *Editors) Add(pageIndex int, ed *pdfview.Editor) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ed.UID == "" {
		ed.UID = "ed-" + uuid.NewString()
	}
	e.byPage[pageIndex] = append(e.byPage[pageIndex], ed)
	return ed.UID
}

// Remove drops the editor with the given UID from all pages.
func (e *Editors) Remove(uid string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for pageIndex, list := range e.byPage {
		var keep []*pdfview.Editor
		for _, ed := range list {
			if ed.UID != uid {
				keep = append(keep, ed)
			}
		}
		e.byPage[pageIndex] = keep
	}
	if e.active == uid {
		e.active = ""
	}
}

// Clear removes all editors.
func (e *Editors) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.byPage = make(map[int][]*pdfview.Editor)
	e.active = ""
}

// SetActive marks the editor with the given UID as having input focus.
func (e *Editors) SetActive(uid string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = uid
}

func (e *Editors) Editors(pageIndex int) []*pdfview.Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.byPage[pageIndex]
	result := make([]*pdfview.Editor, len(list))
	for i, ed := range list {
		clone := *ed
		if ed.MarkerRect != nil {
			r := *ed.MarkerRect
			clone.MarkerRect = &r
		}
		result[i] = &clone
	}
	return result
}

func (e *Editors) ActiveUID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

var (
	_ pdfview.Document      = (*Document)(nil)
	_ pdfview.Page          = (*page)(nil)
	_ pdfview.EditorManager = (*Editors)(nil)
)
