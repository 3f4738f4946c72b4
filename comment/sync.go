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

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/metrics"
	"seehuhn.de/go/pdfview/overrides"
)

// Options configures a Synchronizer.  The zero value uses the defaults
// given with each field.
type Options struct {
	// DataDebounce is the coalescing window for data-triggered syncs
	// (annotation or editor changes).  Default: 140ms.
	DataDebounce time.Duration `yaml:"dataDebounce"`

	// LayoutDebounce is the coalescing window for layout-triggered
	// syncs.  Page structure settles faster than annotation data
	// refetches, so this window is shorter.  Default: 70ms.
	LayoutDebounce time.Duration `yaml:"layoutDebounce"`

	// MaxFingerprintDistance is the Hamming distance up to which a
	// comment without durable IDs adopts its key from the previous
	// pass.  Default: 6.
	MaxFingerprintDistance int `yaml:"maxFingerprintDistance"`

	// Logger receives debug output.  Nil disables logging.
	Logger *zap.Logger `yaml:"-"`
}

const (
	defaultDataDebounce   = 140 * time.Millisecond
	defaultLayoutDebounce = 70 * time.Millisecond
)

// A Synchronizer reconciles live editor state with persisted annotations
// and publishes the merged comment list.  Reconciliation passes run on
// background goroutines; rapid triggers are debounced, and a pass which is
// superseded while fetching page data abandons itself without writing.
//
// All exported methods are safe for concurrent use.
type Synchronizer struct {
	editors pdfview.EditorManager
	doc     pdfview.Document
	store   overrides.Store
	log     *zap.Logger
	session string

	dataDebounce   time.Duration
	layoutDebounce time.Duration

	deb    *debouncer
	token  atomic.Uint64
	closed atomic.Bool

	mu        sync.Mutex
	reg       *Registry
	listeners []func([]*Summary)

	// emitMu serializes listener notification; lastEmitted keeps a
	// slow pass from publishing over a newer one.
	emitMu      sync.Mutex
	lastEmitted uint64
}

// NewSynchronizer creates a synchronizer for one document session.  The
// store may be nil if the viewer keeps no subtype overrides.  No pass runs
// until the first ScheduleSync call, so the caller can register listeners
// first.
//
// Call Close when the document is closed or replaced.
func NewSynchronizer(editors pdfview.EditorManager, doc pdfview.Document, store overrides.Store, opt *Options) *Synchronizer {
	if opt == nil {
		opt = &Options{}
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	session := uuid.NewString()

	s := &Synchronizer{
		editors:        editors,
		doc:            doc,
		store:          store,
		log:            log.With(zap.String("session", session)),
		session:        session,
		dataDebounce:   opt.DataDebounce,
		layoutDebounce: opt.LayoutDebounce,
		reg:            NewRegistry(opt.MaxFingerprintDistance),
	}
	if s.dataDebounce <= 0 {
		s.dataDebounce = defaultDataDebounce
	}
	if s.layoutDebounce <= 0 {
		s.layoutDebounce = defaultLayoutDebounce
	}
	s.deb = newDebouncer(func() {
		s.runPass(s.token.Add(1))
	})
	return s
}

// SessionID returns an opaque ID identifying this synchronizer in log
// output.
func (s *Synchronizer) SessionID() string {
	return s.session
}

// OnComments registers a listener for the reconciled comment list.  After
// each committed pass the listener receives the full deduplicated list;
// on Close it receives nil.  Listeners are called sequentially from
// background goroutines and must not call Close.
func (s *Synchronizer) OnComments(fn func([]*Summary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// ScheduleSync requests a reconciliation pass.  Requests are coalesced:
// only the last request within the debounce window starts a pass.  With
// immediate set the debounce is bypassed and a pass starts right away,
// for latency-sensitive flows such as the user having just typed a note.
func (s *Synchronizer) ScheduleSync(immediate bool) {
	if s.closed.Load() {
		return
	}
	if immediate {
		metrics.RecordSyncTrigger("immediate")
		s.deb.cancel()
		go s.runPass(s.token.Add(1))
		return
	}
	metrics.RecordSyncTrigger("data")
	s.deb.schedule(s.dataDebounce)
}

// ScheduleLayoutSync requests a reconciliation pass after a change to the
// rendered page structure.  It shares the debounce with ScheduleSync but
// uses the shorter layout window.
func (s *Synchronizer) ScheduleLayoutSync() {
	if s.closed.Load() {
		return
	}
	metrics.RecordSyncTrigger("layout")
	s.deb.schedule(s.layoutDebounce)
}

// Close tears the synchronizer down: pending debounced passes are
// cancelled, in-flight passes are invalidated, the registry is cleared,
// and listeners receive one final nil list.  No stale comment state
// survives into the next document.
func (s *Synchronizer) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.deb.close()
	token := s.token.Add(1)

	s.mu.Lock()
	s.reg.Clear()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	s.emitMu.Lock()
	if token > s.lastEmitted {
		s.lastEmitted = token
	}
	for _, fn := range listeners {
		fn(nil)
	}
	s.emitMu.Unlock()

	s.log.Debug("synchronizer closed")
}

// Comments returns the reconciled comment list of the last committed
// pass.  The summaries are shared; treat them as read-only.
func (s *Synchronizer) Comments() []*Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reg.Comments())
}

// CommentsOnPage returns the comments of one page (1-based), in cache
// order.
func (s *Synchronizer) CommentsOnPage(pageNumber int) []*Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*Summary
	for _, c := range s.reg.Comments() {
		if c.PageNumber == pageNumber {
			result = append(result, c)
		}
	}
	return result
}

// Count returns the number of comments in the cache.
func (s *Synchronizer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reg.Comments())
}

// FindByKey returns the cached summary with the given key, or nil.
func (s *Synchronizer) FindByKey(key Key) *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.FindByKey(key)
}

// FindByAnnotationID returns the cached summary for a persisted
// annotation on the given page, or nil.
func (s *Synchronizer) FindByAnnotationID(annotationID string, pageIndex int) *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.FindByAnnotationID(annotationID, pageIndex)
}

var errNoOverrideStore = errors.New("no subtype override store configured")

// SetSubtypeOverride records that the user chose a different subtype for a
// persisted annotation than the inferred one, and triggers an immediate
// resync so the change shows up.
func (s *Synchronizer) SetSubtypeOverride(annotationID string, subtype pdfview.Subtype) error {
	if s.store == nil {
		return errNoOverrideStore
	}
	if err := s.store.Set(annotationID, subtype); err != nil {
		return fmt.Errorf("subtype override: %w", err)
	}
	s.ScheduleSync(true)
	return nil
}

// RemoveSubtypeOverride reverts an annotation to its inferred subtype.
func (s *Synchronizer) RemoveSubtypeOverride(annotationID string) error {
	if s.store == nil {
		return errNoOverrideStore
	}
	if err := s.store.Delete(annotationID); err != nil {
		return fmt.Errorf("subtype override: %w", err)
	}
	s.ScheduleSync(true)
	return nil
}

// stale reports whether a newer pass has been issued since token.
func (s *Synchronizer) stale(token uint64) bool {
	return token != s.token.Load()
}

// runPass executes one reconciliation pass.  Editors are walked first,
// synchronously; then each page's persisted annotations are fetched, with
// a staleness check after every fetch.  The commit and the listener
// notification happen only if the pass is still the newest.
func (s *Synchronizer) runPass(token uint64) {
	if s.closed.Load() {
		return
	}
	start := time.Now()
	ctx := context.Background()

	s.mu.Lock()
	rv := s.reg.BeginPass()
	s.mu.Unlock()

	numPages := s.doc.NumPages()
	activeUID := s.editors.ActiveUID()

	var raw []*Summary
	sortIndex := 0

	for pageIndex := 0; pageIndex < numPages; pageIndex++ {
		for i, ed := range s.editors.Editors(pageIndex) {
			raw = append(raw, s.editorSummary(rv, ed, pageIndex, i, sortIndex, activeUID))
			sortIndex++
		}
	}

	for pageIndex := 0; pageIndex < numPages; pageIndex++ {
		page, err := s.doc.Page(ctx, pageIndex)
		if s.stale(token) {
			metrics.RecordPassStale()
			return
		}
		if err != nil {
			s.log.Debug("page unavailable",
				zap.Int("page", pageIndex), zap.Error(err))
			continue
		}
		annots, err := page.Annotations(ctx)
		if s.stale(token) {
			metrics.RecordPassStale()
			return
		}
		if err != nil {
			s.log.Debug("annotation fetch failed",
				zap.Int("page", pageIndex), zap.Error(err))
			continue
		}
		view := page.View()
		for i, rec := range pdfview.PairPopups(annots) {
			if sum := s.pdfSummary(rv, rec, pageIndex, i, sortIndex, view); sum != nil {
				raw = append(raw, sum)
				sortIndex++
			}
		}
	}

	list := Dedupe(raw)

	s.mu.Lock()
	if s.stale(token) {
		s.mu.Unlock()
		metrics.RecordPassStale()
		return
	}
	s.reg.Commit(list)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	s.emit(token, list, listeners)

	metrics.RecordPassCompleted(time.Since(start).Seconds(), len(list), len(raw)-len(list))
	s.log.Debug("reconciliation pass complete",
		zap.Uint64("pass", token),
		zap.Int("raw", len(raw)),
		zap.Int("comments", len(list)),
		zap.Duration("elapsed", time.Since(start)))
}

// emit notifies listeners, in pass order.  A pass which committed but lost
// the race to a newer pass's emission stays silent.
func (s *Synchronizer) emit(token uint64, list []*Summary, listeners []func([]*Summary)) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	if token <= s.lastEmitted {
		return
	}
	s.lastEmitted = token
	for _, fn := range listeners {
		fn(list)
	}
}

// editorSummary builds the summary for one live editor.
func (s *Synchronizer) editorSummary(rv *Resolver, ed *pdfview.Editor, pageIndex, perPage, sortIndex int, activeUID string) *Summary {
	rect := ed.MarkerRect.Normalize()
	text := strings.TrimSpace(ed.Text)

	key := rv.Resolve(Candidate{
		ID:           strconv.Itoa(perPage),
		PageIndex:    pageIndex,
		Source:       SourceEditor,
		UID:          ed.UID,
		AnnotationID: ed.AnnotationID,
		Text:         text,
		MarkerRect:   rect,
	})

	active := ed.UID != "" && ed.UID == activeUID
	if text == "" && active {
		// mid-edit the editor can report empty text; keep showing the
		// last known text so the indicator does not flicker away
		text = rv.RememberedText(key)
	}

	subtype := s.effectiveSubtype(ed.Subtype, ed.AnnotationID)

	identity := ed.UID
	if identity == "" {
		identity = fmt.Sprintf("e%d:%d", pageIndex, perPage)
	}

	return &Summary{
		IdentityID:   identity,
		Key:          key,
		SortIndex:    sortIndex,
		PageIndex:    pageIndex,
		PageNumber:   pageIndex + 1,
		Text:         text,
		Subtype:      subtype,
		Author:       ed.Author,
		ModifiedAt:   ed.Modified,
		Color:        pdfview.NormalizeColor(ed.Color, ed.Opacity),
		UID:          ed.UID,
		AnnotationID: ed.AnnotationID,
		Source:       SourceEditor,
		HasNote:      subtype.IsTextMarkup() && text != "",
		MarkerRect:   rect,
		Active:       active,
	}
}

// pdfSummary builds the summary for one persisted markup record, or nil
// if the record cannot carry a comment.
func (s *Synchronizer) pdfSummary(rv *Resolver, rec *pdfview.MarkupRecord, pageIndex, perPage, sortIndex int, view [4]float64) *Summary {
	text := rec.Text()
	if !rec.Annot.Subtype.IsMarkup() && text == "" {
		return nil
	}
	rect := pdfview.FromPDFRect(rec.Annot.Rect, view)

	key := rv.Resolve(Candidate{
		ID:           strconv.Itoa(perPage),
		PageIndex:    pageIndex,
		Source:       SourcePDF,
		AnnotationID: rec.Annot.ID,
		Text:         text,
		MarkerRect:   rect,
	})

	subtype := s.effectiveSubtype(rec.SummarySubtype(), rec.Annot.ID)

	return &Summary{
		IdentityID:   fmt.Sprintf("a%d:%d", pageIndex, perPage),
		Key:          key,
		SortIndex:    sortIndex,
		PageIndex:    pageIndex,
		PageNumber:   pageIndex + 1,
		Text:         text,
		Subtype:      subtype,
		Author:       rec.AuthorName(),
		ModifiedAt:   rec.ModifiedAt(),
		Color:        pdfview.NormalizeColor(rec.Annot.Color, rec.Annot.Opacity),
		AnnotationID: rec.Annot.ID,
		Source:       SourcePDF,
		HasNote:      subtype.IsTextMarkup() && text != "",
		MarkerRect:   rect,
		LinkedPopup:  rec.HasLinkedPopup(),
	}
}

// effectiveSubtype applies the user's subtype override, if one is stored
// for the annotation.  Store errors are logged and ignored; the inferred
// subtype is good enough for this pass.
func (s *Synchronizer) effectiveSubtype(inferred pdfview.Subtype, annotationID string) pdfview.Subtype {
	if s.store == nil || annotationID == "" {
		return inferred
	}
	subtype, ok, err := s.store.Get(annotationID)
	if err != nil {
		s.log.Debug("subtype override lookup failed",
			zap.String("annotation", annotationID), zap.Error(err))
		return inferred
	}
	if ok {
		return subtype
	}
	return inferred
}
