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
	"sync/atomic"

	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/comment"
)

// An Observer turns structural changes of the rendered viewer into
// resync requests.  Annotation layers, editors and text layers attach
// asynchronously after a page renders, silently invalidating indicators;
// the host forwards its change records here, and qualifying ones trigger
// the synchronizer's short layout debounce.  Unrelated churn is dropped
// so that it cannot cause sync storms.
type Observer struct {
	sync     *comment.Synchronizer
	renderer *Renderer
	log      *zap.Logger
	closed   atomic.Bool
}

// NewObserver creates an observer feeding the given synchronizer.  The
// renderer is used by Teardown to drop rendered state; logger may be
// nil.
func NewObserver(sync *comment.Synchronizer, renderer *Renderer, logger *zap.Logger) *Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Observer{
		sync:     sync,
		renderer: renderer,
		log:      logger,
	}
}

// Notify processes one structural change record.  Additions of
// annotation layers, editors or text layers schedule a layout resync;
// everything else is ignored.
func (o *Observer) Notify(m Mutation) {
	if o.closed.Load() {
		return
	}
	switch m.Kind {
	case MutationAnnotationLayer, MutationEditor, MutationTextLayer:
		o.log.Debug("layout change",
			zap.Int("page", m.PageNumber), zap.Int("kind", int(m.Kind)))
		o.sync.ScheduleLayoutSync()
	}
}

// Teardown stops the observer and clears all rendered indicators.  After
// Teardown, Notify calls are no-ops.  The synchronizer is not closed;
// its owner does that.
func (o *Observer) Teardown() {
	if !o.closed.CompareAndSwap(false, true) {
		return
	}
	if o.renderer != nil {
		o.renderer.Clear()
	}
}
