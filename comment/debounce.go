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
	"sync"
	"time"
)

// A debouncer coalesces bursts of schedule calls into a single trailing-
// edge invocation of fn: only the last call within a burst fires, after
// that call's delay.  All methods are safe for concurrent use.
type debouncer struct {
	fn func()

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	closed bool
}

func newDebouncer(fn func()) *debouncer {
	return &debouncer{fn: fn}
}

// schedule arranges for fn to run after the given delay, replacing any
// pending invocation.
func (d *debouncer) schedule(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, func() {
		d.fire(gen)
	})
}

func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()
	stale := d.closed || gen != d.gen
	d.mu.Unlock()
	// a stopped timer may still fire if the Stop raced its expiry;
	// the generation check makes such calls harmless
	if !stale {
		d.fn()
	}
}

// cancel drops a pending invocation, if any.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// close cancels any pending invocation and rejects future schedule calls.
func (d *debouncer) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
