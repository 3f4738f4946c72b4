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
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(func() { calls.Add(1) })
	for i := 0; i < 10; i++ {
		d.schedule(20 * time.Millisecond)
	}
	time.Sleep(120 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("got %d calls, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(func() { calls.Add(1) })
	d.schedule(20 * time.Millisecond)
	d.cancel()
	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("got %d calls after cancel, want 0", got)
	}
}

func TestDebouncerClose(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(func() { calls.Add(1) })
	d.schedule(20 * time.Millisecond)
	d.close()
	d.schedule(10 * time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("got %d calls after close, want 0", got)
	}
}

// Rescheduling restarts the delay, so the function fires at the end of the
// burst, not at the start.
func TestDebouncerTrailingEdge(t *testing.T) {
	start := time.Now()
	fired := make(chan time.Time, 1)
	d := newDebouncer(func() { fired <- time.Now() })

	d.schedule(50 * time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	d.schedule(50 * time.Millisecond)

	select {
	case at := <-fired:
		if elapsed := at.Sub(start); elapsed < 70*time.Millisecond {
			t.Errorf("fired after %v, want at least 70ms", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
}
