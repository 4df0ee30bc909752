package watcher

import (
	"sync"
	"time"

	"github.com/solidcat/solidcat/internal/index"
)

// Batch is a debounced set of coalesced file events together with the
// scan priority they should run at.
type Batch struct {
	Events   []FileEvent
	Priority index.JobPriority
}

// Debouncer coalesces file events per path and flushes them as a
// prioritized batch once the window elapses or the batch fills up. A
// lone edited article re-validates promptly; a bulk import trickles
// through the low queue.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	pending  map[string]FileEvent
	mu       sync.Mutex
	timer    *time.Timer
	onFlush  func(Batch)
	stopped  bool
}

func NewDebouncer(window time.Duration, maxBatch int, onFlush func(Batch)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		pending:  make(map[string]FileEvent),
		onFlush:  onFlush,
	}
}

func (d *Debouncer) Add(event FileEvent) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if prev, ok := d.pending[event.Path]; ok {
		folded, keep := coalesce(prev, event)
		if !keep {
			delete(d.pending, event.Path)
			if len(d.pending) > 0 {
				d.armTimerLocked()
			}
			d.mu.Unlock()
			return
		}
		event = folded
	}
	d.pending[event.Path] = event

	if len(d.pending) >= d.maxBatch {
		d.flushLocked()
		return
	}

	d.armTimerLocked()
	d.mu.Unlock()
}

func (d *Debouncer) armTimerLocked() {
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if !d.stopped {
			d.flushLocked()
		} else {
			d.mu.Unlock()
		}
	})
}

// coalesce folds two events on the same path into the one the scanner
// should act on. A document created and deleted inside one window
// never existed as far as the catalog is concerned.
func coalesce(prev, next FileEvent) (FileEvent, bool) {
	switch {
	case prev.Type == EventCreate && next.Type == EventDelete:
		return FileEvent{}, false
	case prev.Type == EventCreate && next.Type == EventModify:
		next.Type = EventCreate
	case prev.Type == EventDelete && next.Type == EventCreate:
		// Replaced in place, the scanner sees a changed document.
		next.Type = EventModify
	}
	return next, true
}

// flushLocked releases the mutex itself so the callback runs unlocked.
func (d *Debouncer) flushLocked() {
	events := make([]FileEvent, 0, len(d.pending))
	for _, event := range d.pending {
		events = append(events, event)
	}

	d.pending = make(map[string]FileEvent)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(events) > 0 && d.onFlush != nil {
		d.onFlush(Batch{Events: events, Priority: batchPriority(len(events))})
	}
}

// batchPriority maps batch size to scan priority: single edits jump
// the queue, bulk changes yield to interactive work.
func batchPriority(n int) index.JobPriority {
	switch {
	case n > 10:
		return index.PriorityLow
	case n >= 3:
		return index.PriorityNormal
	default:
		return index.PriorityHigh
	}
}

func (d *Debouncer) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(d.pending) > 0 {
		d.flushLocked()
	} else {
		d.mu.Unlock()
	}
}
