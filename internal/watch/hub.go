package watch

import (
	"sync"

	"github.com/vovakirdan/jumpman/internal/evolution"
)

// Viewer is one subscriber of a Hub, backed by a buffered channel.
// Used by the TUI layer to bridge Bubble Tea programs with the trainer.
type Viewer struct {
	id       ViewerID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewViewer creates a viewer. bufferSize controls how many events can be
// buffered before the oldest are dropped.
func NewViewer(id ViewerID, bufferSize int) *Viewer {
	if bufferSize < 1 {
		bufferSize = 64 // Default buffer size
	}
	return &Viewer{
		id:     id,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the viewer identifier.
func (v *Viewer) ID() ViewerID {
	return v.id
}

// Send delivers an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (v *Viewer) Send(evt Event) {
	select {
	case <-v.done:
		return
	default:
	}

	select {
	case v.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-v.events:
		default:
		}
		select {
		case v.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (v *Viewer) Events() <-chan Event {
	return v.events
}

// Done returns a channel that closes when the viewer is closed.
func (v *Viewer) Done() <-chan struct{} {
	return v.done
}

// Close marks the viewer as done.
// Safe to call multiple times.
func (v *Viewer) Close() {
	v.doneOnce.Do(func() {
		close(v.done)
	})
}

// Hub tracks viewers and broadcasts reports to them.
// Thread-safe for concurrent access.
type Hub struct {
	mu          sync.RWMutex
	viewers     map[ViewerID]*Viewer
	history     []evolution.Report
	historySize int
	finished    *FinishedEvent
}

// NewHub creates a hub that keeps the last historySize reports for
// viewers that join late.
func NewHub(historySize int) *Hub {
	if historySize < 1 {
		historySize = 20
	}
	return &Hub{
		viewers:     make(map[ViewerID]*Viewer),
		historySize: historySize,
	}
}

// Subscribe registers a new viewer and replays the retained history to it.
// An existing viewer with the same ID is closed and replaced.
func (h *Hub) Subscribe(id ViewerID, bufferSize int) *Viewer {
	v := NewViewer(id, bufferSize)

	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.viewers[id]; ok {
		old.Close()
	}
	h.viewers[id] = v

	for _, r := range h.history {
		v.Send(ReportEvent{Report: r})
	}
	if h.finished != nil {
		v.Send(*h.finished)
	}
	return v
}

// Unsubscribe removes and closes a viewer.
func (h *Hub) Unsubscribe(id ViewerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.viewers[id]; ok {
		v.Close()
		delete(h.viewers, id)
	}
}

// Publish records a report and sends it to every viewer.
func (h *Hub) Publish(r evolution.Report) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.history = append(h.history, r)
	if len(h.history) > h.historySize {
		h.history = h.history[len(h.history)-h.historySize:]
	}

	evt := ReportEvent{Report: r}
	for _, v := range h.viewers {
		v.Send(evt)
	}
}

// Finish announces the end of training to current and future viewers.
func (h *Hub) Finish(evt FinishedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.finished = &evt
	for _, v := range h.viewers {
		v.Send(evt)
	}
}

// Latest returns the most recent report, if any.
func (h *Hub) Latest() (evolution.Report, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.history) == 0 {
		return evolution.Report{}, false
	}
	return h.history[len(h.history)-1], true
}

// History returns a copy of the retained reports, oldest first.
func (h *Hub) History() []evolution.Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]evolution.Report, len(h.history))
	copy(out, h.history)
	return out
}

// Count returns the number of subscribed viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Observer returns an engine observer that publishes every report and
// never asks the engine to stop.
func (h *Hub) Observer() evolution.Observer {
	return evolution.ObserverFunc(func(r evolution.Report) bool {
		h.Publish(r)
		return true
	})
}
