package gesture

import "sync"

// Surface is anything that emits pointer-down, pointer-up and pointer-move
// notifications and lets callers register and remove listeners for them.
type Surface interface {
	AddPointerListener(kind EventType, fn func(*PointerEvent)) ListenerHandle
}

// --- Listener registry ---

type pointerListener struct {
	id uint32
	fn func(*PointerEvent)
}

// Dispatcher is a listener registry that implements Surface. Surface adapters
// embed or wrap one and call Dispatch for every raw event they produce.
// The zero value is ready to use and safe for concurrent use.
type Dispatcher struct {
	mu     sync.Mutex
	down   []pointerListener
	up     []pointerListener
	move   []pointerListener
	nextID uint32
}

// ListenerHandle allows removing a registered pointer listener.
type ListenerHandle struct {
	id   uint32
	d    *Dispatcher
	kind EventType
}

// Remove unregisters the listener so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h ListenerHandle) Remove() {
	if h.d == nil {
		return
	}
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if list := h.d.listeners(h.kind); list != nil {
		*list = removePointerListener(*list, h.id)
	}
}

func removePointerListener(s []pointerListener, id uint32) []pointerListener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerListener{}
			return s[:len(s)-1]
		}
	}
	return s
}

// listeners returns the slot for kind, or nil for non-pointer event types.
// Callers hold d.mu.
func (d *Dispatcher) listeners(kind EventType) *[]pointerListener {
	switch kind {
	case EventPointerDown:
		return &d.down
	case EventPointerUp:
		return &d.up
	case EventPointerMove:
		return &d.move
	}
	return nil
}

// AddPointerListener registers fn for raw events of the given kind. Only
// EventPointerDown, EventPointerUp and EventPointerMove are dispatched;
// registering any other kind returns a handle that does nothing.
func (d *Dispatcher) AddPointerListener(kind EventType, fn func(*PointerEvent)) ListenerHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.listeners(kind)
	if list == nil || fn == nil {
		return ListenerHandle{}
	}
	d.nextID++
	id := d.nextID
	*list = append(*list, pointerListener{id: id, fn: fn})
	return ListenerHandle{id: id, d: d, kind: kind}
}

// ListenerCount returns the number of listeners registered for kind.
func (d *Dispatcher) ListenerCount(kind EventType) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if list := d.listeners(kind); list != nil {
		return len(*list)
	}
	return 0
}

// Dispatch delivers ev to every listener registered for ev.Kind in
// registration order. Listeners added or removed during dispatch take effect
// from the next event. Returns whether any listener prevented the default.
func (d *Dispatcher) Dispatch(ev *PointerEvent) bool {
	d.mu.Lock()
	list := d.listeners(ev.Kind)
	if list == nil || len(*list) == 0 {
		d.mu.Unlock()
		return ev.DefaultPrevented()
	}
	snapshot := make([]pointerListener, len(*list))
	copy(snapshot, *list)
	d.mu.Unlock()

	for _, l := range snapshot {
		l.fn(ev)
	}
	return ev.DefaultPrevented()
}
