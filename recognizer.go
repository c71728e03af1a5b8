package gesture

import (
	"fmt"
	"log/slog"
	"sync"
)

// State is a snapshot of a recognizer's internal state record.
type State struct {
	PointerDown  bool
	DownPosition Vec2
	DragOffset   Offset

	// PendingUps counts stationary releases not yet resolved into a click.
	// It is always 0 or 1 between events.
	PendingUps int

	// Dragging is true once a press has moved away from its down position.
	Dragging bool
}

// recognizerState is the per-surface state machine record. All fields are
// guarded by Recognizer.mu.
type recognizerState struct {
	pointerDown  bool
	downPosition Vec2
	pendingUps   int
	dragOffset   Offset
	dragging     bool

	// pending single-click check; timerGen stamps the most recent schedule
	// so a superseded callback can recognize itself.
	timer    Timer
	timerGen uint64
}

// --- Handler registry ---

type clickHandler func(*PointerEvent)

type dragHandler func(*PointerEvent, Offset)

type handlerRegistry struct {
	singleClick []clickHandler
	doubleClick []clickHandler
	dragStart   []clickHandler
	drag        []dragHandler
	dragEnd     []dragHandler
}

// Recognizer classifies the raw pointer stream of one Surface into single
// clicks, double clicks and drags. Create one with Bind.
//
// A stationary release (same coordinates as the press) is held for
// Config.ClickDelay. A second stationary release inside that window turns it
// into a double click; otherwise it resolves as a single click. A release
// anywhere else ends a drag and discards any pending click.
type Recognizer struct {
	mu       sync.Mutex
	cfg      Config
	log      *slog.Logger
	state    recognizerState
	handlers handlerRegistry
	offset   Value[Offset]

	listeners []ListenerHandle
	unbound   bool
}

// Bind attaches a new recognizer to surface. The recognizer does not own the
// surface; call Unbind to detach it. Bind panics if surface is nil.
//
// Single clicks are delivered from cfg.Scheduler. With WallClock (the
// default) they run on a timer goroutine while every other callback runs on
// the goroutine feeding the surface, so callbacks sharing state must
// synchronize. Use a FrameScheduler, or a surface-provided scheduler such as
// ebitenpointer.Surface.Scheduler, to keep all callbacks on one goroutine.
func Bind(surface Surface, cfg Config) *Recognizer {
	if surface == nil {
		panic("gesture: Bind with nil surface")
	}
	cfg = cfg.withDefaults()
	r := &Recognizer{cfg: cfg, log: cfg.Logger}
	r.listeners = []ListenerHandle{
		surface.AddPointerListener(EventPointerDown, r.handleDown),
		surface.AddPointerListener(EventPointerUp, r.handleUp),
		surface.AddPointerListener(EventPointerMove, r.handleMove),
	}
	r.log.Debug("gesture: bound", "clickDelay", cfg.ClickDelay)
	return r
}

// Unbind removes the recognizer's listeners from its surface and cancels any
// pending single click. Later events and timers have no effect, and
// subscribers not yet reached in a notification already in progress are
// skipped. Calling Unbind more than once is a no-op.
func (r *Recognizer) Unbind() {
	r.mu.Lock()
	if r.unbound {
		r.mu.Unlock()
		return
	}
	r.unbound = true
	r.cancelPendingLocked()
	listeners := r.listeners
	r.listeners = nil
	r.mu.Unlock()

	for _, h := range listeners {
		h.Remove()
	}
	r.log.Debug("gesture: unbound")
}

// --- Subscription ---

// OnSingleClick registers fn for single clicks. fn receives the release
// event that started the click delay.
func (r *Recognizer) OnSingleClick(fn func(*PointerEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers.singleClick = append(r.handlers.singleClick, fn)
}

// OnDoubleClick registers fn for double clicks. fn receives the second
// release event.
func (r *Recognizer) OnDoubleClick(fn func(*PointerEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers.doubleClick = append(r.handlers.doubleClick, fn)
}

// OnDragEnd registers fn for non-stationary releases. fn receives the
// release event and the final drag offset.
func (r *Recognizer) OnDragEnd(fn func(*PointerEvent, Offset)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers.dragEnd = append(r.handlers.dragEnd, fn)
}

// OnDragStart registers fn for the first move of a press that leaves the
// down position.
func (r *Recognizer) OnDragStart(fn func(*PointerEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers.dragStart = append(r.handlers.dragStart, fn)
}

// OnDrag registers fn for every move while pressed, with the current offset.
func (r *Recognizer) OnDrag(fn func(*PointerEvent, Offset)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers.drag = append(r.handlers.drag, fn)
}

// DragOffset returns the live displacement from the press position to the
// latest move. It is reset to zero on every press.
func (r *Recognizer) DragOffset() *Value[Offset] {
	return &r.offset
}

// State returns a snapshot of the state machine.
func (r *Recognizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		PointerDown:  r.state.pointerDown,
		DownPosition: r.state.downPosition,
		PendingUps:   r.state.pendingUps,
		DragOffset:   r.state.dragOffset,
		Dragging:     r.state.dragging,
	}
}

// --- Input processing ---

func (r *Recognizer) handleDown(ev *PointerEvent) {
	r.mu.Lock()
	if r.unbound {
		r.mu.Unlock()
		return
	}
	ev.PreventDefault()
	st := &r.state
	st.downPosition = ev.Position()
	st.dragOffset = Offset{}
	st.pointerDown = true
	st.dragging = false
	r.mu.Unlock()

	r.offset.set(Offset{})
}

func (r *Recognizer) handleMove(ev *PointerEvent) {
	r.mu.Lock()
	st := &r.state
	if r.unbound || !st.pointerDown {
		r.mu.Unlock()
		return
	}
	ev.PreventDefault()
	off := Offset{DX: ev.X - st.downPosition.X, DY: ev.Y - st.downPosition.Y}
	st.dragOffset = off
	started := !st.dragging && off != (Offset{})
	if started {
		st.dragging = true
	}
	var startHandlers []clickHandler
	if started {
		startHandlers = snapshot(r.handlers.dragStart)
	}
	dragHandlers := snapshot(r.handlers.drag)
	r.mu.Unlock()

	r.offset.set(off)
	if started {
		r.fireClick(EventDragStart, startHandlers, ev)
	}
	r.fireDrag(EventDrag, dragHandlers, ev, off)
}

func (r *Recognizer) handleUp(ev *PointerEvent) {
	r.mu.Lock()
	st := &r.state
	// A release without a recorded press is ignored, so a stray up that
	// happens to land on the zero position is not counted as a tap.
	if r.unbound || !st.pointerDown {
		r.mu.Unlock()
		return
	}
	ev.PreventDefault()

	if ev.Position() != st.downPosition {
		// The release is the last sample of the press; surfaces that do not
		// emit a move at the release position still report the full travel.
		off := Offset{DX: ev.X - st.downPosition.X, DY: ev.Y - st.downPosition.Y}
		st.dragOffset = off
		st.pointerDown = false
		st.dragging = false
		st.pendingUps = 0
		r.cancelPendingLocked()
		handlers := snapshot(r.handlers.dragEnd)
		r.mu.Unlock()

		r.offset.set(off)
		r.log.Debug("gesture: drag end", "dx", off.DX, "dy", off.DY)
		r.fireDrag(EventDragEnd, handlers, ev, off)
		return
	}

	st.pointerDown = false
	st.dragging = false

	st.pendingUps++
	if st.pendingUps >= 2 {
		st.pendingUps = 0
		r.cancelPendingLocked()
		handlers := snapshot(r.handlers.doubleClick)
		r.mu.Unlock()

		r.log.Debug("gesture: double click", "x", ev.X, "y", ev.Y)
		r.fireClick(EventDoubleClick, handlers, ev)
		return
	}

	r.cancelPendingLocked()
	gen := r.state.timerGen
	r.state.timer = r.cfg.Scheduler.AfterFunc(r.cfg.ClickDelay, func() {
		r.resolveSingleClick(gen, ev)
	})
	r.mu.Unlock()
}

// resolveSingleClick runs when the click delay of the schedule stamped gen
// expires.
func (r *Recognizer) resolveSingleClick(gen uint64, ev *PointerEvent) {
	r.mu.Lock()
	st := &r.state
	if r.unbound || gen != st.timerGen || st.pendingUps != 1 {
		r.mu.Unlock()
		return
	}
	st.pendingUps = 0
	st.timer = nil
	handlers := snapshot(r.handlers.singleClick)
	r.mu.Unlock()

	r.log.Debug("gesture: single click", "x", ev.X, "y", ev.Y)
	r.fireClick(EventSingleClick, handlers, ev)
}

// cancelPendingLocked stops the pending single-click check, if any.
// Callers hold r.mu.
func (r *Recognizer) cancelPendingLocked() {
	if r.state.timer != nil {
		r.state.timer.Stop()
		r.state.timer = nil
	}
	r.state.timerGen++
}

func snapshot[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// --- Event dispatch ---

func (r *Recognizer) fireClick(kind EventType, handlers []clickHandler, ev *PointerEvent) {
	for _, h := range handlers {
		r.invoke(kind, func() { h(ev) })
	}
	r.emit(kind, ev, Offset{})
}

func (r *Recognizer) fireDrag(kind EventType, handlers []dragHandler, ev *PointerEvent, off Offset) {
	for _, h := range handlers {
		r.invoke(kind, func() { h(ev, off) })
	}
	r.emit(kind, ev, off)
}

// invoke runs one subscriber, recovering a panic so that sibling subscribers
// still run and the state machine is left consistent. Once the recognizer is
// unbound, including by an earlier subscriber of the same notification,
// nothing more is called.
func (r *Recognizer) invoke(kind EventType, call func()) {
	r.mu.Lock()
	unbound := r.unbound
	r.mu.Unlock()
	if unbound {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("gesture: callback panicked", "event", kind.String(), "panic", fmt.Sprint(p))
		}
	}()
	call()
}

// --- Sink bridge ---

func (r *Recognizer) emit(kind EventType, ev *PointerEvent, off Offset) {
	if r.cfg.Sink == nil {
		return
	}
	r.invoke(kind, func() {
		r.cfg.Sink.EmitEvent(GestureEvent{
			Type:      kind,
			X:         ev.X,
			Y:         ev.Y,
			Button:    ev.Button,
			Modifiers: ev.Modifiers,
			Offset:    off,
		})
	})
}
