// Package tcellpointer adapts terminal mouse input from tcell to a
// gesture.Surface. Coordinates are character cells.
package tcellpointer

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/gesture"
)

const (
	pressMask = tcell.Button1 | tcell.Button2 | tcell.Button3
	wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
)

// Surface converts *tcell.EventMouse values into pointer events. Feed every
// event from the screen's poll loop to HandleEvent.
type Surface struct {
	gesture.Dispatcher

	down   bool
	button gesture.MouseButton

	lastX, lastY int
	seen         bool
}

// New creates a terminal surface.
func New() *Surface {
	return &Surface{}
}

// HandleEvent processes one tcell event. Mouse events become pointer
// events; interrupts posted by a Scheduler run their scheduled call. It
// returns true when the event was consumed: a scheduled call, or a mouse
// event a listener prevented the default for.
func (s *Surface) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		x, y := e.Position()
		return s.processPointer(x, y, e.Buttons(), convertMod(e.Modifiers()))
	case *tcell.EventInterrupt:
		if call, ok := e.Data().(scheduledCall); ok {
			call.fn()
			return true
		}
	}
	return false
}

// processPointer runs the press/move/release transitions for one sample.
func (s *Surface) processPointer(x, y int, buttons tcell.ButtonMask, mods gesture.KeyModifiers) bool {
	// Terminals report wheel ticks without the held-button bits; a tick in
	// the middle of a press is not a release.
	if s.down && buttons&wheelMask != 0 && buttons&pressMask == 0 {
		return false
	}
	pressed := buttons&pressMask != 0
	moved := !s.seen || x != s.lastX || y != s.lastY
	s.lastX, s.lastY, s.seen = x, y, true

	switch {
	case pressed && !s.down:
		s.down = true
		s.button = convertButton(buttons)
		return s.dispatch(gesture.EventPointerDown, x, y, mods)
	case !pressed && s.down:
		s.down = false
		return s.dispatch(gesture.EventPointerUp, x, y, mods)
	case moved:
		return s.dispatch(gesture.EventPointerMove, x, y, mods)
	}
	return false
}

func (s *Surface) dispatch(kind gesture.EventType, x, y int, mods gesture.KeyModifiers) bool {
	return s.Dispatch(&gesture.PointerEvent{
		Kind:      kind,
		X:         float64(x),
		Y:         float64(y),
		Button:    s.button,
		Modifiers: mods,
	})
}

// convertButton picks the button captured at press time.
func convertButton(b tcell.ButtonMask) gesture.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return gesture.MouseButtonLeft
	case b&tcell.Button2 != 0:
		return gesture.MouseButtonRight
	default:
		return gesture.MouseButtonMiddle
	}
}

// convertMod converts tcell modifiers to gesture modifiers.
func convertMod(m tcell.ModMask) gesture.KeyModifiers {
	var mods gesture.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= gesture.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= gesture.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= gesture.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= gesture.ModMeta
	}
	return mods
}

// --- Scheduler ---

// EventPoster is the part of tcell.Screen the Scheduler needs.
type EventPoster interface {
	PostEvent(ev tcell.Event) error
}

type scheduledCall struct {
	fn func()
}

// Scheduler is a gesture.Scheduler that delivers expired calls back through
// the screen's event queue as interrupts, so click callbacks run on the
// goroutine that polls events (via HandleEvent) instead of a timer
// goroutine.
type Scheduler struct {
	Screen EventPoster
}

// AfterFunc implements gesture.Scheduler.
func (s Scheduler) AfterFunc(d time.Duration, fn func()) gesture.Timer {
	return time.AfterFunc(d, func() {
		// A full queue drops the call; the pending click is lost rather
		// than blocking the timer goroutine.
		_ = s.Screen.PostEvent(tcell.NewEventInterrupt(scheduledCall{fn: fn}))
	})
}

// Config returns a default gesture.Config whose timers are delivered
// through screen's event queue.
func Config(screen EventPoster) gesture.Config {
	cfg := gesture.DefaultConfig()
	cfg.Scheduler = Scheduler{Screen: screen}
	return cfg
}
