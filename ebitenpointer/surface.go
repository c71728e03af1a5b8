package ebitenpointer

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

const defaultTPS = 60

// Surface is a gesture.Surface fed by the Ebitengine mouse (or by injected
// synthetic events). It is driven from the game loop and is not safe for
// use from other goroutines except for listener registration.
type Surface struct {
	gesture.Dispatcher

	// Bounds restricts where a press may start. Presses outside are ignored
	// until released; an empty Bounds accepts the whole screen.
	Bounds gesture.Rect
	// DisableDevice stops mouse polling so only injected input is seen.
	DisableDevice bool

	clock *gesture.FrameScheduler

	// down is set while a press is being reported to listeners; ignored
	// while a press that started outside Bounds is held.
	down    bool
	ignored bool
	button  gesture.MouseButton

	lastX, lastY float64
	seen         bool

	injectQueue []pointerSample
	runner      *Runner
}

// New creates a surface restricted to bounds.
func New(bounds gesture.Rect) *Surface {
	return &Surface{
		Bounds: bounds,
		clock:  gesture.NewFrameScheduler(),
	}
}

// Scheduler returns the frame scheduler advanced by Update.
func (s *Surface) Scheduler() *gesture.FrameScheduler {
	return s.clock
}

// Config returns a default gesture.Config wired to this surface's scheduler.
func (s *Surface) Config() gesture.Config {
	cfg := gesture.DefaultConfig()
	cfg.Scheduler = s.clock
	return cfg
}

// SetRunner attaches a script Runner. Its next step is executed at the
// start of every Update, before input is processed.
func (s *Surface) SetRunner(r *Runner) {
	s.runner = r
}

// Update processes one frame of input and advances the scheduler by one tick
// at the current ebiten TPS.
func (s *Surface) Update() {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = defaultTPS
	}
	s.Step(time.Second / time.Duration(tps))
}

// Step processes one frame of input and advances the scheduler by dt.
func (s *Surface) Step(dt time.Duration) {
	if s.runner != nil {
		s.runner.step(s)
	}
	if !s.processInjectedInput() && !s.DisableDevice {
		s.processMouse()
	}
	s.clock.Advance(dt)
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() gesture.KeyModifiers {
	var mods gesture.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= gesture.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= gesture.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= gesture.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= gesture.ModMeta
	}
	return mods
}

// processMouse polls the cursor and buttons.
func (s *Surface) processMouse() {
	mx, my := ebiten.CursorPosition()

	// If a press is active, keep the button captured at press time.
	var pressed bool
	button := s.button
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if !s.down {
			switch {
			case left:
				button = gesture.MouseButtonLeft
			case right:
				button = gesture.MouseButtonRight
			default:
				button = gesture.MouseButtonMiddle
			}
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button, readModifiers())
}

// processPointer turns one pressed/position sample into raw events.
func (s *Surface) processPointer(x, y float64, pressed bool, button gesture.MouseButton, mods gesture.KeyModifiers) {
	moved := !s.seen || x != s.lastX || y != s.lastY
	s.lastX, s.lastY, s.seen = x, y, true

	switch {
	case pressed && !s.down && !s.ignored:
		if !s.Bounds.Empty() && !s.Bounds.Contains(x, y) {
			s.ignored = true
			return
		}
		s.down = true
		s.button = button
		s.dispatch(gesture.EventPointerDown, x, y, mods)
	case !pressed && s.down:
		s.dispatch(gesture.EventPointerUp, x, y, mods)
		s.down = false
	case !pressed:
		s.ignored = false
		if moved {
			s.dispatch(gesture.EventPointerMove, x, y, mods)
		}
	default:
		// Held down (or an ignored press being held).
		if moved {
			s.dispatch(gesture.EventPointerMove, x, y, mods)
		}
	}
}

func (s *Surface) dispatch(kind gesture.EventType, x, y float64, mods gesture.KeyModifiers) {
	s.Dispatch(&gesture.PointerEvent{
		Kind:      kind,
		X:         x,
		Y:         y,
		Button:    s.button,
		Modifiers: mods,
	})
}

// Pressed reports whether a press is currently being reported.
func (s *Surface) Pressed() bool {
	return s.down
}
