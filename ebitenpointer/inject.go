package ebitenpointer

import "github.com/phanxgames/gesture"

// pointerSample is one queued synthetic mouse reading: where the cursor is
// and whether the left button is held.
type pointerSample struct {
	x, y float64
	held bool
}

func (s *Surface) enqueue(x, y float64, held bool) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y, held: held})
}

// InjectPress queues a left-button press at (x, y). Each queued sample
// replaces real mouse input for one frame.
func (s *Surface) InjectPress(x, y float64) { s.enqueue(x, y, true) }

// InjectMove queues a cursor position with the button still held.
func (s *Surface) InjectMove(x, y float64) { s.enqueue(x, y, true) }

// InjectRelease queues the button being let go at (x, y).
func (s *Surface) InjectRelease(x, y float64) { s.enqueue(x, y, false) }

// InjectClick queues a stationary tap: press and release at (x, y) on two
// consecutive frames.
func (s *Surface) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDoubleClick queues two stationary taps on four consecutive frames,
// well inside the default click delay at 60 TPS.
func (s *Surface) InjectDoubleClick(x, y float64) {
	s.InjectClick(x, y)
	s.InjectClick(x, y)
}

// InjectDrag queues a drag lasting frames frames (at least 2): a press at
// the start point, evenly spaced moves, and a release at the end point.
func (s *Surface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	moves := max(frames, 2) - 2
	s.InjectPress(fromX, fromY)
	for i := 1; i <= moves; i++ {
		f := float64(i) / float64(moves+1)
		s.InjectMove(fromX+(toX-fromX)*f, fromY+(toY-fromY)*f)
	}
	s.InjectRelease(toX, toY)
}

// Queued returns the number of injected samples not yet consumed.
func (s *Surface) Queued() int {
	return len(s.injectQueue)
}

// processInjectedInput feeds the oldest queued sample to the state machine
// and reports whether there was one.
func (s *Surface) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	smp := s.injectQueue[0]
	s.injectQueue = append(s.injectQueue[:0], s.injectQueue[1:]...)

	button := s.button
	if !s.down {
		button = gesture.MouseButtonLeft
	}
	s.processPointer(smp.x, smp.y, smp.held, button, 0)
	return true
}
