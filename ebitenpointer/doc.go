// Package ebitenpointer adapts [Ebitengine] mouse input to a gesture.Surface.
//
// Call [Surface.Update] once per game tick from your ebiten.Game Update
// method. The surface polls the mouse, dispatches pointer-down, pointer-move
// and pointer-up events to its listeners, and then advances its
// [gesture.FrameScheduler] by one tick so click timers fire on the game
// goroutine:
//
//	surface := ebitenpointer.New(gesture.Rect{Width: 640, Height: 480})
//	rec := gesture.Bind(surface, surface.Config())
//	rec.OnDoubleClick(func(*gesture.PointerEvent) { resetView() })
//
//	func (g *Game) Update() error { g.surface.Update(); return nil }
//
// Synthetic input (InjectClick, InjectDrag and friends) and JSON scripts
// ([LoadScript]) drive the same path without a real mouse, which is how the
// package is tested.
//
// [Ebitengine]: https://ebitengine.org
package ebitenpointer
