// Package gesture turns a raw pointer stream into single clicks, double
// clicks and drags.
//
// A [Recognizer] is bound to one [Surface], anything that emits
// pointer-down, pointer-move and pointer-up events. Ready-made surfaces live
// in sub-packages: ebitenpointer for [Ebitengine] games and tcellpointer for
// terminal programs. [Dispatcher] is the building block for writing your own.
//
// # Quick start
//
//	surface := ebitenpointer.New(gesture.Rect{Width: 640, Height: 480})
//	rec := gesture.Bind(surface, surface.Config())
//
//	rec.OnSingleClick(func(ev *gesture.PointerEvent) { selectAt(ev.X, ev.Y) })
//	rec.OnDoubleClick(func(ev *gesture.PointerEvent) { zoomAt(ev.X, ev.Y) })
//	rec.OnDragEnd(func(ev *gesture.PointerEvent, off gesture.Offset) { pan(off) })
//
// While a press is held, [Recognizer.DragOffset] is a live value holding the
// displacement from the press position, suitable for drawing drag feedback.
//
// # Classification
//
// A release at exactly the press coordinates is stationary. The first
// stationary release waits [Config.ClickDelay] (250 ms by default): a
// second stationary release inside that window is a double click, otherwise
// the wait ends in a single click. Any other release ends a drag and
// discards a waiting click. There is no movement threshold.
//
// # Timers
//
// The single-click wait runs on a [Scheduler]. [FrameScheduler] is advanced
// by the caller, which keeps every callback on one goroutine and makes tests
// deterministic. [WallClock], the default, uses time.AfterFunc, so single
// clicks then arrive on a timer goroutine; callbacks that share state with
// the input loop must lock it. The surfaces' Config helpers pick a
// single-goroutine scheduler, as in the quick start above.
//
// # Animation and ECS
//
// [OffsetTween] eases an offset, for instance settling a dragged item back
// into place (via [gween]). Recognized gestures can also be forwarded to an
// [EventSink]; the ecs sub-module provides a [Donburi] sink.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gesture
