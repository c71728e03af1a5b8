package gesture

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// --- Helpers ---

type recorder struct {
	single  int
	double  int
	dragEnd []Offset
	events  []string
}

func newTestRecognizer(t *testing.T) (*Dispatcher, *FrameScheduler, *Recognizer, *recorder) {
	t.Helper()
	d := &Dispatcher{}
	clock := NewFrameScheduler()
	r := Bind(d, Config{Scheduler: clock})
	rec := &recorder{}
	r.OnSingleClick(func(*PointerEvent) {
		rec.single++
		rec.events = append(rec.events, "single")
	})
	r.OnDoubleClick(func(*PointerEvent) {
		rec.double++
		rec.events = append(rec.events, "double")
	})
	r.OnDragEnd(func(_ *PointerEvent, off Offset) {
		rec.dragEnd = append(rec.dragEnd, off)
		rec.events = append(rec.events, "dragend")
	})
	return d, clock, r, rec
}

func down(d *Dispatcher, x, y float64) *PointerEvent {
	ev := &PointerEvent{Kind: EventPointerDown, X: x, Y: y}
	d.Dispatch(ev)
	return ev
}

func move(d *Dispatcher, x, y float64) *PointerEvent {
	ev := &PointerEvent{Kind: EventPointerMove, X: x, Y: y}
	d.Dispatch(ev)
	return ev
}

func up(d *Dispatcher, x, y float64) *PointerEvent {
	ev := &PointerEvent{Kind: EventPointerUp, X: x, Y: y}
	d.Dispatch(ev)
	return ev
}

func tap(d *Dispatcher, x, y float64) {
	down(d, x, y)
	up(d, x, y)
}

// --- Click classification ---

func TestSingleClick(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	tap(d, 10, 10)
	if rec.single != 0 {
		t.Fatal("single click must wait for the click delay")
	}

	clock.Advance(249 * time.Millisecond)
	if rec.single != 0 {
		t.Fatal("single click fired before the click delay elapsed")
	}

	clock.Advance(time.Millisecond)
	if rec.single != 1 || rec.double != 0 || len(rec.dragEnd) != 0 {
		t.Errorf("single=%d double=%d dragEnd=%d, want 1/0/0", rec.single, rec.double, len(rec.dragEnd))
	}

	clock.Advance(time.Second)
	if rec.single != 1 {
		t.Errorf("single = %d after idle, want 1", rec.single)
	}
}

func TestSingleClickReceivesReleaseEvent(t *testing.T) {
	d, clock, r, _ := newTestRecognizer(t)
	var got *PointerEvent
	r.OnSingleClick(func(ev *PointerEvent) { got = ev })

	down(d, 3, 4)
	release := up(d, 3, 4)
	clock.Advance(DefaultClickDelay)

	if got != release {
		t.Errorf("single click event = %p, want release event %p", got, release)
	}
}

func TestDragEndReceivesReleaseEvent(t *testing.T) {
	d, _, r, _ := newTestRecognizer(t)
	var got *PointerEvent
	var gotOff Offset
	r.OnDragEnd(func(ev *PointerEvent, off Offset) {
		got = ev
		gotOff = off
	})

	down(d, 3, 4)
	move(d, 6, 4)
	release := up(d, 9, 8)

	if got != release {
		t.Errorf("drag end event = %p, want release event %p", got, release)
	}
	if gotOff != (Offset{DX: 6, DY: 4}) {
		t.Errorf("drag end offset = %+v, want {6 4}", gotOff)
	}
}

func TestDoubleClick(t *testing.T) {
	d, clock, r, rec := newTestRecognizer(t)

	tap(d, 10, 10)
	clock.Advance(100 * time.Millisecond)
	tap(d, 10, 10)

	if rec.double != 1 {
		t.Fatalf("double = %d immediately after second tap, want 1", rec.double)
	}
	if got := r.State().PendingUps; got != 0 {
		t.Errorf("PendingUps = %d after double click, want 0", got)
	}

	clock.Advance(time.Second)
	if rec.single != 0 {
		t.Errorf("single = %d, want 0 (pending single click must be cancelled)", rec.single)
	}
	if clock.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", clock.Pending())
	}
}

func TestTripleSpacedTaps(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	for i := 0; i < 3; i++ {
		tap(d, 10, 10)
		clock.Advance(300 * time.Millisecond)
	}

	if rec.single != 3 || rec.double != 0 {
		t.Errorf("single=%d double=%d, want 3/0", rec.single, rec.double)
	}
}

func TestRapidTripleTapIsDoubleThenSingle(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	tap(d, 10, 10)
	clock.Advance(50 * time.Millisecond)
	tap(d, 10, 10)
	clock.Advance(50 * time.Millisecond)
	tap(d, 10, 10)
	clock.Advance(time.Second)

	want := []string{"double", "single"}
	if strings.Join(rec.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestSingleClickFiresFullDelayAfterLatestTap(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	// double click, then a third tap 200ms later: the third tap's single
	// click must wait its own full delay.
	tap(d, 10, 10)
	tap(d, 10, 10)
	clock.Advance(200 * time.Millisecond)
	tap(d, 10, 10)

	clock.Advance(100 * time.Millisecond)
	if rec.single != 0 {
		t.Fatal("single click fired early from a superseded schedule")
	}
	clock.Advance(150 * time.Millisecond)
	if rec.single != 1 {
		t.Errorf("single = %d, want 1", rec.single)
	}
}

func TestCustomClickDelay(t *testing.T) {
	d := &Dispatcher{}
	clock := NewFrameScheduler()
	r := Bind(d, Config{Scheduler: clock, ClickDelay: 500 * time.Millisecond})
	var single, double int
	r.OnSingleClick(func(*PointerEvent) { single++ })
	r.OnDoubleClick(func(*PointerEvent) { double++ })

	tap(d, 1, 1)
	clock.Advance(400 * time.Millisecond)
	tap(d, 1, 1)
	if double != 1 || single != 0 {
		t.Errorf("single=%d double=%d, want 0/1", single, double)
	}
}

// --- Drag ---

func TestDrag(t *testing.T) {
	d, clock, r, rec := newTestRecognizer(t)

	down(d, 0, 0)
	move(d, 5, 0)
	if got := r.DragOffset().Get(); got != (Offset{DX: 5, DY: 0}) {
		t.Errorf("DragOffset after move = %+v, want {5 0}", got)
	}
	up(d, 20, 0)
	clock.Advance(time.Second)

	if len(rec.dragEnd) != 1 {
		t.Fatalf("dragEnd count = %d, want 1", len(rec.dragEnd))
	}
	if rec.dragEnd[0] != (Offset{DX: 20, DY: 0}) {
		t.Errorf("dragEnd offset = %+v, want {20 0}", rec.dragEnd[0])
	}
	if rec.single != 0 || rec.double != 0 {
		t.Errorf("single=%d double=%d, want 0/0", rec.single, rec.double)
	}
}

func TestDragOffsetTracksEveryMove(t *testing.T) {
	d, _, r, _ := newTestRecognizer(t)

	down(d, 100, 100)
	tests := []struct {
		x, y float64
		want Offset
	}{
		{101, 100, Offset{1, 0}},
		{90, 120, Offset{-10, 20}},
		{100, 100, Offset{0, 0}},
		{100.5, 99.5, Offset{0.5, -0.5}},
	}
	for _, tt := range tests {
		move(d, tt.x, tt.y)
		if got := r.DragOffset().Get(); got != tt.want {
			t.Errorf("move(%v, %v): DragOffset = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMoveWithoutPressIgnored(t *testing.T) {
	d, _, r, _ := newTestRecognizer(t)

	ev := move(d, 50, 50)
	if ev.DefaultPrevented() {
		t.Error("hover move should not prevent default")
	}
	if got := r.DragOffset().Get(); got != (Offset{}) {
		t.Errorf("DragOffset = %+v, want zero", got)
	}
}

func TestResetOnDown(t *testing.T) {
	d, _, r, _ := newTestRecognizer(t)

	drags := [][4]float64{
		{0, 0, 30, 40},
		{10, 10, -5, 2},
		{7, 7, 7, 100},
	}
	for _, g := range drags {
		down(d, g[0], g[1])
		if got := r.DragOffset().Get(); got != (Offset{}) {
			t.Errorf("DragOffset right after down at (%v,%v) = %+v, want zero", g[0], g[1], got)
		}
		if got := r.State().DragOffset; got != (Offset{}) {
			t.Errorf("State().DragOffset right after down = %+v, want zero", got)
		}
		move(d, g[2], g[3])
		up(d, g[2], g[3])
	}
}

func TestDragCancelsPendingSingleClick(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	tap(d, 10, 10)
	clock.Advance(100 * time.Millisecond)
	down(d, 10, 10)
	move(d, 30, 10)
	up(d, 30, 10)
	clock.Advance(time.Second)

	if rec.single != 0 {
		t.Errorf("single = %d, want 0 (a drag discards the pending tap)", rec.single)
	}
	if len(rec.dragEnd) != 1 {
		t.Errorf("dragEnd = %d, want 1", len(rec.dragEnd))
	}
}

func TestTapAfterDragIsSingle(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	down(d, 0, 0)
	up(d, 5, 5)
	tap(d, 10, 10)
	clock.Advance(DefaultClickDelay)

	if rec.single != 1 || rec.double != 0 {
		t.Errorf("single=%d double=%d, want 1/0", rec.single, rec.double)
	}
}

func TestReturnToOriginIsStationary(t *testing.T) {
	d, clock, r, rec := newTestRecognizer(t)
	var starts int
	r.OnDragStart(func(*PointerEvent) { starts++ })

	down(d, 10, 10)
	move(d, 20, 10)
	move(d, 10, 10)
	up(d, 10, 10)
	clock.Advance(DefaultClickDelay)

	if starts != 1 {
		t.Errorf("dragStart = %d, want 1", starts)
	}
	if rec.single != 1 || len(rec.dragEnd) != 0 {
		t.Errorf("single=%d dragEnd=%d, want 1/0", rec.single, len(rec.dragEnd))
	}
}

func TestDragStartAndDragNotifications(t *testing.T) {
	d, _, r, _ := newTestRecognizer(t)
	var events []string
	var offsets []Offset
	r.OnDragStart(func(*PointerEvent) { events = append(events, "start") })
	r.OnDrag(func(_ *PointerEvent, off Offset) {
		events = append(events, "drag")
		offsets = append(offsets, off)
	})

	down(d, 0, 0)
	move(d, 0, 0)
	move(d, 3, 4)
	move(d, 6, 8)
	up(d, 6, 8)

	want := "drag,start,drag,drag"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if offsets[2] != (Offset{6, 8}) {
		t.Errorf("last drag offset = %+v, want {6 8}", offsets[2])
	}
}

// --- Stray input ---

func TestStrayUpIgnored(t *testing.T) {
	d, clock, r, rec := newTestRecognizer(t)

	ev := up(d, 0, 0)
	clock.Advance(time.Second)

	if rec.single != 0 || rec.double != 0 || len(rec.dragEnd) != 0 {
		t.Errorf("stray up produced gestures: %v", rec.events)
	}
	if ev.DefaultPrevented() {
		t.Error("stray up should not prevent default")
	}
	if got := r.State().PendingUps; got != 0 {
		t.Errorf("PendingUps = %d, want 0", got)
	}
}

func TestRepeatedUpWithoutDownIgnored(t *testing.T) {
	d, clock, _, rec := newTestRecognizer(t)

	tap(d, 10, 10)
	up(d, 10, 10)
	clock.Advance(time.Second)

	if rec.single != 1 || rec.double != 0 {
		t.Errorf("single=%d double=%d, want 1/0", rec.single, rec.double)
	}
}

// --- Suppression ---

func TestPreventDefault(t *testing.T) {
	d, _, _, _ := newTestRecognizer(t)

	if !down(d, 1, 1).DefaultPrevented() {
		t.Error("down should prevent default")
	}
	if !move(d, 2, 2).DefaultPrevented() {
		t.Error("move while pressed should prevent default")
	}
	if !up(d, 2, 2).DefaultPrevented() {
		t.Error("up should prevent default")
	}
}

// --- State invariants ---

func TestPendingUpsNeverExceedsOne(t *testing.T) {
	d, clock, r, _ := newTestRecognizer(t)

	for i := 0; i < 7; i++ {
		tap(d, 4, 4)
		if got := r.State().PendingUps; got > 1 {
			t.Fatalf("PendingUps = %d after tap %d", got, i+1)
		}
		clock.Advance(10 * time.Millisecond)
	}
}

func TestStateSnapshot(t *testing.T) {
	d, _, r, _ := newTestRecognizer(t)

	down(d, 5, 6)
	move(d, 8, 6)
	st := r.State()
	if !st.PointerDown || st.DownPosition != (Vec2{5, 6}) || !st.Dragging {
		t.Errorf("State = %+v", st)
	}
	up(d, 8, 6)
	if r.State().PointerDown {
		t.Error("PointerDown should be false after up")
	}
}

// --- Subscribers ---

func TestSubscriberOrder(t *testing.T) {
	d, clock, r, _ := newTestRecognizer(t)
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		r.OnSingleClick(func(*PointerEvent) { order = append(order, i) })
	}

	tap(d, 0, 1)
	clock.Advance(DefaultClickDelay)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestSubscribeDuringNotification(t *testing.T) {
	d, clock, r, _ := newTestRecognizer(t)
	var inner int
	r.OnSingleClick(func(*PointerEvent) {
		r.OnSingleClick(func(*PointerEvent) { inner++ })
	})

	tap(d, 1, 1)
	clock.Advance(DefaultClickDelay)
	if inner != 0 {
		t.Errorf("handler added during notification ran in the same notification")
	}

	clock.Advance(time.Second)
	tap(d, 1, 1)
	clock.Advance(DefaultClickDelay)
	if inner != 1 {
		t.Errorf("inner = %d after second click, want 1", inner)
	}
}

func TestPanickingSubscriberIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("error", "text", &buf)
	if err != nil {
		t.Fatal(err)
	}
	d := &Dispatcher{}
	clock := NewFrameScheduler()
	r := Bind(d, Config{Scheduler: clock, Logger: logger})

	var after int
	r.OnDoubleClick(func(*PointerEvent) { panic("boom") })
	r.OnDoubleClick(func(*PointerEvent) { after++ })

	tap(d, 2, 2)
	tap(d, 2, 2)

	if after != 1 {
		t.Errorf("second subscriber ran %d times, want 1", after)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("log output %q does not mention the panic", buf.String())
	}

	// State machine keeps working.
	tap(d, 2, 2)
	tap(d, 2, 2)
	if after != 2 {
		t.Errorf("after = %d, want 2", after)
	}
}

// --- Unbind ---

func TestUnbind(t *testing.T) {
	d, clock, r, rec := newTestRecognizer(t)

	tap(d, 10, 10)
	r.Unbind()
	r.Unbind()

	clock.Advance(time.Second)
	if rec.single != 0 {
		t.Error("pending single click fired after Unbind")
	}

	for _, kind := range []EventType{EventPointerDown, EventPointerUp, EventPointerMove} {
		if n := d.ListenerCount(kind); n != 0 {
			t.Errorf("%v listeners after Unbind = %d, want 0", kind, n)
		}
	}

	tap(d, 10, 10)
	tap(d, 10, 10)
	down(d, 0, 0)
	up(d, 9, 9)
	clock.Advance(time.Second)
	if len(rec.events) != 0 {
		t.Errorf("events after Unbind = %v, want none", rec.events)
	}
}

func TestUnbindFromCallbackSkipsRemainingSubscribers(t *testing.T) {
	d := &Dispatcher{}
	clock := NewFrameScheduler()
	sink := &sinkRecorder{}
	r := Bind(d, Config{Scheduler: clock, Sink: sink})
	var first, second int
	r.OnSingleClick(func(*PointerEvent) {
		first++
		r.Unbind()
	})
	r.OnSingleClick(func(*PointerEvent) { second++ })

	tap(d, 1, 1)
	clock.Advance(DefaultClickDelay)

	if first != 1 || second != 0 {
		t.Errorf("first=%d second=%d, want 1/0", first, second)
	}
	if len(sink.events) != 0 {
		t.Errorf("sink events after Unbind = %v, want none", sink.events)
	}
}

func TestUnbindLeavesOtherRecognizers(t *testing.T) {
	d := &Dispatcher{}
	clock := NewFrameScheduler()
	a := Bind(d, Config{Scheduler: clock})
	b := Bind(d, Config{Scheduler: clock})
	var aCount, bCount int
	a.OnSingleClick(func(*PointerEvent) { aCount++ })
	b.OnSingleClick(func(*PointerEvent) { bCount++ })

	a.Unbind()
	tap(d, 1, 1)
	clock.Advance(DefaultClickDelay)

	if aCount != 0 || bCount != 1 {
		t.Errorf("a=%d b=%d, want 0/1", aCount, bCount)
	}
}

func TestBindNilSurfacePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Bind(nil, Config{})
}

// --- Sink ---

type sinkRecorder struct {
	events []GestureEvent
}

func (s *sinkRecorder) EmitEvent(ev GestureEvent) {
	s.events = append(s.events, ev)
}

func TestSinkReceivesGestures(t *testing.T) {
	d := &Dispatcher{}
	clock := NewFrameScheduler()
	sink := &sinkRecorder{}
	Bind(d, Config{Scheduler: clock, Sink: sink})

	tap(d, 1, 1)
	tap(d, 1, 1)
	down(d, 0, 0)
	move(d, 2, 0)
	up(d, 4, 0)

	var types []string
	for _, ev := range sink.events {
		types = append(types, ev.Type.String())
	}
	want := "doubleclick,dragstart,drag,dragend"
	if got := strings.Join(types, ","); got != want {
		t.Errorf("sink events = %s, want %s", got, want)
	}
	last := sink.events[len(sink.events)-1]
	if last.Offset != (Offset{4, 0}) || last.X != 4 {
		t.Errorf("dragend sink event = %+v", last)
	}
}
