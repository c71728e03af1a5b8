package gesture

// Vec2 is a screen-space coordinate captured from a pointer event.
type Vec2 struct {
	X, Y float64
}

// Offset is a signed displacement between two pointer positions.
type Offset struct {
	DX, DY float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// EventType identifies a raw pointer event or a recognized gesture.
type EventType uint8

const (
	EventPointerDown  EventType = iota // a pointer button was pressed
	EventPointerUp                     // a pointer button was released
	EventPointerMove                   // the pointer moved, pressed or not
	EventSingleClick                   // a stationary tap not followed by a second one in time
	EventDoubleClick                   // two stationary taps inside the click delay
	EventDragStart                     // first non-zero movement of a press
	EventDrag                          // movement while pressed
	EventDragEnd                       // release away from the press position
)

var eventTypeNames = [...]string{
	EventPointerDown: "pointerdown",
	EventPointerUp:   "pointerup",
	EventPointerMove: "pointermove",
	EventSingleClick: "singleclick",
	EventDoubleClick: "doubleclick",
	EventDragStart:   "dragstart",
	EventDrag:        "drag",
	EventDragEnd:     "dragend",
}

// String returns the lower-case event name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// PointerEvent is a single raw pointer notification delivered by a Surface.
// Listeners receive a pointer so that PreventDefault is visible to the
// surface after dispatch.
type PointerEvent struct {
	Kind      EventType
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers

	prevented bool
}

// Position returns the event coordinates as a Vec2.
func (e *PointerEvent) Position() Vec2 {
	return Vec2{X: e.X, Y: e.Y}
}

// PreventDefault marks the event as handled so the surface skips its native
// behavior (text selection, scrolling, focus changes).
func (e *PointerEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether any listener called PreventDefault.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.prevented
}

// GestureEvent carries a recognized gesture to an EventSink.
type GestureEvent struct {
	Type      EventType
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Offset is valid for EventDragStart, EventDrag and EventDragEnd.
	Offset Offset
}

// EventSink is the interface for optional ECS or bus integration.
// When set in Config, every recognized gesture is forwarded to it.
type EventSink interface {
	EmitEvent(event GestureEvent)
}
