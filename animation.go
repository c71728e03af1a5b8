package gesture

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OffsetTween animates an Offset from one value to another, typically the
// visual displacement left behind by a drag settling back to zero after
// release. Call Update(dt) each frame and read Value.
//
// There is no global animation manager; users call Update themselves.
type OffsetTween struct {
	dx, dy *gween.Tween
	value  Offset
	Done   bool
}

// NewOffsetTween creates a tween from from to to over duration seconds using
// the easing function fn. A nil fn means ease.OutQuad.
func NewOffsetTween(from, to Offset, duration float32, fn ease.TweenFunc) *OffsetTween {
	if fn == nil {
		fn = ease.OutQuad
	}
	return &OffsetTween{
		dx:    gween.New(float32(from.DX), float32(to.DX), duration, fn),
		dy:    gween.New(float32(from.DY), float32(to.DY), duration, fn),
		value: from,
	}
}

// SettleTween eases a release offset back to zero.
func SettleTween(from Offset, duration float32) *OffsetTween {
	return NewOffsetTween(from, Offset{}, duration, ease.OutQuad)
}

// Update advances the tween by dt seconds and returns the current value.
func (t *OffsetTween) Update(dt float32) Offset {
	if t.Done {
		return t.value
	}
	x, xDone := t.dx.Update(dt)
	y, yDone := t.dy.Update(dt)
	t.value = Offset{DX: float64(x), DY: float64(y)}
	t.Done = xDone && yDone
	return t.value
}

// Value returns the most recently computed offset.
func (t *OffsetTween) Value() Offset {
	return t.value
}
