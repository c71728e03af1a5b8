package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType carries recognized gestures through a Donburi world.
// Published gestures wait in the world's queue until ProcessEvents (or
// events.ProcessAllEvents) runs, usually once per ECS tick.
var GestureEventType = events.NewEventType[gesture.GestureEvent]()

// DonburiSink is a gesture.EventSink that publishes to GestureEventType.
type DonburiSink struct {
	world donburi.World
	only  map[gesture.EventType]bool
}

// NewDonburiSink returns a sink publishing into world. With no kinds every
// gesture is published; otherwise only the listed kinds are, which keeps
// per-move EventDrag traffic out of the queue when systems only care about
// clicks and drag ends.
func NewDonburiSink(world donburi.World, kinds ...gesture.EventType) *DonburiSink {
	s := &DonburiSink{world: world}
	if len(kinds) > 0 {
		s.only = make(map[gesture.EventType]bool, len(kinds))
		for _, k := range kinds {
			s.only[k] = true
		}
	}
	return s
}

// EmitEvent implements gesture.EventSink.
func (s *DonburiSink) EmitEvent(ev gesture.GestureEvent) {
	if s.only != nil && !s.only[ev.Type] {
		return
	}
	GestureEventType.Publish(s.world, ev)
}
