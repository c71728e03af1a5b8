// Package ecs provides ECS adapters for gesture's recognized events.
//
// The primary adapter is [NewDonburiSink], which bridges gesture events
// (single click, double click, drag start/drag/drag end) into a [Donburi]
// world as typed events. Subscribe to [GestureEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	cfg := surface.Config()
//	cfg.Sink = ecs.NewDonburiSink(world)
//	rec := gesture.Bind(surface, cfg)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
