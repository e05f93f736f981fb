// Package ecs provides ECS adapters for rbdesign's editor event mirror.
//
// The primary adapter is [NewDonburiStore], which bridges editor events
// (model, brush, and clipboard changes plus layer lifecycle) into a [Donburi]
// world as typed events. Subscribe to [EditorEvents] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	canvas.Hub().SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
