// Package ecs provides ECS adapters for tiled.
//
// [SpawnLayers] creates one [Donburi] entity per placed tile, carrying a
// [Tile] component and, for animated tiles, an [Animation] component.
// [StepAnimations] is the system that advances every clip once per tick and
// publishes [FrameChangedEvent] when a tile shows a new frame.
//
// Usage:
//
//	layers := loader.Render(m, 1)
//	ecs.SpawnLayers(world, layers)
//
//	// in Update
//	ecs.StepAnimations(world, 1.0/60)
//	ecs.FrameChangedEvent.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
