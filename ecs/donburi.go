package ecs

import (
	"github.com/phanxgames/tiled"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TileData is the component attached to every spawned tile.
type TileData struct {
	Layer      string
	LayerIndex int
	Placed     tiled.PlacedTile
}

// AnimationData holds the clip of an animated tile. The entity owns the clip.
type AnimationData struct {
	Clip *tiled.AnimationClip
}

// FrameChanged is published when an animated tile moves to a new frame.
type FrameChanged struct {
	Entity donburi.Entity
	Frame  int
	Region *tiled.AtlasRegion
}

var (
	// Tile is the component type for placed tiles.
	Tile = donburi.NewComponentType[TileData]()
	// Animation is the component type for animated tiles.
	Animation = donburi.NewComponentType[AnimationData]()

	// FrameChangedEvent is the Donburi event type for frame changes.
	// Subscribe to it and call ProcessEvents after StepAnimations.
	FrameChangedEvent = events.NewEventType[FrameChanged]()
)

var animated = donburi.NewQuery(filter.Contains(Animation))

// SpawnLayers creates one entity per placed tile and returns them in layer
// order. Invisible layers are spawned too; callers filter on TileData.
func SpawnLayers(world donburi.World, layers []tiled.PlacedLayer) []donburi.Entity {
	var out []donburi.Entity
	for li := range layers {
		layer := &layers[li]
		for ti := range layer.Tiles {
			placed := layer.Tiles[ti]
			var e donburi.Entity
			if placed.Anim != nil {
				e = world.Create(Tile, Animation)
			} else {
				e = world.Create(Tile)
			}
			entry := world.Entry(e)
			Tile.SetValue(entry, TileData{
				Layer:      layer.Name,
				LayerIndex: layer.Index,
				Placed:     placed,
			})
			if placed.Anim != nil {
				Animation.SetValue(entry, AnimationData{Clip: placed.Anim})
			}
			out = append(out, e)
		}
	}
	return out
}

// StepAnimations advances every animated tile's clip by dt seconds. It is
// the only writer of the clips it touches and must run on one goroutine.
func StepAnimations(world donburi.World, dt float64) {
	animated.Each(world, func(entry *donburi.Entry) {
		clip := Animation.Get(entry).Clip
		if clip == nil {
			return
		}
		before := clip.Frame()
		clip.Update(dt)
		if clip.Frame() != before {
			FrameChangedEvent.Publish(world, FrameChanged{
				Entity: entry.Entity(),
				Frame:  clip.Frame(),
				Region: clip.Region(),
			})
		}
	})
}

// AnimatedCount returns the number of entities carrying an Animation.
func AnimatedCount(world donburi.World) int {
	return animated.Count(world)
}
