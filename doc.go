// Package tiled loads Tiled TMX/TSX map documents and turns them into placed,
// animated tile regions for [Ebitengine] scenes.
//
// The package does not draw anything itself. A [Loader] decodes a map into a
// [Map], and [Loader.Render] walks its layers and chunks to produce
// [PlacedLayer] values: world positions, flip orientation, draw order, an
// [AtlasRegion] per tile and, for animated tiles, an [AnimationClip] the
// caller advances every tick.
//
// # Quick start
//
//	loader := tiled.NewLoader(tiled.DefaultConfig())
//	m, err := loader.LoadMap("maps/level1.tmx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	layers := loader.Render(m, 1.0)
//
//	// each tick
//	for i := range layers {
//		for j := range layers[i].Tiles {
//			if clip := layers[i].Tiles[j].Anim; clip != nil {
//				clip.Update(dt)
//			}
//		}
//	}
//
// # Supported documents
//
// Orthogonal maps with CSV layer data, finite or infinite (chunked), with
// embedded or external tilesets. Other encodings leave the layer empty and
// log a diagnostic rather than failing the load.
//
// # Finding referenced files
//
// Tileset and image references are tried relative to the referencing
// document, then under each [Config.ImportRoots] entry, then by bare file
// name in each [Config.ContentDirs] entry. The first existing file wins.
// Extra [PathStrategy] functions can be appended to [Loader.Resolver].
//
// # Coordinates
//
// World y grows upward: row 0 of a layer sits at y = -0.5*scale and rows
// move down from there. [TextureRegion] rectangles use the same convention
// inside a tileset image; [AtlasRegion.Image] is the equivalent ebiten
// sub-image.
//
// The ecs submodule spawns placed tiles into a [Donburi] world and steps
// their clips from a system.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tiled
