package tiled

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields of a PlacedLayer at once, e.g.
// fading a roof layer out when the player walks under it. Create one with
// TweenLayerOpacity or TweenLayerOffset and call Update(dt) each frame.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes their values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenLayerOpacity animates layer.Opacity to the target value over the
// specified duration using the easing function.
func TweenLayerOpacity(layer *PlacedLayer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(layer.Opacity), float32(to), duration, fn)
	g.fields[0] = &layer.Opacity
	return g
}

// TweenLayerOffset animates layer.Offset to the given world-space offset.
func TweenLayerOffset(layer *PlacedLayer, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(layer.Offset.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(layer.Offset.Y), float32(toY), duration, fn)
	g.fields[0] = &layer.Offset.X
	g.fields[1] = &layer.Offset.Y
	return g
}
