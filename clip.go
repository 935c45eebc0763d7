package tiled

import "math"

// minFrameDuration is the shortest frame duration in seconds. Authored
// zero-length frames are clamped to it so Update always terminates.
const minFrameDuration = 0.01

// ClipFrame is one resolved frame of an AnimationClip.
type ClipFrame struct {
	TileID   int // tileset-local index
	Region   *AtlasRegion
	Duration float64 // seconds
}

// AnimationClip cycles a placed tile through its frames. Each placed tile
// owns its own clip; callers advance it once per tick with Update and must
// not step one clip from two goroutines.
type AnimationClip struct {
	frames  []ClipFrame
	total   float64 // sum of frame durations
	index   int
	elapsed float64
}

// NewAnimationClip creates a clip over frames. Durations below 0.01s are
// clamped. It returns nil if frames is empty.
func NewAnimationClip(frames []ClipFrame) *AnimationClip {
	if len(frames) == 0 {
		return nil
	}
	fs := make([]ClipFrame, len(frames))
	copy(fs, frames)
	total := 0.0
	for i := range fs {
		if fs[i].Duration < minFrameDuration {
			fs[i].Duration = minFrameDuration
		}
		total += fs[i].Duration
	}
	return &AnimationClip{frames: fs, total: total}
}

// Update advances the clip by dt seconds. Leftover time past a frame
// boundary carries into the next frame.
func (c *AnimationClip) Update(dt float64) {
	if dt <= 0 {
		return
	}
	c.elapsed += dt
	// Whole cycles land on the same frame; skip them.
	if c.elapsed >= c.total+c.frames[c.index].Duration {
		c.elapsed = math.Mod(c.elapsed, c.total)
	}
	for c.elapsed >= c.frames[c.index].Duration {
		c.elapsed -= c.frames[c.index].Duration
		c.index = (c.index + 1) % len(c.frames)
	}
}

// Frame returns the current frame index.
func (c *AnimationClip) Frame() int {
	return c.index
}

// Elapsed returns the time spent in the current frame, in seconds.
func (c *AnimationClip) Elapsed() float64 {
	return c.elapsed
}

// Region returns the region of the current frame.
func (c *AnimationClip) Region() *AtlasRegion {
	return c.frames[c.index].Region
}

// Frames returns the clip's frames. The slice must not be modified.
func (c *AnimationClip) Frames() []ClipFrame {
	return c.frames
}

// Len returns the number of frames.
func (c *AnimationClip) Len() int {
	return len(c.frames)
}

// Reset rewinds the clip to its first frame.
func (c *AnimationClip) Reset() {
	c.index = 0
	c.elapsed = 0
}
