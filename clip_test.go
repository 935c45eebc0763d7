package tiled

import (
	"math"
	"testing"
)

func twoFrameClip() *AnimationClip {
	return NewAnimationClip([]ClipFrame{
		{TileID: 0, Region: &AtlasRegion{TextureRegion: TextureRegion{X: 0}}, Duration: 0.2},
		{TileID: 1, Region: &AtlasRegion{TextureRegion: TextureRegion{X: 16}}, Duration: 0.3},
	})
}

func TestAnimationClip_AdvancesAndWraps(t *testing.T) {
	c := twoFrameClip()
	if c.Frame() != 0 {
		t.Fatalf("initial frame = %d, want 0", c.Frame())
	}

	c.Update(0.25)
	if c.Frame() != 1 {
		t.Errorf("after 0.25s frame = %d, want 1", c.Frame())
	}
	if c.Region().X != 16 {
		t.Errorf("region X = %d, want 16", c.Region().X)
	}

	c.Update(0.3)
	if c.Frame() != 0 {
		t.Errorf("after 0.55s frame = %d, want 0", c.Frame())
	}
	if math.Abs(c.Elapsed()-0.05) > 1e-9 {
		t.Errorf("carried remainder = %v, want 0.05", c.Elapsed())
	}
}

func TestAnimationClip_SmallStepsMatchOneStep(t *testing.T) {
	big := twoFrameClip()
	small := twoFrameClip()

	big.Update(0.25)
	for i := 0; i < 25; i++ {
		small.Update(0.01)
	}
	if big.Frame() != small.Frame() {
		t.Errorf("frames differ: one step %d, small steps %d", big.Frame(), small.Frame())
	}

	big.Update(0.3)
	for i := 0; i < 30; i++ {
		small.Update(0.01)
	}
	if big.Frame() != 0 || small.Frame() != 0 {
		t.Errorf("after 0.55s frames = %d/%d, want 0/0", big.Frame(), small.Frame())
	}
	if math.Abs(big.Elapsed()-small.Elapsed()) > 1e-9 {
		t.Errorf("elapsed drifted: %v vs %v", big.Elapsed(), small.Elapsed())
	}
}

func TestAnimationClip_NoDriftOverManyCycles(t *testing.T) {
	c := twoFrameClip()
	// 100 full cycles of 0.5s in 1/8s steps (exact in binary).
	for i := 0; i < 400; i++ {
		c.Update(0.125)
	}
	// Step off the cycle boundary so rounding at the edge cannot matter.
	c.Update(0.0625)
	if c.Frame() != 0 {
		t.Errorf("frame = %d, want 0 after whole cycles", c.Frame())
	}
	if math.Abs(c.Elapsed()-0.0625) > 1e-6 {
		t.Errorf("elapsed = %v, want ~0.0625", c.Elapsed())
	}
}

func TestAnimationClip_LargeStep(t *testing.T) {
	c := twoFrameClip()
	c.Update(10.25) // 20 cycles + 0.25
	if c.Frame() != 1 {
		t.Errorf("frame = %d, want 1", c.Frame())
	}
	if math.Abs(c.Elapsed()-0.05) > 1e-6 {
		t.Errorf("elapsed = %v, want 0.05", c.Elapsed())
	}
}

func TestAnimationClip_ZeroDurationClamped(t *testing.T) {
	c := NewAnimationClip([]ClipFrame{{TileID: 0}, {TileID: 1, Duration: -1}})
	for _, f := range c.Frames() {
		if f.Duration != minFrameDuration {
			t.Errorf("duration = %v, want %v", f.Duration, minFrameDuration)
		}
	}
	c.Update(0.015)
	if c.Frame() != 1 {
		t.Errorf("frame = %d, want 1", c.Frame())
	}
}

func TestAnimationClip_IgnoresNonPositiveSteps(t *testing.T) {
	c := twoFrameClip()
	c.Update(0)
	c.Update(-1)
	if c.Frame() != 0 || c.Elapsed() != 0 {
		t.Errorf("state = %d/%v, want 0/0", c.Frame(), c.Elapsed())
	}
}

func TestAnimationClip_ResetAndLen(t *testing.T) {
	c := twoFrameClip()
	c.Update(0.25)
	c.Reset()
	if c.Frame() != 0 || c.Elapsed() != 0 {
		t.Errorf("after Reset = %d/%v", c.Frame(), c.Elapsed())
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestNewAnimationClip_Empty(t *testing.T) {
	if c := NewAnimationClip(nil); c != nil {
		t.Error("empty frame list should give a nil clip")
	}
}
