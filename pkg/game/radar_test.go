package game

import (
	"math"
	"testing"

	"github.com/jhericks/battle-zone/pkg/render"
)

func TestRadarPingsOncePerSweep(t *testing.T) {
	var r Radar
	revolution := 2 * math.Pi / radarSweepRate

	pings := 0
	for elapsed := 0.0; elapsed < revolution*3.5; elapsed += testDT {
		if r.Update(testDT) {
			pings++
		}
	}
	if pings != 3 {
		t.Errorf("pings = %d over 3.5 revolutions, want 3", pings)
	}
}

func countLit(fb *render.Framebuffer) int {
	n := 0
	for _, p := range fb.Pixels {
		if p != render.ColorBlack {
			n++
		}
	}
	return n
}

func TestRadarDraw(t *testing.T) {
	g := newPlayingGame()
	g.enemies = append(g.enemies, newEnemy(DefTank, 0, 100, g.player.Pose))

	fb := render.NewFramebuffer(200, 120)
	fb.Clear(render.ColorBlack)
	g.radar.Draw(fb, g)
	if countLit(fb) == 0 {
		t.Error("radar drew nothing")
	}

	// A blip for the enemy ahead sits above the dial center.
	red := 0
	for _, p := range fb.Pixels {
		if p == render.ColorRed {
			red++
		}
	}
	if red == 0 {
		t.Error("no blip for an enemy in range")
	}
}

func TestRadarSkipsTinyFramebuffers(t *testing.T) {
	g := newPlayingGame()
	fb := render.NewFramebuffer(20, 12)
	fb.Clear(render.ColorBlack)
	g.radar.Draw(fb, g) // must not panic or draw out of bounds
	if countLit(fb) != 0 {
		t.Error("radar drew on a framebuffer too small for the dial")
	}
}

func TestReticleCentered(t *testing.T) {
	fb := render.NewFramebuffer(200, 120)
	fb.Clear(render.ColorBlack)
	DrawReticle(fb, render.ColorGreen)

	if countLit(fb) == 0 {
		t.Fatal("reticle drew nothing")
	}
	// The exact center stays clear; the brackets frame it.
	if fb.GetPixel(100, 60) != render.ColorBlack {
		t.Error("reticle covers the aim point")
	}
}
