package game

import (
	"math/rand"
	"testing"

	"github.com/jhericks/battle-zone/pkg/math3d"
)

func TestParticlesLifecycle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var ps Particles

	if ps.Active() {
		t.Fatal("fresh system reports active particles")
	}
	ps.Spawn(rng, math3d.V3(0, 0, 10), 12, 30)
	if !ps.Active() {
		t.Fatal("no particles after spawn")
	}
	if len(ps.parts) != 12 {
		t.Fatalf("particles = %d, want 12", len(ps.parts))
	}

	for elapsed := 0.0; elapsed < 3; elapsed += testDT {
		ps.Update(testDT)
	}
	if ps.Active() {
		t.Errorf("%d particles still alive after their ttl", len(ps.parts))
	}
}

func TestParticlesStayAboveGround(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var ps Particles
	ps.Spawn(rng, math3d.V3(0, 0, 2), 20, 50)

	for range 60 {
		ps.Update(testDT)
		for _, p := range ps.parts {
			if p.pos.Z < 0 {
				t.Fatalf("live particle below ground at z = %v", p.pos.Z)
			}
		}
	}
}

func TestParticlesAccumulate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var ps Particles
	ps.Spawn(rng, math3d.V3(0, 0, 5), 5, 20)
	ps.Spawn(rng, math3d.V3(10, 0, 5), 5, 20)
	if len(ps.parts) != 10 {
		t.Errorf("particles = %d after two bursts, want 10", len(ps.parts))
	}
}
