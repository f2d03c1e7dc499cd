package game

import "github.com/jhericks/battle-zone/pkg/math3d"

// EventKind identifies something audible that happened during a tick.
type EventKind int

const (
	EventFire EventKind = iota
	EventEnemyFire
	EventExplosion
	EventPlayerHit
	EventRadarPing
	EventExtraLife
)

// Event is a game occurrence front ends react to (sound, flashes).
// Events are drained once per frame.
type Event struct {
	Kind EventKind
	Pos  math3d.Vec3
}

func (g *Game) emit(kind EventKind, pos math3d.Vec3) {
	g.events = append(g.events, Event{Kind: kind, Pos: pos})
}

// DrainEvents returns the events emitted since the last drain. The
// returned slice is only valid until the next Update call.
func (g *Game) DrainEvents() []Event {
	ev := g.events
	g.events = g.events[:0]
	return ev
}
