package game

import (
	"math"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/render"
)

// EnemyClass selects enemy behavior and silhouette.
type EnemyClass int

const (
	ClassTank EnemyClass = iota
	ClassSupertank
	ClassMissile
	ClassSaucer
)

// EnemyDef defines an enemy type's base stats.
type EnemyDef struct {
	Name         string
	Class        EnemyClass
	Speed        float64
	TurnRate     float64
	FireRange    float64
	FireCooldown float64
	Score        int
	Radius       float64
	Lifetime     float64 // seconds before despawning; 0 = never
}

var (
	// DefTank is the standard slow tank.
	DefTank = EnemyDef{
		Name: "tank", Class: ClassTank,
		Speed: 26, TurnRate: 0.8, FireRange: 230, FireCooldown: 2.6,
		Score: 1000, Radius: tankRadius,
	}
	// DefSupertank turns and shoots nearly twice as fast.
	DefSupertank = EnemyDef{
		Name: "supertank", Class: ClassSupertank,
		Speed: 40, TurnRate: 1.5, FireRange: 260, FireCooldown: 1.5,
		Score: 3000, Radius: tankRadius,
	}
	// DefMissile homes on the player and kills by contact.
	DefMissile = EnemyDef{
		Name: "missile", Class: ClassMissile,
		Speed: 85, TurnRate: 2.4,
		Score: 2000, Radius: 5,
	}
	// DefSaucer is an unarmed bonus target that soon leaves.
	DefSaucer = EnemyDef{
		Name: "saucer", Class: ClassSaucer,
		Speed: 18, TurnRate: 0.6,
		Score: 5000, Radius: 7, Lifetime: 24,
	}
)

// aiState is the combat tank state machine.
type aiState int

const (
	aiHunt aiState = iota // close distance to the player
	aiAim                 // hold still and line up the shot
	aiEvade               // break sideways after shooting
)

const (
	aimTolerance  = 0.05 // radians off target that still counts as lined up
	alignToDrive  = 0.4  // tanks only advance when roughly facing their goal
	evadeDuration = 1.8
	missileHopH   = 6.0
	missileDiveAt = 60.0 // distance at which a missile stops hopping
	saucerAlt     = 8.0
)

// Enemy is a live hostile. One hit destroys any enemy.
type Enemy struct {
	Def  EnemyDef
	Pose render.Pose
	Alt  float64 // height above ground for airborne classes

	state     aiState
	stateTime float64
	cooldown  float64
	evadeDir  float64
	age       float64
	aim       float64 // radians of error this enemy still fires at
}

// newEnemy spawns an enemy of the given def at a world position facing
// the player.
func newEnemy(def EnemyDef, x, y float64, player render.Pose) *Enemy {
	e := &Enemy{Def: def, aim: aimTolerance}
	e.Pose.X = x
	e.Pose.Y = y
	e.Pose.Heading = headingToward(player.X-x, player.Y-y)
	return e
}

// harden scales the AI with the player's score: quicker turns, tighter
// aim, shorter reloads. Caps out at a +60% factor.
func (e *Enemy) harden(score int) {
	f := min(float64(score)/12500, 0.6)
	e.Def.TurnRate *= 1 + f
	e.Def.FireCooldown /= 1 + 0.5*f
	e.aim = aimTolerance / (1 + f)
}

// Pos returns the enemy's world position including altitude.
func (e *Enemy) Pos() math3d.Vec3 {
	return math3d.V3(e.Pose.X, e.Pose.Y, e.Alt)
}

// Update advances the enemy one frame. Tanks run the hunt/aim/evade
// machine, missiles home, saucers wander. Returns false when the enemy
// despawns on its own (saucer leaving).
func (e *Enemy) Update(dt float64, g *Game) bool {
	e.age += dt
	e.stateTime += dt
	if e.cooldown > 0 {
		e.cooldown -= dt
	}

	switch e.Def.Class {
	case ClassMissile:
		e.updateMissile(dt, g)
	case ClassSaucer:
		if e.Def.Lifetime > 0 && e.age > e.Def.Lifetime {
			return false
		}
		e.updateSaucer(dt, g)
	default:
		e.updateTank(dt, g)
	}
	return true
}

func (e *Enemy) updateTank(dt float64, g *Game) {
	player := g.player.Pose
	dx := player.X - e.Pose.X
	dy := player.Y - e.Pose.Y
	dist := math.Hypot(dx, dy)
	diff := angleDiff(headingToward(dx, dy), e.Pose.Heading)

	switch e.state {
	case aiHunt:
		e.turnBy(diff, dt)
		if math.Abs(diff) < alignToDrive {
			e.advance(e.Def.Speed*dt, dt, g.world)
		}
		if dist < e.Def.FireRange {
			e.setState(aiAim)
		}

	case aiAim:
		e.turnBy(diff, dt)
		if dist > e.Def.FireRange*1.25 {
			e.setState(aiHunt)
			break
		}
		clear := !g.world.LineBlocked(e.Pose.X, e.Pose.Y, player.X, player.Y)
		if math.Abs(diff) < e.aim && e.cooldown <= 0 && clear {
			g.enemyFire(e)
			e.cooldown = e.Def.FireCooldown
			e.evadeDir = 1
			if g.rng.Intn(2) == 0 {
				e.evadeDir = -1
			}
			e.setState(aiEvade)
		}

	case aiEvade:
		// Break perpendicular to the player's line of sight.
		want := headingToward(dx, dy) + e.evadeDir*math.Pi/2
		e.turnBy(angleDiff(want, e.Pose.Heading), dt)
		e.advance(e.Def.Speed*dt, dt, g.world)
		if e.stateTime > evadeDuration {
			e.setState(aiHunt)
		}
	}
}

func (e *Enemy) updateMissile(dt float64, g *Game) {
	player := g.player.Pose
	dx := player.X - e.Pose.X
	dy := player.Y - e.Pose.Y
	dist := math.Hypot(dx, dy)

	e.turnBy(angleDiff(headingToward(dx, dy), e.Pose.Heading), dt)
	// Missiles hop until their final dive.
	if dist > missileDiveAt {
		e.Alt = math.Abs(math.Sin(e.age*2.5)) * missileHopH
	} else {
		e.Alt = 0
	}

	move := math3d.Heading(e.Pose.Heading).Scale(e.Def.Speed * dt)
	e.Pose.X += move.X
	e.Pose.Y += move.Y
}

func (e *Enemy) updateSaucer(dt float64, g *Game) {
	e.Pose.Heading += math.Sin(e.age*0.7) * 0.8 * dt
	e.Alt = saucerAlt + 2*math.Sin(e.age*1.3)
	e.advance(e.Def.Speed*dt, dt, g.world)
}

// turnBy rotates toward the target by at most TurnRate*dt.
func (e *Enemy) turnBy(diff, dt float64) {
	maxTurn := e.Def.TurnRate * dt
	if diff > maxTurn {
		diff = maxTurn
	} else if diff < -maxTurn {
		diff = -maxTurn
	}
	e.Pose.Heading += diff
}

// advance moves along the current heading, veering off obstacles and
// staying inside the arena.
func (e *Enemy) advance(step, dt float64, w *World) {
	move := math3d.Heading(e.Pose.Heading).Scale(step)
	nx, ny := w.clampArena(e.Pose.X+move.X, e.Pose.Y+move.Y)
	if w.CollideCircle(nx, ny, e.Def.Radius) == nil {
		e.Pose.X, e.Pose.Y = nx, ny
		return
	}
	e.Pose.Heading += e.Def.TurnRate * 1.5 * dt
}

func (e *Enemy) setState(s aiState) {
	e.state = s
	e.stateTime = 0
}

// headingToward converts a world-space offset to the heading that
// faces it (0 = +Y, CCW positive).
func headingToward(dx, dy float64) float64 {
	return math.Atan2(-dx, dy)
}

// angleDiff returns the shortest signed rotation from b to a,
// normalized to (-pi, pi].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
