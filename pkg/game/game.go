// Package game implements the battle simulation: the player tank, the
// hostiles hunting it, and the arena they fight in. The package is
// front-end agnostic; cmd/battlezone and cmd/battlezoned drive a Game
// with commands and draw the frames it assembles.
package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/jhericks/battle-zone/pkg/math3d"
	"github.com/jhericks/battle-zone/pkg/models"
	"github.com/jhericks/battle-zone/pkg/render"
)

// Mode is the high-level session state.
type Mode int

const (
	ModeAttract Mode = iota
	ModePlaying
	ModeGameOver
)

const (
	startLives      = 3
	extraLifeEvery  = 15000
	respawnShield   = 3.0 // seconds of immunity after losing a tank
	gameOverHold    = 6.0 // seconds before returning to attract mode
	gameOverMinHold = 1.5 // seconds before fire can skip the hold
	attractOrbitR   = 130.0
	attractOrbitV   = 0.15 // radians per second once eased in
	shakeKick       = 28.0 // eye-height impulse when the player is hit
	saucerGapBase   = 18.0 // seconds between saucer visits, plus jitter
)

// Config carries session options from the front end.
type Config struct {
	FPS  int
	Seed int64
	// Models optionally replaces the built-in silhouettes. Nil slots
	// fall back per model.
	Models *models.Pack
}

// Game is one battle session.
type Game struct {
	cfg    Config
	rng    *rand.Rand
	world  *World
	player *Tank
	radar  Radar

	mode     Mode
	modeTime float64
	score    int
	high     int
	lives    int
	kills    int
	spawned  int
	nextLife int
	shield   float64
	saucerIn float64

	enemies []*Enemy
	shells  []*Shell
	debris  Particles

	input    commandState
	anyPress bool
	events   []Event

	sceneBuf []render.Renderable

	// Camera feel: the attract orbit eases in from a standstill, and a
	// hit slams the eye height with an underdamped bounce.
	attractAngle float64
	orbitRate    float64
	orbitVel     float64
	orbitSpring  harmonica.Spring
	shakeZ       float64
	shakeVel     float64
	shakeSpring  harmonica.Spring
	eyeBase      float64
	eyeSet       bool
}

// supertankShape is the faster hostile: a lower, wider hull with a
// long gun.
var supertankShape = render.TankShape{
	HullBottomW: 14, HullBottomD: 18,
	HullTopW: 9, HullTopD: 13,
	HullH:   2.4,
	TurretW: 7, TurretD: 8, TurretH: 1.8,
	BarrelLen: 9, BarrelThick: 0.7,
}

// NewGame creates a session in attract mode.
func NewGame(cfg Config) *Game {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		orbitSpring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), 0.8, 1.0),
		shakeSpring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), 5.0, 0.25),
	}
	g.world = newWorld(g.rng)
	g.player = newTank(cfg.FPS)
	g.enterAttract()
	return g
}

// Press latches a command from the front end.
func (g *Game) Press(cmd Command) {
	g.input.Press(cmd)
	g.anyPress = true
}

// Release clears a command early.
func (g *Game) Release(cmd Command) {
	g.input.Release(cmd)
}

// Mode returns the current session state.
func (g *Game) Mode() Mode { return g.mode }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen this process.
func (g *Game) HighScore() int { return g.high }

// Lives returns the remaining reserve tanks.
func (g *Game) Lives() int { return g.lives }

// Reloading reports whether the player's gun is unavailable, either
// recharging or waiting for the round in flight to land.
func (g *Game) Reloading() bool {
	return g.mode == ModePlaying && (!g.player.CanFire() || g.playerShellLive())
}

// Kills returns how many hostiles have been destroyed this game.
func (g *Game) Kills() int { return g.kills }

// Throttle exposes the player throttle for engine sound.
func (g *Game) Throttle() float64 { return g.player.Throttle() }

// Seed returns the world seed in use.
func (g *Game) Seed() int64 { return g.cfg.Seed }

// Update advances the session one frame.
func (g *Game) Update(dt float64) {
	if dt > 0.1 {
		dt = 0.1
	}
	cmd := g.input.Step(dt)
	g.modeTime += dt

	switch g.mode {
	case ModeAttract:
		g.updateAttract(dt)
	case ModePlaying:
		g.updatePlaying(dt, cmd)
	case ModeGameOver:
		g.updateGameOver(dt, cmd)
	}
	g.shakeZ, g.shakeVel = g.shakeSpring.Update(g.shakeZ, g.shakeVel, 0)
	g.anyPress = false
}

func (g *Game) enterAttract() {
	g.mode = ModeAttract
	g.modeTime = 0
	g.orbitRate = 0
	g.orbitVel = 0
	g.shells = g.shells[:0]
	g.enemies = g.enemies[:0]
	g.player.Pose = render.Pose{}
	// Two demo tanks prowl the arena while the title shows.
	for range 2 {
		x, y := g.world.spawnPoint(g.rng, g.player.Pose.At(), 160, 280)
		g.enemies = append(g.enemies, newEnemy(DefTank, x, y, g.player.Pose))
	}
}

func (g *Game) updateAttract(dt float64) {
	g.orbitRate, g.orbitVel = g.orbitSpring.Update(g.orbitRate, g.orbitVel, attractOrbitV)
	g.attractAngle += g.orbitRate * dt
	for _, e := range g.enemies {
		e.Update(dt, g)
	}
	g.debris.Update(dt)
	if g.anyPress {
		g.startGame()
	}
}

func (g *Game) startGame() {
	g.mode = ModePlaying
	g.modeTime = 0
	g.score = 0
	g.lives = startLives
	g.kills = 0
	g.spawned = 0
	g.nextLife = extraLifeEvery
	g.shield = 0
	g.saucerIn = 12
	g.enemies = g.enemies[:0]
	g.shells = g.shells[:0]
	g.player = newTank(g.cfg.FPS)
	g.input = commandState{}
	g.spawnCombatant()
}

func (g *Game) updatePlaying(dt float64, cmd Command) {
	g.player.Update(dt, cmd, g.world)
	if g.shield > 0 {
		g.shield -= dt
	}

	// One player round in the air at a time, arcade rule.
	if cmd.Has(CmdFire) && g.player.CanFire() && !g.playerShellLive() {
		g.player.Cooldown = fireCooldown
		m := g.player.Muzzle()
		g.shells = append(g.shells, &Shell{
			Pose:       render.Pose{X: m.X, Y: m.Y, Heading: g.player.Pose.Heading},
			FromPlayer: true,
		})
		g.emit(EventFire, m)
	}

	g.stepEnemies(dt)
	g.stepShells(dt)
	g.debris.Update(dt)

	if g.radar.Update(dt) {
		g.emit(EventRadarPing, g.player.Pose.At())
	}

	// Keep exactly one combatant in the field; saucers visit on their
	// own clock.
	if g.combatants() == 0 {
		g.spawnCombatant()
	}
	if !g.saucerPresent() {
		g.saucerIn -= dt
		if g.saucerIn <= 0 {
			x, y := g.world.spawnPoint(g.rng, g.player.Pose.At(), 150, 280)
			g.enemies = append(g.enemies, newEnemy(DefSaucer, x, y, g.player.Pose))
			g.saucerIn = saucerGapBase + g.rng.Float64()*14
		}
	}
}

func (g *Game) updateGameOver(dt float64, cmd Command) {
	g.stepEnemies(dt)
	g.stepShells(dt)
	g.debris.Update(dt)
	skip := cmd.Has(CmdFire) && g.modeTime > gameOverMinHold
	if skip || g.modeTime > gameOverHold {
		g.enterAttract()
	}
}

// stepEnemies updates every enemy and handles missile contact.
func (g *Game) stepEnemies(dt float64) {
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		if !e.Update(dt, g) {
			continue // saucer left
		}
		if g.mode == ModePlaying && e.Def.Class == ClassMissile {
			dx := e.Pose.X - g.player.Pose.X
			dy := e.Pose.Y - g.player.Pose.Y
			reach := e.Def.Radius + tankRadius
			if dx*dx+dy*dy < reach*reach {
				g.explodeAt(e.Pos(), 30)
				g.playerKilled()
				continue
			}
		}
		alive = append(alive, e)
	}
	g.enemies = alive
}

// stepShells advances shells and resolves hits.
func (g *Game) stepShells(dt float64) {
	live := g.shells[:0]
	for _, s := range g.shells {
		if !s.step(dt, g.world) {
			// Burst on obstacles and at end of range.
			g.debris.Spawn(g.rng, s.Pos(), 5, 16)
			continue
		}
		if s.FromPlayer {
			if e := g.shellTarget(s); e != nil {
				g.killEnemy(e)
				continue
			}
		} else if g.mode == ModePlaying && g.shield <= 0 &&
			s.hits(g.player.Pose.X, g.player.Pose.Y, tankRadius) {
			g.explodeAt(s.Pos(), 24)
			g.playerKilled()
			continue
		}
		live = append(live, s)
	}
	g.shells = live
}

// playerShellLive reports whether the player's round is still flying.
func (g *Game) playerShellLive() bool {
	for _, s := range g.shells {
		if s.FromPlayer {
			return true
		}
	}
	return false
}

// shellTarget returns the enemy a player shell is touching, if any.
func (g *Game) shellTarget(s *Shell) *Enemy {
	for _, e := range g.enemies {
		if s.hits(e.Pose.X, e.Pose.Y, e.Def.Radius) {
			return e
		}
	}
	return nil
}

func (g *Game) killEnemy(target *Enemy) {
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		if e != target {
			kept = append(kept, e)
		}
	}
	g.enemies = kept

	g.explodeAt(target.Pos(), 30)
	if g.mode != ModePlaying {
		return
	}
	g.score += target.Def.Score
	if g.score > g.high {
		g.high = g.score
	}
	if target.Def.Class != ClassSaucer {
		g.kills++
	}
	for g.score >= g.nextLife {
		g.lives++
		g.nextLife += extraLifeEvery
		g.emit(EventExtraLife, g.player.Pose.At())
	}
}

func (g *Game) playerKilled() {
	g.emit(EventPlayerHit, g.player.Pose.At())
	g.shakeVel -= shakeKick
	g.lives--
	if g.lives <= 0 {
		g.mode = ModeGameOver
		g.modeTime = 0
		return
	}
	g.shield = respawnShield
	// Clear hostile fire so the new tank gets a moment.
	live := g.shells[:0]
	for _, s := range g.shells {
		if s.FromPlayer {
			live = append(live, s)
		}
	}
	g.shells = live
}

func (g *Game) explodeAt(pos math3d.Vec3, count int) {
	g.debris.Spawn(g.rng, pos, count, 40)
	g.emit(EventExplosion, pos)
}

// enemyFire spawns a hostile shell from the enemy's gun. Outside of
// play the shot is dry: the AI keeps its rhythm but nothing flies.
func (g *Game) enemyFire(e *Enemy) {
	if g.mode != ModePlaying {
		return
	}
	tip := g.enemyShapeFor(e).BarrelTip(e.Pose)
	g.shells = append(g.shells, &Shell{
		Pose: render.Pose{X: tip.X, Y: tip.Y, Heading: e.Pose.Heading},
	})
	g.emit(EventEnemyFire, tip)
}

func (g *Game) enemyShapeFor(e *Enemy) render.TankShape {
	if e.Def.Class == ClassSupertank {
		return supertankShape
	}
	return render.StandardTank()
}

func (g *Game) combatants() int {
	n := 0
	for _, e := range g.enemies {
		if e.Def.Class != ClassSaucer {
			n++
		}
	}
	return n
}

func (g *Game) saucerPresent() bool {
	for _, e := range g.enemies {
		if e.Def.Class == ClassSaucer {
			return true
		}
	}
	return false
}

func (g *Game) spawnCombatant() {
	def := g.nextCombatant()
	x, y := g.world.spawnPoint(g.rng, g.player.Pose.At(), 220, 360)
	e := newEnemy(def, x, y, g.player.Pose)
	e.harden(g.score)
	g.enemies = append(g.enemies, e)
	g.spawned++
}

// nextCombatant escalates the opposition as the game goes on: every
// fourth spawn is a missile, and supertanks phase in after the first
// couple of kills.
func (g *Game) nextCombatant() EnemyDef {
	if g.spawned > 0 && g.spawned%4 == 3 {
		return DefMissile
	}
	if g.spawned >= 2 {
		chance := min(0.2+float64(g.spawned)*0.06, 0.7)
		if g.rng.Float64() < chance {
			return DefSupertank
		}
	}
	return DefTank
}

// CameraPose is the viewpoint for the current frame. During attract
// the camera orbits the arena; in play it rides the player tank.
func (g *Game) CameraPose() render.Pose {
	if g.mode == ModeAttract {
		a := g.attractAngle
		return render.Pose{
			X:       -math.Sin(a) * attractOrbitR,
			Y:       math.Cos(a) * attractOrbitR,
			Heading: a + math.Pi,
		}
	}
	return g.player.Pose
}

// EnemyBearing reports the signed angle from the player's heading to
// the nearest combatant, for the HUD direction call-outs. The second
// result is false when the field is empty.
func (g *Game) EnemyBearing() (float64, bool) {
	var nearest *Enemy
	best := math.MaxFloat64
	for _, e := range g.enemies {
		if e.Def.Class == ClassSaucer {
			continue
		}
		dx := e.Pose.X - g.player.Pose.X
		dy := e.Pose.Y - g.player.Pose.Y
		if d := dx*dx + dy*dy; d < best {
			best = d
			nearest = e
		}
	}
	if nearest == nil {
		return 0, false
	}
	to := headingToward(nearest.Pose.X-g.player.Pose.X, nearest.Pose.Y-g.player.Pose.Y)
	return angleDiff(to, g.player.Pose.Heading), true
}

// Scene appends the frame's renderables to buf and returns it. Callers
// pass the same (truncated) slice every frame so nothing reallocates.
func (g *Game) Scene(buf []render.Renderable) []render.Renderable {
	for i := range g.world.Obstacles {
		buf = append(buf, g.obstacleRenderable(&g.world.Obstacles[i]))
	}
	for _, e := range g.enemies {
		buf = append(buf, g.enemyRenderable(e))
	}
	for _, sh := range g.shells {
		buf = append(buf, render.Renderable{
			Pose:  sh.Pose,
			Shape: render.BoxShape{W: 1.6, D: 3.6, H: 1.6, Z: shellHeight - 0.8},
			Color: render.ColorWhite,
		})
	}
	return buf
}

// meshColor resolves the stroke color for a loaded mesh, preferring
// the color shipped in the model file.
func meshColor(m *models.Mesh, fallback render.Color) render.Color {
	if !m.HasColor {
		return fallback
	}
	c := m.BaseColor
	return render.RGB(uint8(c[0]*255+0.5), uint8(c[1]*255+0.5), uint8(c[2]*255+0.5))
}

func (g *Game) obstacleRenderable(o *Obstacle) render.Renderable {
	r := render.Renderable{Pose: o.Pose, Color: render.ColorGreen}
	pack := g.cfg.Models

	var mesh *models.Mesh
	if pack != nil {
		if o.Kind == ObstaclePyramid {
			mesh = pack.Pyramid
		} else {
			mesh = pack.Obstacle
		}
	}
	if mesh == nil {
		r.Shape = o.Shape()
		return r
	}
	// Pack obstacles are unit-footprint; scale per instance.
	r.Shape = render.MeshShape{Mesh: mesh, Scale: o.Size}
	r.Color = meshColor(mesh, r.Color)
	return r
}

func (g *Game) enemyRenderable(e *Enemy) render.Renderable {
	r := render.Renderable{Pose: e.Pose, Color: render.ColorGreen}
	pack := g.cfg.Models

	var mesh *models.Mesh
	switch e.Def.Class {
	case ClassMissile:
		mesh = missileMesh
		if pack != nil && pack.Missile != nil {
			mesh = pack.Missile
		}
		r.Shape = render.MeshShape{Mesh: mesh, Z: e.Alt}
	case ClassSaucer:
		mesh = saucerMesh
		if pack != nil && pack.Saucer != nil {
			mesh = pack.Saucer
		}
		r.Shape = render.MeshShape{Mesh: mesh, Z: e.Alt}
	default:
		if pack != nil && pack.Tank != nil {
			mesh = pack.Tank
			r.Shape = render.MeshShape{Mesh: mesh}
		} else {
			r.Shape = g.enemyShapeFor(e)
		}
	}
	if mesh != nil {
		r.Color = meshColor(mesh, r.Color)
	}
	return r
}

// Render draws one complete frame into the context: sky, grid, scene,
// debris, and the in-world overlays. Textual HUD is the front end's
// business.
func (g *Game) Render(c *render.RenderContext) {
	cam := c.Camera()
	if !g.eyeSet {
		g.eyeBase = cam.Position.Z
		g.eyeSet = true
	}
	cam.Position.Z = g.eyeBase + g.shakeZ

	c.SyncCamera(g.CameraPose())
	fb := c.Framebuffer()
	fb.Clear(render.ColorBlack)
	c.DrawGroundGrid(render.ColorDimGreen)
	g.sceneBuf = g.Scene(g.sceneBuf[:0])
	c.DrawScene(g.sceneBuf)
	g.debris.Draw(c, render.ColorYellow)
	if g.mode != ModeAttract {
		g.radar.Draw(fb, g)
		DrawReticle(fb, render.ColorGreen)
	}
}
