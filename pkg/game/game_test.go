package game

import (
	"math"
	"testing"

	"github.com/jhericks/battle-zone/pkg/render"
)

const testDT = 1.0 / 30

func newTestGame() *Game {
	return NewGame(Config{FPS: 30, Seed: 1})
}

// newPlayingGame returns a game already in play with an empty field, so
// tests can stage exact situations.
func newPlayingGame() *Game {
	g := newTestGame()
	g.startGame()
	g.enemies = g.enemies[:0]
	g.shells = g.shells[:0]
	return g
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func playerShells(g *Game) int {
	n := 0
	for _, s := range g.shells {
		if s.FromPlayer {
			n++
		}
	}
	return n
}

func TestNewGameStartsInAttract(t *testing.T) {
	g := newTestGame()
	if g.Mode() != ModeAttract {
		t.Fatalf("mode = %v, want ModeAttract", g.Mode())
	}
	if len(g.enemies) != 2 {
		t.Errorf("attract demo enemies = %d, want 2", len(g.enemies))
	}
}

func TestAnyPressStartsGame(t *testing.T) {
	g := newTestGame()
	g.Update(testDT)
	if g.Mode() != ModeAttract {
		t.Fatal("game started without input")
	}

	g.Press(CmdFire)
	g.Update(testDT)
	if g.Mode() != ModePlaying {
		t.Fatalf("mode = %v after press, want ModePlaying", g.Mode())
	}
	if g.Lives() != startLives {
		t.Errorf("lives = %d, want %d", g.Lives(), startLives)
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, want 0", g.Score())
	}
	if len(g.enemies) != 1 {
		t.Errorf("opening spawns = %d enemies, want 1", len(g.enemies))
	}
}

func TestFireSpawnsShellOnCooldown(t *testing.T) {
	g := newPlayingGame()

	g.Press(CmdFire)
	g.Update(testDT)
	if playerShells(g) != 1 {
		t.Fatalf("player shells = %d after fire, want 1", playerShells(g))
	}
	if !hasEvent(g.DrainEvents(), EventFire) {
		t.Error("no EventFire emitted")
	}

	// The latch still holds fire but the gun has not recharged.
	g.Update(testDT)
	if playerShells(g) != 1 {
		t.Errorf("player shells = %d during cooldown, want 1", playerShells(g))
	}
}

func TestOneRoundInFlight(t *testing.T) {
	g := newPlayingGame()
	g.world = &World{}

	g.updatePlaying(testDT, CmdFire)
	if playerShells(g) != 1 {
		t.Fatalf("player shells = %d after fire, want 1", playerShells(g))
	}

	// Gun recharged but the round is still out: the trigger stays dead.
	g.player.Cooldown = 0
	g.updatePlaying(testDT, CmdFire)
	if playerShells(g) != 1 {
		t.Errorf("player shells = %d with a round in flight, want 1", playerShells(g))
	}

	// The moment it lands the next round can go.
	g.shells = g.shells[:0]
	g.updatePlaying(testDT, CmdFire)
	if playerShells(g) != 1 {
		t.Errorf("player shells = %d after the round landed, want 1", playerShells(g))
	}
}

func TestReloadingIndicator(t *testing.T) {
	g := newTestGame()
	if g.Reloading() {
		t.Error("reloading reported in attract mode")
	}

	g = newPlayingGame()
	if g.Reloading() {
		t.Error("reloading reported with a charged gun and no round out")
	}
	g.updatePlaying(testDT, CmdFire)
	if !g.Reloading() {
		t.Error("not reloading right after firing")
	}
}

func TestShellKillScores(t *testing.T) {
	g := newPlayingGame()
	g.enemies = append(g.enemies, newEnemy(DefTank, 0, 60, g.player.Pose))
	g.shells = append(g.shells, &Shell{
		Pose:       render.Pose{X: 0, Y: 20, Heading: 0},
		FromPlayer: true,
	})

	for range 30 {
		g.Update(testDT)
		if g.Score() > 0 {
			break
		}
	}
	if g.Score() != DefTank.Score {
		t.Fatalf("score = %d, want %d", g.Score(), DefTank.Score)
	}
	if g.Kills() != 1 {
		t.Errorf("kills = %d, want 1", g.Kills())
	}
	// The field restocks itself after a kill.
	if g.combatants() == 0 {
		t.Error("no replacement combatant spawned")
	}
}

func TestEnemyShellKillsPlayer(t *testing.T) {
	g := newPlayingGame()
	g.shells = append(g.shells, &Shell{
		Pose: render.Pose{X: 0, Y: 30, Heading: math.Pi},
	})

	for range 30 {
		g.Update(testDT)
		if g.Lives() < startLives {
			break
		}
	}
	if g.Lives() != startLives-1 {
		t.Fatalf("lives = %d, want %d", g.Lives(), startLives-1)
	}
	if g.shield <= 0 {
		t.Error("no respawn shield after losing a tank")
	}
}

func TestShieldBlocksShells(t *testing.T) {
	g := newPlayingGame()
	g.shield = respawnShield
	g.shells = append(g.shells, &Shell{
		Pose: render.Pose{X: 0, Y: 30, Heading: math.Pi},
	})

	for range 20 {
		g.Update(testDT)
	}
	if g.Lives() != startLives {
		t.Errorf("lives = %d with shield up, want %d", g.Lives(), startLives)
	}
}

func TestGameOverAndReturnToAttract(t *testing.T) {
	g := newPlayingGame()
	g.lives = 1
	g.shells = append(g.shells, &Shell{
		Pose: render.Pose{X: 0, Y: 30, Heading: math.Pi},
	})

	for range 30 {
		g.Update(testDT)
		if g.Mode() == ModeGameOver {
			break
		}
	}
	if g.Mode() != ModeGameOver {
		t.Fatal("never reached game over")
	}

	for elapsed := 0.0; elapsed < gameOverHold+1; elapsed += testDT {
		g.Update(testDT)
	}
	if g.Mode() != ModeAttract {
		t.Errorf("mode = %v after game over hold, want ModeAttract", g.Mode())
	}
}

func TestGameOverFireSkipsHold(t *testing.T) {
	g := newPlayingGame()
	g.lives = 1
	g.playerKilled()
	if g.Mode() != ModeGameOver {
		t.Fatal("losing the last tank did not end the game")
	}

	// Fire right away must not cut the hold short.
	g.Press(CmdFire)
	g.Update(testDT)
	if g.Mode() != ModeGameOver {
		t.Fatal("fire skipped the game over screen immediately")
	}

	for elapsed := 0.0; elapsed < gameOverMinHold+0.2; elapsed += testDT {
		g.Update(testDT)
	}
	if g.Mode() != ModeGameOver {
		t.Fatal("hold ended early without input")
	}

	g.Press(CmdFire)
	g.Update(testDT)
	if g.Mode() != ModeAttract {
		t.Errorf("mode = %v after fire past the minimum hold, want ModeAttract", g.Mode())
	}
}

func TestHighScoreSurvivesRestart(t *testing.T) {
	g := newPlayingGame()
	target := newEnemy(DefTank, 0, 50, g.player.Pose)
	g.enemies = append(g.enemies, target)
	g.killEnemy(target)
	if g.HighScore() != DefTank.Score {
		t.Fatalf("high = %d after first kill, want %d", g.HighScore(), DefTank.Score)
	}

	g.startGame()
	if g.Score() != 0 {
		t.Errorf("score = %d after restart, want 0", g.Score())
	}
	if g.HighScore() != DefTank.Score {
		t.Errorf("high = %d after restart, want %d", g.HighScore(), DefTank.Score)
	}
}

func TestHitShakesEyeHeight(t *testing.T) {
	g := newPlayingGame()
	g.playerKilled()
	if g.shakeVel >= 0 {
		t.Fatalf("shake velocity = %v after a hit, want negative", g.shakeVel)
	}

	moved := false
	for elapsed := 0.0; elapsed < 3; elapsed += testDT {
		g.Update(testDT)
		if math.Abs(g.shakeZ) > 0.5 {
			moved = true
		}
	}
	if !moved {
		t.Error("eye height never moved after the hit")
	}
	if math.Abs(g.shakeZ) > 0.5 {
		t.Errorf("shake = %v three seconds after the hit, want settled", g.shakeZ)
	}
}

func TestExtraLifeAwarded(t *testing.T) {
	g := newPlayingGame()
	g.score = extraLifeEvery - DefTank.Score
	target := newEnemy(DefTank, 0, 50, g.player.Pose)
	g.enemies = append(g.enemies, target)

	g.killEnemy(target)
	if g.Lives() != startLives+1 {
		t.Errorf("lives = %d after crossing bonus score, want %d", g.Lives(), startLives+1)
	}
	if !hasEvent(g.DrainEvents(), EventExtraLife) {
		t.Error("no EventExtraLife emitted")
	}
	if g.nextLife != 2*extraLifeEvery {
		t.Errorf("next bonus at %d, want %d", g.nextLife, 2*extraLifeEvery)
	}
}

func TestSpawnsHardenWithScore(t *testing.T) {
	g := newPlayingGame()
	g.score = 10000
	g.spawnCombatant()
	e := g.enemies[len(g.enemies)-1]
	if e.aim >= aimTolerance {
		t.Errorf("spawn aim = %v at 10000 points, want tighter than %v", e.aim, aimTolerance)
	}
	if e.Def.TurnRate <= DefTank.TurnRate {
		t.Errorf("spawn turn rate = %v at 10000 points, want above %v", e.Def.TurnRate, DefTank.TurnRate)
	}
}

func TestMissileContactKillsPlayer(t *testing.T) {
	g := newPlayingGame()
	g.enemies = append(g.enemies, newEnemy(DefMissile, 0, 10, g.player.Pose))

	for range 10 {
		g.Update(testDT)
		if g.Lives() < startLives {
			break
		}
	}
	if g.Lives() != startLives-1 {
		t.Fatalf("lives = %d after missile contact, want %d", g.Lives(), startLives-1)
	}
	for _, e := range g.enemies {
		if e.Def.Class == ClassMissile {
			t.Error("missile survived its own impact")
		}
	}
}

func TestSaucerKill(t *testing.T) {
	g := newPlayingGame()
	tank := newEnemy(DefTank, 0, 300, g.player.Pose)
	saucer := newEnemy(DefSaucer, 0, 50, g.player.Pose)
	g.enemies = append(g.enemies, tank, saucer)

	g.killEnemy(saucer)
	if g.Score() != DefSaucer.Score {
		t.Errorf("score = %d, want %d", g.Score(), DefSaucer.Score)
	}
	if g.Kills() != 0 {
		t.Errorf("saucer counted as a kill: kills = %d", g.Kills())
	}
	if g.combatants() != 1 {
		t.Errorf("combatants = %d, want the original tank only", g.combatants())
	}
}

func TestEnemyBearing(t *testing.T) {
	g := newPlayingGame()
	if _, ok := g.EnemyBearing(); ok {
		t.Fatal("bearing reported with an empty field")
	}

	g.enemies = append(g.enemies, newEnemy(DefTank, 0, 100, g.player.Pose))
	b, ok := g.EnemyBearing()
	if !ok {
		t.Fatal("no bearing with an enemy ahead")
	}
	if math.Abs(b) > 1e-9 {
		t.Errorf("bearing = %v for enemy dead ahead, want 0", b)
	}

	g.enemies[0].Pose.X = -100
	g.enemies[0].Pose.Y = 0
	b, _ = g.EnemyBearing()
	if math.Abs(b-math.Pi/2) > 1e-9 {
		t.Errorf("bearing = %v for enemy to the left, want %v", b, math.Pi/2)
	}
}

func TestSceneListsEverything(t *testing.T) {
	g := newPlayingGame()
	g.enemies = append(g.enemies, newEnemy(DefTank, 0, 100, g.player.Pose))
	g.shells = append(g.shells, &Shell{Pose: render.Pose{Y: 30}})

	want := len(g.world.Obstacles) + len(g.enemies) + len(g.shells)
	if got := len(g.Scene(nil)); got != want {
		t.Errorf("scene entries = %d, want %d", got, want)
	}

	// The same backing slice is reusable frame over frame.
	buf := g.Scene(nil)
	again := g.Scene(buf[:0])
	if len(again) != want {
		t.Errorf("reused buffer entries = %d, want %d", len(again), want)
	}
}

func TestDrainEventsResets(t *testing.T) {
	g := newPlayingGame()
	g.emit(EventFire, g.player.Pose.At())
	if len(g.DrainEvents()) != 1 {
		t.Fatal("first drain missed the event")
	}
	if len(g.DrainEvents()) != 0 {
		t.Error("second drain returned stale events")
	}
}

func TestAttractCameraOrbits(t *testing.T) {
	g := newTestGame()
	first := g.CameraPose()
	for range 30 {
		g.Update(testDT)
	}
	second := g.CameraPose()
	if first == second {
		t.Error("attract camera did not move")
	}

	// In play the camera rides the player.
	g.Press(CmdForward)
	g.Update(testDT)
	if g.Mode() != ModePlaying {
		t.Fatal("press did not start the game")
	}
	if g.CameraPose() != g.player.Pose {
		t.Error("playing camera is not the player pose")
	}
}

func TestSeedsAreDeterministic(t *testing.T) {
	a := NewGame(Config{FPS: 30, Seed: 7})
	b := NewGame(Config{FPS: 30, Seed: 7})
	if len(a.world.Obstacles) != len(b.world.Obstacles) {
		t.Fatal("same seed produced different worlds")
	}
	for i := range a.world.Obstacles {
		if a.world.Obstacles[i].Pose != b.world.Obstacles[i].Pose {
			t.Fatalf("obstacle %d differs between same-seed worlds", i)
		}
	}
}
