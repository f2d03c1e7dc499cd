// battlezone - First-Person Tank Combat for the Terminal
// Drive a tank across a wireframe battlefield, hunt enemy armor, dodge
// homing missiles, and pick off the saucer for bonus points.
//
// Controls:
//
//	W/Up        - Drive forward
//	S/Down      - Reverse
//	A/Left      - Turn left
//	D/Right     - Turn right
//	Space       - Fire
//	M           - Toggle sound
//	P           - Save a screenshot
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/jhericks/battle-zone/pkg/audio"
	"github.com/jhericks/battle-zone/pkg/game"
	"github.com/jhericks/battle-zone/pkg/models"
	"github.com/jhericks/battle-zone/pkg/render"
)

var (
	targetFPS = flag.Int("fps", 30, "Target FPS")
	fovDeg    = flag.Float64("fov", 60, "Vertical field of view in degrees")
	seed      = flag.Int64("seed", 0, "Battlefield seed (0 picks one from the clock)")
	modelsDir = flag.String("models", "", "Directory of GLB models for the battlefield shapes")
	volume    = flag.Float64("volume", 0.8, "Sound volume (0 to 1)")
	mute      = flag.Bool("mute", false, "Start with sound off")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "battlezone - First-Person Tank Combat for the Terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: battlezone [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/Up        - Drive forward\n")
		fmt.Fprintf(os.Stderr, "  S/Down      - Reverse\n")
		fmt.Fprintf(os.Stderr, "  A/Left      - Turn left\n")
		fmt.Fprintf(os.Stderr, "  D/Right     - Turn right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Fire\n")
		fmt.Fprintf(os.Stderr, "  M           - Toggle sound\n")
		fmt.Fprintf(os.Stderr, "  P           - Save a screenshot\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HUD paints score, lives, and radio traffic over the rendered frame.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	notice    string
	noticeTil time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// Flash shows a transient message in the bottom-center slot.
func (h *HUD) Flash(msg string) {
	h.notice = msg
	h.noticeTil = time.Now().Add(2 * time.Second)
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, g *game.Game, muted bool) {
	// ANSI escape codes for positioning and styling
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgRed     = "\x1b[91m"
		clearLine = "\x1b[2K"
	)

	// Helper to position cursor
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so stale text never lingers
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	// Top left: score and the best so far
	fmt.Print(moveTo(1, 1) + fmt.Sprintf("%s%s%s SCORE %06d  HIGH %06d %s",
		bgBlack, bold, fgGreen, g.Score(), g.HighScore(), reset))

	// Top right: remaining lives
	livesStr := fmt.Sprintf(" LIVES %d ", g.Lives())
	livesCol := max(width-len(livesStr), 1)
	fmt.Print(moveTo(1, livesCol) + bgBlack + bold + fgGreen + livesStr + reset)

	// Top middle: mode banner, or the radar operator calling out targets
	var banner, color string
	switch g.Mode() {
	case game.ModeAttract:
		banner, color = "PRESS ANY KEY TO BATTLE", fgWhite
	case game.ModeGameOver:
		banner, color = "GAME OVER", fgRed
	default:
		if bearing, ok := g.EnemyBearing(); ok {
			switch {
			case math.Abs(bearing) < 0.35:
				banner, color = "ENEMY IN RANGE", fgRed
			case bearing > 0:
				banner, color = "ENEMY TO LEFT", fgYellow
			default:
				banner, color = "ENEMY TO RIGHT", fgYellow
			}
		}
	}
	if banner != "" {
		bannerCol := max((width-len(banner)-2)/2, 1)
		fmt.Print(moveTo(1, bannerCol) + fmt.Sprintf("%s%s%s %s %s", bgBlack, bold, color, banner, reset))
	}

	// Bottom left: FPS
	fmt.Print(moveTo(height, 1) + fmt.Sprintf("%s%s %.0f FPS %s", bgBlack, dim+fgGreen, h.fps, reset))

	// Bottom middle: transient notice, reload state, or the controls
	// hint while nobody is playing
	switch {
	case h.notice != "" && time.Now().Before(h.noticeTil):
		col := max((width-len(h.notice)-2)/2, 1)
		fmt.Print(moveTo(height, col) + fmt.Sprintf("%s%s %s %s", bgBlack, fgWhite, h.notice, reset))
	case g.Reloading():
		msg := "RELOADING"
		col := max((width-len(msg)-2)/2, 1)
		fmt.Print(moveTo(height, col) + fmt.Sprintf("%s%s%s %s %s", bgBlack, dim, fgYellow, msg, reset))
	case g.Mode() == game.ModeAttract:
		hint := "WASD drive  SPACE fire  M sound  ESC quit"
		hintCol := max((width-len(hint)-2)/2, 1)
		fmt.Print(moveTo(height, hintCol) + fmt.Sprintf("%s%s%s %s %s", bgBlack, dim, fgWhite, hint, reset))
	}

	// Bottom right: mute indicator
	if muted {
		muteStr := " SOUND OFF "
		muteCol := max(width-len(muteStr), 1)
		fmt.Print(moveTo(height, muteCol) + bgBlack + fgYellow + muteStr + reset)
	}
}

func run() error {
	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Create renderer
	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	// Create camera and drawing context
	camera := render.NewCamera()
	camera.FOV = *fovDeg * math.Pi / 180
	rc, err := render.NewRenderContext(camera, fb)
	if err != nil {
		return fmt.Errorf("render context: %w", err)
	}

	// Load replacement models if a directory was given
	var pack *models.Pack
	if *modelsDir != "" {
		pack, err = models.LoadPack(*modelsDir)
		if err != nil {
			fmt.Printf("Warning: could not load models: %v\n", err)
			pack = nil
		}
	}

	g := game.NewGame(game.Config{FPS: *targetFPS, Seed: *seed, Models: pack})

	// Sound is best effort: a headless box still gets a playable game
	snd := audio.NewManager(*volume)
	if *mute {
		snd.ToggleMute()
	}
	if err := snd.Start(); err != nil {
		fmt.Printf("Warning: audio unavailable: %v\n", err)
	}

	hud := NewHUD()
	var shotReq atomic.Bool

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				if rc.Resize(fb) != nil {
					fb = rc.Framebuffer() // window shrank to nothing, keep the old surface
				}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					cancel()
					return
				case ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					g.Press(game.CmdForward)
				case ev.MatchString("s", "down"):
					g.Press(game.CmdReverse)
				case ev.MatchString("a", "left"):
					g.Press(game.CmdTurnLeft)
				case ev.MatchString("d", "right"):
					g.Press(game.CmdTurnRight)
				case ev.MatchString("space"):
					g.Press(game.CmdFire)
				case ev.MatchString("m"):
					snd.ToggleMute()
				case ev.MatchString("p"):
					shotReq.Store(true)
				default:
					// Any other key still counts for leaving attract mode
					g.Press(0)
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"):
					g.Release(game.CmdForward)
				case ev.MatchString("s"), ev.MatchString("down"):
					g.Release(game.CmdReverse)
				case ev.MatchString("a"), ev.MatchString("left"):
					g.Release(game.CmdTurnLeft)
				case ev.MatchString("d"), ev.MatchString("right"):
					g.Release(game.CmdTurnRight)
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		snd.Close()
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		g.Update(dt)

		// Render
		g.Render(rc)

		// Display
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		if shotReq.Swap(false) {
			name := fmt.Sprintf("battlezone-%s.png", time.Now().Format("20060102-150405"))
			if err := fb.SavePNG(name); err != nil {
				hud.Flash("SCREENSHOT FAILED")
			} else {
				hud.Flash("SAVED " + name)
			}
		}

		// Feed this tick's events to the synth
		snd.Update(g.DrainEvents(), g.Mode(), g.Throttle())

		// HUD overlay
		hud.UpdateFPS()
		hud.Render(width, height, g, snd.Muted())

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
