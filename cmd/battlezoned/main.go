// battlezoned - Battle Zone over SSH
// Serves the tank battle to anyone with an SSH client. Every session
// gets its own battlefield, rendered as diffed half-block ANSI frames.
// No accounts, no persistence; disconnect and the battle is gone.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"github.com/jhericks/battle-zone/pkg/game"
	"github.com/jhericks/battle-zone/pkg/models"
	"github.com/jhericks/battle-zone/pkg/render"
)

var (
	addr      = flag.String("addr", ":2222", "Listen address")
	hostKey   = flag.String("hostkey", "battlezone_host_key", "Host key file (generated when missing)")
	modelsDir = flag.String("models", "", "Directory of GLB models for the battlefield shapes")
	tickRate  = flag.Int("fps", 20, "Frames per second per session")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lshortfile)

	if err := ensureHostKey(*hostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	var pack *models.Pack
	if *modelsDir != "" {
		var err error
		pack, err = models.LoadPack(*modelsDir)
		if err != nil {
			log.Printf("Could not load models from %s: %v, using built-in shapes", *modelsDir, err)
			pack = nil
		}
	}

	server := &ssh.Server{
		Addr: *addr,
		Handler: func(sess ssh.Session) {
			handleSession(sess, pack)
		},
	}
	if err := server.SetOption(ssh.HostKeyFile(*hostKey)); err != nil {
		log.Fatalf("Set host key: %v", err)
	}

	log.Printf("battlezoned listening on %s", *addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func handleSession(sess ssh.Session, pack *models.Pack) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	user := sess.User()
	if user == "" {
		user = "gunner"
	}
	log.Printf("Session open: %s from %s", user, sess.RemoteAddr())
	defer log.Printf("Session closed: %s", user)

	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	ansi := render.NewAnsiRenderer(termW, termH)
	fbWidth, fbHeight := ansi.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	rc, err := render.NewRenderContext(render.NewCamera(), fb)
	if err != nil {
		fmt.Fprintln(sess, "Error:", err)
		return
	}

	g := game.NewGame(game.Config{FPS: *tickRate, Models: pack})

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	cmdCh := make(chan game.Command, 16)
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			cmds, quit := parseInput(buf[:n])
			for _, cmd := range cmds {
				select {
				case cmdCh <- cmd:
				default:
				}
			}
			if quit {
				close(quitCh)
				return
			}
		}
	}()

	// Goroutine: track window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	dt := 1.0 / float64(*tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(*tickRate))
	defer ticker.Stop()

	curW, curH := termW, termH
	lastMode := g.Mode()

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case <-ticker.C:
		}

		// Feed buffered keys to the game on its own goroutine
	drain:
		for {
			select {
			case cmd := <-cmdCh:
				g.Press(cmd)
			default:
				break drain
			}
		}

		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()
		if (w != curW || h != curH) && w > 0 && h > 0 {
			curW, curH = w, h
			ansi.Resize(w, h)
			fbWidth, fbHeight = ansi.FramebufferSize()
			fb = render.NewFramebuffer(fbWidth, fbHeight)
			if rc.Resize(fb) != nil {
				fb = rc.Framebuffer() // shrank to nothing, keep the old surface
			}
			io.WriteString(sess, render.ClearScreen())
		}

		if mode := g.Mode(); mode != lastMode {
			lastMode = mode
			ansi.Resize(curW, curH) // full repaint wipes stale overlay text
		}

		g.Update(dt)
		g.Render(rc)
		g.DrainEvents() // no audio over SSH, drop them so they don't pile up

		frame := ansi.Frame(fb)
		if _, err := io.WriteString(sess, frame+buildHUD(g, curW, curH)); err != nil {
			return
		}
	}
}

// buildHUD returns the score and status overlay for one frame. The
// banner slot has a fixed width so shorter call-outs paint over longer
// ones; against the black sky the padding is invisible.
func buildHUD(g *game.Game, width, height int) string {
	const (
		bold     = "\x1b[1m"
		dim      = "\x1b[2m"
		bgBlack  = "\x1b[40m"
		fgWhite  = "\x1b[97m"
		fgGreen  = "\x1b[92m"
		fgYellow = "\x1b[93m"
		fgRed    = "\x1b[91m"
	)

	var sb strings.Builder

	sb.WriteString(render.MoveTo(1, 1))
	fmt.Fprintf(&sb, "%s%s%s SCORE %06d  HIGH %06d %s",
		bgBlack, bold, fgGreen, g.Score(), g.HighScore(), render.Reset)

	lives := fmt.Sprintf(" LIVES %d ", g.Lives())
	sb.WriteString(render.MoveTo(1, max(width-len(lives), 1)))
	sb.WriteString(bgBlack + bold + fgGreen + lives + render.Reset)

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
	slot := fmt.Sprintf(" %-23s ", banner)
	sb.WriteString(render.MoveTo(1, max((width-len(slot))/2, 1)))
	sb.WriteString(bgBlack + bold + color + slot + render.Reset)

	switch g.Mode() {
	case game.ModeAttract:
		hint := "WASD drive  SPACE fire  Q quit"
		sb.WriteString(render.MoveTo(height, max((width-len(hint)-2)/2, 1)))
		fmt.Fprintf(&sb, "%s%s%s %s %s", bgBlack, dim, fgWhite, hint, render.Reset)
	case game.ModePlaying:
		var reload string
		if g.Reloading() {
			reload = "RELOADING"
		}
		slot := fmt.Sprintf(" %-9s ", reload)
		sb.WriteString(render.MoveTo(height, max((width-len(slot))/2, 1)))
		sb.WriteString(bgBlack + dim + fgYellow + slot + render.Reset)
	}

	return sb.String()
}

// parseInput converts raw session bytes into game commands. Arrow
// escape sequences and WASD both drive, space fires, q or Ctrl-C ends
// the session. Unbound printable keys still press through so the
// attract screen reacts to anything.
func parseInput(data []byte) (cmds []game.Command, quit bool) {
	i := 0
	for i < len(data) {
		// Arrow key escape sequences
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				cmds = append(cmds, game.CmdForward)
			case 'B':
				cmds = append(cmds, game.CmdReverse)
			case 'C':
				cmds = append(cmds, game.CmdTurnRight)
			case 'D':
				cmds = append(cmds, game.CmdTurnLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			cmds = append(cmds, game.CmdForward)
		case 's', 'S':
			cmds = append(cmds, game.CmdReverse)
		case 'a', 'A':
			cmds = append(cmds, game.CmdTurnLeft)
		case 'd', 'D':
			cmds = append(cmds, game.CmdTurnRight)
		case ' ':
			cmds = append(cmds, game.CmdFire)
		case 'q', 'Q', 3: // 3 is Ctrl-C
			return cmds, true
		default:
			if r > ' ' {
				cmds = append(cmds, 0)
			}
		}
		i += size
	}
	return cmds, false
}

// ensureHostKey generates an ed25519 host key at path on first run.
func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Printf("Generating host key at %s", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("encode key: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: der})
}
