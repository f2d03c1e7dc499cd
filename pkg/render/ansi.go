package render

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// cellPair is one terminal cell: the framebuffer pixel pair it shows.
type cellPair struct {
	top, bot Color
}

// AnsiRenderer turns framebuffers into raw ANSI byte streams for
// transports that are not a local TTY. It is a per-session double
// buffer: each frame is diffed against the previous one and only
// changed cells are emitted, using the same half-block scheme as the
// terminal renderer.
type AnsiRenderer struct {
	width, height int // terminal cells
	current, next []cellPair
	firstFrame    bool
}

// NewAnsiRenderer creates a renderer for the given terminal cell
// dimensions.
func NewAnsiRenderer(width, height int) *AnsiRenderer {
	r := &AnsiRenderer{}
	r.Resize(width, height)
	return r
}

// Resize adjusts the renderer for a new terminal size. The next frame
// is emitted in full.
func (r *AnsiRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.current = make([]cellPair, width*height)
	r.next = make([]cellPair, width*height)
	r.firstFrame = true
}

// FramebufferSize returns the pixel dimensions a framebuffer should
// have to fill this terminal.
func (r *AnsiRenderer) FramebufferSize() (int, int) {
	return r.width, r.height * 2
}

// Frame diffs the framebuffer against the previous frame and returns
// the ANSI updates that bring the terminal up to date. The result is
// empty when nothing changed.
func (r *AnsiRenderer) Frame(fb *Framebuffer) string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			pair := cellPair{top: fb.GetPixel(x, y*2), bot: fb.GetPixel(x, y*2+1)}
			i := y*r.width + x
			r.next[i] = pair
			if !r.firstFrame && pair == r.current[i] {
				continue
			}
			// Only emit cursor position if not consecutive
			if y != lastRow || x != lastCol {
				sb.WriteString(MoveTo(y+1, x+1))
			}
			writeCellSGR(&sb, pair)
			lastRow = y
			lastCol = x + 1
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	r.current, r.next = r.next, r.current
	r.firstFrame = false

	return sb.String()
}

// writeCellSGR writes a single cell's full SGR + half block to the
// builder. Uses combined SGR to avoid state leakage between cells.
func writeCellSGR(sb *strings.Builder, p cellPair) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(p.top.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.top.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.top.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(p.bot.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.bot.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.bot.B)))
	sb.WriteByte('m')
	sb.WriteString("▀")
}
