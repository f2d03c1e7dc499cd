package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func countPixels(fb *Framebuffer, col Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == col {
			n++
		}
	}
	return n
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(10, 10)

	fb.SetPixel(-1, 0, ColorWhite)
	fb.SetPixel(0, -1, ColorWhite)
	fb.SetPixel(10, 0, ColorWhite)
	fb.SetPixel(0, 10, ColorWhite)
	for i, p := range fb.Pixels {
		if p != (Color{}) {
			t.Fatalf("out of bounds write landed at pixel %d", i)
		}
	}

	if got := fb.GetPixel(99, 99); got != (Color{}) {
		t.Errorf("out of bounds read = %v, want zero", got)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		pixels         int
	}{
		{"horizontal", 0, 3, 5, 3, 6},
		{"vertical", 3, 0, 3, 5, 6},
		{"diagonal", 0, 0, 5, 5, 6},
		{"single point", 4, 4, 4, 4, 1},
		{"reversed", 5, 3, 0, 3, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(8, 8)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			if got := countPixels(fb, ColorWhite); got != tc.pixels {
				t.Errorf("%d pixels set, want %d", got, tc.pixels)
			}
		})
	}
}

func TestDrawLineClipsAtEdges(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.DrawLine(-5, 2, 10, 2, ColorWhite)
	if got := countPixels(fb, ColorWhite); got != 4 {
		t.Errorf("%d pixels survived edge clipping, want 4", got)
	}
}

func TestClearAndRects(t *testing.T) {
	fb := NewFramebuffer(6, 6)
	fb.Clear(ColorGreen)
	if countPixels(fb, ColorGreen) != 36 {
		t.Fatal("clear missed pixels")
	}

	fb.DrawRect(1, 1, 3, 2, ColorRed)
	if countPixels(fb, ColorRed) != 6 {
		t.Error("filled rect has the wrong size")
	}

	fb.Clear(ColorBlack)
	fb.DrawRectOutline(0, 0, 4, 4, ColorWhite)
	if got := countPixels(fb, ColorWhite); got != 12 {
		t.Errorf("outline set %d pixels, want 12", got)
	}
	if fb.GetPixel(1, 1) != ColorBlack {
		t.Error("outline filled the interior")
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	fb := NewFramebuffer(8, 4)
	fb.Clear(ColorBlack)
	fb.SetPixel(3, 2, ColorGreen)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("decoded size %dx%d, want 8x4", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if uint8(r>>8) != ColorGreen.R || uint8(g>>8) != ColorGreen.G || uint8(b>>8) != ColorGreen.B {
		t.Errorf("pixel (3,2) = (%d, %d, %d), want green", r>>8, g>>8, b>>8)
	}
}
